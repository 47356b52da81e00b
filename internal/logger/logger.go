package logger

import "go.uber.org/zap"

// New builds the application logger. Development mode uses human-readable
// console output; anything else gets production JSON.
func New(env string) (*zap.Logger, error) {
	if env == "dev" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
