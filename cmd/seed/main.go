package main

import (
	"context"
	"os"

	"sobracorte/internal/config"
	"sobracorte/internal/core"
	"sobracorte/internal/db"
	"sobracorte/internal/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Seeds the database with a demo inventory. Safe to re-run: it does nothing
// when materials already exist. Set ADMIN_EMAIL and ADMIN_PASSWORD to also
// create the first (admin) account.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer log.Sync()

	ctx := context.Background()

	if err := db.Migrate(cfg.Postgres.DSN, "migrations"); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	pool, err := db.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"); email != "" && password != "" {
		users := core.NewUserService(pool)
		name := os.Getenv("ADMIN_NAME")
		if name == "" {
			name = "Administrador"
		}
		u, err := users.Register(ctx, name, email, password)
		if err != nil {
			log.Warn("admin account not created", zap.Error(err))
		} else {
			log.Info("admin account created", zap.String("id", u.ID), zap.String("role", u.Role))
		}
	}

	var existing int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM materials").Scan(&existing); err != nil {
		log.Fatal("failed to check materials", zap.Error(err))
	}
	if existing > 0 {
		log.Info("materials already present, skipping seed", zap.Int("count", existing))
		return
	}

	materials := core.NewMaterialService(pool)
	for _, in := range sampleMaterials() {
		m, err := materials.Create(ctx, in)
		if err != nil {
			log.Fatal("failed to seed material", zap.String("name", in.Name), zap.Error(err))
		}
		log.Info("material seeded", zap.String("id", m.ID), zap.String("name", m.Name))
	}
	log.Info("seed complete")
}

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleMaterials() []core.MaterialInput {
	return []core.MaterialInput{
		{Barcode: "7891000100101", Name: "Chapa MDF 15mm Branco", Category: "MDF", Color: "Branco", Quantity: qty("12"), Unit: "un", Location: "Pavilhão A - Prateleira 1"},
		{Barcode: "7891000100102", Name: "Chapa MDF 18mm Amadeirado", Category: "MDF", Color: "Carvalho", Quantity: qty("8"), Unit: "un", Location: "Pavilhão A - Prateleira 1"},
		{Barcode: "7891000100103", Name: "Retalho MDF 15mm", Category: "MDF", Color: "Branco", Quantity: qty("35.5"), Unit: "m2", Location: "Pavilhão A - Prateleira 2", Notes: "Sobras de corte, tamanhos variados"},
		{Barcode: "7891000100201", Name: "Perfil Alumínio 20x20", Category: "Alumínio", Color: "Natural", Quantity: qty("48"), Unit: "m", Location: "Pavilhão B - Baia 3"},
		{Barcode: "7891000100202", Name: "Perfil Alumínio 40x40", Category: "Alumínio", Color: "Preto", Quantity: qty("22.5"), Unit: "m", Location: "Pavilhão B - Baia 3"},
		{Barcode: "7891000100301", Name: "Chapa Aço 1020 2mm", Category: "Aço", Color: "Cinza", Quantity: qty("150"), Unit: "kg", Location: "Pavilhão B - Baia 5"},
		{Barcode: "7891000100302", Name: "Tubo Aço Quadrado 30x30", Category: "Aço", Color: "Preto", Quantity: qty("60"), Unit: "m", Location: "Pavilhão B - Baia 6"},
		{Barcode: "7891000100401", Name: "Acrílico Cristal 3mm", Category: "Acrílico", Color: "Cristal", Quantity: qty("9"), Unit: "un", Location: "Pavilhão A - Prateleira 4", Notes: "Chapas 2000x1000"},
		{Barcode: "7891000100402", Name: "Acrílico Leitoso 5mm", Category: "Acrílico", Color: "Branco", Quantity: qty("4"), Unit: "un", Location: "Pavilhão A - Prateleira 4"},
		{Barcode: "7891000100501", Name: "Compensado Naval 10mm", Category: "Madeira", Color: "Natural", Quantity: qty("15"), Unit: "un", Location: "Pavilhão A - Prateleira 3"},
		{Barcode: "7891000100601", Name: "Espuma D33", Category: "Espuma", Color: "Cinza", Quantity: qty("2.4"), Unit: "m3", Location: "Pavilhão C - Baia 1"},
		{Barcode: "7891000100701", Name: "Lona Vinílica", Category: "Lona", Color: "Branco", Quantity: qty("85"), Unit: "m2", Location: "Pavilhão C - Baia 2", Notes: "Rolo parcial"},
	}
}
