package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/config"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/CodeStar86/Bangin-Gear/storage"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main creates the storefront tables and loads the product catalog.
// Usage: go run ./cmd/seed [-file catalog.yaml]
// This is a standalone CLI tool, not part of the main application
func main() {
	file := flag.String("file", "", "YAML catalog to load instead of the built-in seed")
	flag.Parse()

	_ = godotenv.Load()

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("BANGIN' GEAR - Catalog Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed(ctx, cfg, log, *file); err != nil {
		log.Fatal("❌ seeding failed", zap.Error(err))
	}

	fmt.Println()
	fmt.Println("✅ Catalog seeded")
}

func seed(ctx context.Context, cfg *config.Config, log *zap.Logger, file string) error {
	products, err := loadProducts(file)
	if err != nil {
		return err
	}

	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close(log)

	repo := catalog.NewGormRepository(db.Gorm)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}
	if err := storage.NewPostgresStore(db.Gorm).Migrate(ctx); err != nil {
		return err
	}
	log.Info("✓ tables migrated")

	if err := repo.Upsert(ctx, products); err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("  • %-28s %s\n", p.Name, p.Price.StringFixed(2))
	}
	log.Info("✓ products upserted", zap.Int("count", len(products)))
	return nil
}

func loadProducts(file string) ([]models.Product, error) {
	if file == "" {
		return catalog.SeedProducts()
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}
	return catalog.ParseSeed(raw)
}
