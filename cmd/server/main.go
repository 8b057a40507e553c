package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/raulgutierrezyuno/ZenithPay/internal/api"
	"github.com/raulgutierrezyuno/ZenithPay/internal/generator"
	"github.com/raulgutierrezyuno/ZenithPay/internal/ingestion"
	"github.com/raulgutierrezyuno/ZenithPay/internal/repository"
)

func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	port := envDefault("PORT", "8080")
	dbPath := envDefault("DB_PATH", "zenithpay.db")
	seedCount := envIntDefault("SEED_COUNT", generator.DefaultCount)
	seed := envInt64Default("SEED", generator.DefaultSeed)

	log.Printf("Initializing database at %s", dbPath)
	db, err := repository.InitDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	defer db.Close()

	txnRepo := repository.NewTransactionRepo(db)
	ingestionSvc := ingestion.NewService(txnRepo)

	// Seed demo transactions if the DB is empty.
	count, err := txnRepo.Count()
	if err != nil {
		log.Fatalf("Failed to count transactions: %v", err)
	}
	if count == 0 {
		log.Printf("[seed] Database is empty, generating %d demo transactions (seed=%d)", seedCount, seed)
		txns, err := generator.GenerateValidated(seedCount, seed)
		if err != nil {
			log.Fatalf("Failed to generate demo data: %v", err)
		}
		inserted, err := txnRepo.BulkInsert(txns)
		if err != nil {
			log.Fatalf("Failed to seed transactions: %v", err)
		}
		log.Printf("[seed] Seeded %d transactions", inserted)
	} else {
		log.Printf("[seed] Database already has %d transactions, skipping seed", count)
	}

	router := api.NewRouter(txnRepo, ingestionSvc)

	log.Printf("ZenithPay Approval Analytics")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("")
	log.Printf("Endpoints:")
	log.Printf("  GET    /api/v1/metrics")
	log.Printf("  GET    /api/v1/insights")
	log.Printf("  GET    /api/v1/transactions")
	log.Printf("  POST   /api/v1/transactions/import")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// envInt64Default accepts any parseable integer: zero and negative values
// are legitimate seeds.
func envInt64Default(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
