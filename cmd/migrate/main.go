package main

import (
	"context"
	"flag"
	"log"
	"os"

	"queencare-storefront/internal/config"
	"queencare-storefront/internal/db"
	"queencare-storefront/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "revert all slot migrations instead of applying them")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if *down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			logger.Fatalf("rollback migrations: %v", err)
		}
		logger.Println("migrations rolled back")
		return
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	logger.Println("migrations applied")
}
