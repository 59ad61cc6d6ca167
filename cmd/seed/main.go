package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/carsawa/site/catalog"
	"github.com/carsawa/site/config"
	"github.com/carsawa/site/db"
	"github.com/carsawa/site/logger"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}
	if err := logger.Init(config.LogLevel, config.LogFormat); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Named("seed")

	dbFile := flag.String("db", config.DatabaseURL, "sqlite database file")
	fresh := flag.Bool("fresh", false, "remove the database file before seeding")
	deleteDealer := flag.String("delete-dealer", "", "remove one dealer and keep its cars")
	flag.Parse()

	if *fresh {
		if err := os.Remove(*dbFile); err != nil && !os.IsNotExist(err) {
			log.Fatal("failed to remove old database", zap.Error(err))
		}
	}

	if err := db.Init(*dbFile); err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	cat := catalog.New(db.Get())

	if *deleteDealer != "" {
		if err := cat.DeleteDealer(ctx, *deleteDealer); err != nil {
			log.Fatal("failed to delete dealer", zap.String("dealer", *deleteDealer), zap.Error(err))
		}
		log.Info("dealer deleted", zap.String("dealer", *deleteDealer))
		return
	}

	dealers, cars := catalog.MockDealers(), catalog.MockCars()
	if err := cat.Seed(ctx, dealers, cars); err != nil {
		log.Fatal("failed to seed catalog", zap.Error(err))
	}
	log.Info("catalog seeded",
		zap.String("db", *dbFile),
		zap.Int("dealers", len(dealers)),
		zap.Int("cars", len(cars)),
	)
}
