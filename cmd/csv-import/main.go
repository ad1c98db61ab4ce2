package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/importer"
)

func main() {
	dir := flag.String("dir", "data", "directory containing the CSV files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := importer.New(db, logger).Run(context.Background(), *dir); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
	logger.Info("import complete", zap.String("dir", *dir))
}
