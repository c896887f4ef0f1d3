package main

import (
	"context"
	"fmt"

	"github.com/alexsky74/Anamneon/internal/config"
	"github.com/alexsky74/Anamneon/internal/crypto"
	httphandler "github.com/alexsky74/Anamneon/internal/handler/http"
	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/server"
	"github.com/alexsky74/Anamneon/internal/service"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("anamneon")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to store")
	}
	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating store schema")
	}

	storages := store.NewStorages(db, log)
	defer storages.Close()

	// every cipher shares one derivation pool and one key store
	pool := workers.NewDerivationPool(cfg.Workers.DeriveWorkers, cfg.Workers.DeriveQueue, log)
	janitor := workers.NewJanitor(log)
	workers.NewWorkers(pool, janitor).Run()
	defer pool.Stop()
	defer janitor.Stop()

	keys := crypto.NewKeyStore()
	defer keys.ClearAll()

	services := service.NewServices(service.Deps{
		Storages:   storages,
		Keys:       keys,
		Hasher:     crypto.NewPasswordHasher(pool),
		TextCipher: crypto.NewTextCipher(pool),
		FileCipher: crypto.NewFileCipher(pool),
		Janitor:    janitor,
	}, cfg, log)

	handler := httphandler.NewHandler(services, storages, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
