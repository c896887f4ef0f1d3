package http

import (
	"context"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/service"
)

// StoreMaintainer covers the maintenance surface of the persistent store.
// Implemented by [store.Storages].
type StoreMaintainer interface {
	Backup(ctx context.Context, dst string) error
	Restore(ctx context.Context, src string) error
}

type Handler struct {
	services *service.Services
	storages StoreMaintainer

	logger *logger.Logger
}

func NewHandler(services *service.Services, storages StoreMaintainer, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		storages: storages,
		logger:   logger,
	}
}
