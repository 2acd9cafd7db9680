package handler

import (
	"github.com/apollo-kit/userd/internal/config"
	"github.com/apollo-kit/userd/internal/handler/http"
	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}
