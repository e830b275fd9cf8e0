package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"market-analyzer/internal/delivery/http"
)

type apiServer struct {
	appDep  *AppDependency
	handler *http.HttpAPIHandler
}

func newAPIServer(appDep *AppDependency, handler *http.HttpAPIHandler) *apiServer {
	return &apiServer{appDep: appDep, handler: handler}
}

func (s *apiServer) Start() error {
	s.handler.SetupRoutes()

	address := fmt.Sprintf(":%d", s.appDep.cfg.API.Port)
	s.appDep.log.Info("Starting HTTP server", zap.String("address", address))
	return s.appDep.echo.Start(address)
}

// Stop drains in-flight requests, falling back to a hard close when the
// drain outlives the grace period.
func (s *apiServer) Stop() error {
	s.appDep.log.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.appDep.echo.Shutdown(ctx); err != nil {
		s.appDep.log.Warn("Graceful shutdown failed, closing listener", zap.Error(err))
		return s.appDep.echo.Close()
	}
	s.appDep.log.Info("HTTP server stopped")
	return nil
}
