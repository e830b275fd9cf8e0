package cmd

import (
	"context"
	"errors"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"market-analyzer/internal/delivery/http"
	"market-analyzer/internal/service"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the analyzer with its HTTP API and scheduler",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	services := service.NewService(
		appDep.cfg,
		appDep.log,
		appDep.provider,
		appDep.cache,
		appDep.telegram,
	)

	httpHandler := http.NewHttpAPIHandler(
		ctx,
		appDep.cfg,
		appDep.log,
		appDep.echo,
		appDep.validator,
		services,
		appDep.monitor,
	)

	apiServer := newAPIServer(appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, httpNet.ErrServerClosed) {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	if appDep.cfg.Scheduler.Enabled {
		if err := services.SchedulerService.Start(ctx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	appDep.monitor.Start(ctx)

	<-ctx.Done()
	log.Println("Shutdown signal received")

	if appDep.cfg.Scheduler.Enabled {
		services.SchedulerService.Stop()
	}
	appDep.monitor.Stop()

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
