// cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhiraj070/RuleMind/audit"
	"github.com/abhiraj070/RuleMind/config"
	"github.com/abhiraj070/RuleMind/controller"
	"github.com/abhiraj070/RuleMind/dao"
	"github.com/abhiraj070/RuleMind/db"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/metrics"
	"github.com/abhiraj070/RuleMind/middleware"
	"github.com/abhiraj070/RuleMind/router"
	"github.com/abhiraj070/RuleMind/service"
	"github.com/abhiraj070/RuleMind/util"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the compliance API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, config.GetConfig())
		},
	}
}

func runServer(ctx context.Context, cfg *config.Configuration) error {
	stores, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	seeded, err := dao.SeedRuleStore(ctx, stores.rules, cfg.Rules.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to seed rules: %w", err)
	}
	if seeded > 0 {
		logger.Info("Seeded rule store", zap.Int("rules", seeded), zap.String("file", cfg.Rules.SeedFile))
	}

	var limiter middleware.Limiter
	if cfg.Redis.Enabled {
		if err := db.InitRedis(ctx); err != nil {
			return err
		}
		defer db.CloseRedis()
		limiter = middleware.NewRedisLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		local := middleware.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		go local.Cleanup(ctx, time.Minute)
		limiter = local
	}

	eventBus := util.NewEventBus()
	eventBus.Start(ctx)
	util.NewNotificationService().Register(eventBus)

	collector := metrics.NewMetricsCollector()
	auditService := audit.NewService(stores.audit, cfg.Audit.WriteTimeout, cfg.Audit.PageSize)
	services := service.InitializeServices(
		stores.rules,
		auditService,
		util.NewValidationUtil(),
		util.NewCacheService(cfg.Redis.Enabled),
		eventBus,
		collector,
	)
	controllers := controller.InitializeControllers(services)

	gin.SetMode(cfg.Server.Mode)
	handler := router.SetupRouter(controllers, collector, limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	eventBus.Wait()

	logger.Info("Server exiting")
	return nil
}
