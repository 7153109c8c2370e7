package cli

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"

	"maintenance_diagnosis/internal/config"
	"maintenance_diagnosis/internal/handlers"
	"maintenance_diagnosis/internal/logger"
	"maintenance_diagnosis/internal/metrics"
	"maintenance_diagnosis/internal/repository"
	"maintenance_diagnosis/internal/repository/db"
	"maintenance_diagnosis/internal/rules"
	"maintenance_diagnosis/internal/server"
	"maintenance_diagnosis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and JSON API",
		Long:  `Loads the rule file, opens the history database and serves HTTP until SIGINT or SIGTERM.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, log, err := opts.setup()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}
	if !opts.verbose && cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	set, err := loadRules(cfg, log)
	if err != nil {
		log.Fatalw("failed to load rules", "path", cfg.Rules.Path, "err", err)
	}

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	apiHandler := buildHandler(cfg, conn, set, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler.InitRoutes(), log)
	log.Infow("server_started", "port", cfg.Port, "db", cfg.DB.Path, "rules", set.Len())

	// graceful shutdown
	<-ctx.Done()
	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}

// buildHandler wires repositories, services and metrics into the HTTP layer.
func buildHandler(cfg *config.Config, conn *sql.DB, set *rules.RuleSet, log *logger.Logger) *handlers.Handler {
	var (
		rec  metrics.Recorder = metrics.Nop{}
		opts []handlers.Option
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewPromRecorder(reg)
		opts = append(opts, handlers.WithMetrics(reg))
	}

	services := service.NewService(service.Deps{
		Repos:     repository.NewRepository(conn),
		Evaluator: rules.NewEvaluator(set, log),
		Metrics:   rec,
		Auth: service.AuthSettings{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
	})
	return handlers.NewHandler(services, log, opts...)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler http.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler); err != nil {
			log.Fatalw("error starting server", "port", port, "err", err)
		}
	}()
}
