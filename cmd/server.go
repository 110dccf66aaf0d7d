package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/dashboard"
	"github.com/ziadkadry99/aliverse/internal/readings"
	"github.com/ziadkadry99/aliverse/internal/server"
	"github.com/ziadkadry99/aliverse/internal/session"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the web garage",
	Long:  `Starts the HTTP server with the chart API, reading history and the browser wizard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		a, err := newAnalyzer()
		if err != nil {
			return err
		}
		svc, database, err := openReadings(a)
		if err != nil {
			return err
		}
		defer database.Close()

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}
		srv := server.New(server.Config{
			Port:     port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, database, logger)

		registerAllRoutes(srv, a, svc)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("aliverse server starting",
			zap.String("version", Version),
			zap.Int("port", port),
			zap.String("db", database.Path()),
			zap.Bool("gated", cfg.UnlockCode != ""),
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires every feature onto the server router.
func registerAllRoutes(srv *server.Server, a *analysis.Analyzer, svc *readings.Service) {
	r := srv.Router()
	brand := cfg.Brand.Report()
	gate := session.Gate{Code: cfg.UnlockCode}

	analysis.RegisterRoutes(r, a, gate)
	readings.RegisterRoutes(r, svc, brand, gate, srv.Logger())

	dash := dashboard.New(svc, gate, brand, srv.Logger())
	dash.RegisterRoutes(r)
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
