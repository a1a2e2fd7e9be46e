package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zaparse/stmtledger/api"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Starts the HTTP API server that accepts statement PDFs and returns the
parsed ledger as JSON. Settings come from the server section of the config
file, STMTLEDGER_SERVER_* variables, or a .env file in the working directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		asm, err := newAssembler()
		if err != nil {
			return err
		}

		cfg := serverConfig()
		if servePort != "" {
			cfg.Port = listenAddr(servePort)
		}
		server := api.New(cfg, asm, log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- server.Start() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to run the API server on (default from config, 8080)")
}

func serverConfig() api.Config {
	cfg := api.DefaultConfig()
	if port := viper.GetString("server.port"); port != "" {
		cfg.Port = listenAddr(port)
	}
	if mb := viper.GetInt64("server.max_upload_mb"); mb > 0 {
		cfg.MaxUploadMB = mb
	}
	if origins := viper.GetStringSlice("server.cors_origins"); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	return cfg
}

// listenAddr accepts "8080", ":8080" or "host:8080".
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
