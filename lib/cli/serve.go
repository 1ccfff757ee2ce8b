package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nicolasacquaviva/cuerre-gen/lib"
	"github.com/nicolasacquaviva/cuerre-gen/lib/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(config *lib.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "starts the QR HTTP API backed by GridFS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, config)
		},
	}
}

func serve(ctx context.Context, config *lib.Configuration) error {
	level := config.LOG_LEVEL

	// the CLI default is quiet; a server should report requests
	if level == "warn" {
		level = "info"
	}

	logger := lib.NewLogger(level)

	builder, err := lib.NewBuilder(config.ENGINE, logger)

	if err != nil {
		return err
	}

	if err = lib.EnsureDir(config.TMP_DIR); err != nil {
		return err
	}

	ds, err := api.NewDatastore(ctx, config.DB_URL, config.DB_NAME)

	if err != nil {
		return fmt.Errorf("failed to init datastore: %w", err)
	}

	defer ds.Close(context.Background())

	env := &api.Env{
		Builder: builder,
		Store:   ds,
		Config:  config,
		Logger:  logger,
	}

	server := &http.Server{
		Addr:              ":" + config.PORT,
		Handler:           env.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Infof("Up and listening on port %s", config.PORT)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
