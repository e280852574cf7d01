package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apihttp "github.com/abhisek/edusheet/internal/api/http"
	"github.com/abhisek/edusheet/internal/metrics"
	"github.com/abhisek/edusheet/internal/questiongen"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the worksheet library, sharing and grading over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		addr := e.cfg.HTTP.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		deps := apihttp.Deps{
			Worksheets:  e.store.WorksheetRepo(),
			Metrics:     metrics.New(),
			Logger:      e.log,
			PublicURL:   e.cfg.PublicURL,
			CORSOrigins: e.cfg.HTTP.CORSOrigins,
			SchoolName:  e.cfg.Defaults.SchoolName,
			ClassName:   e.cfg.Defaults.ClassName,
		}
		if provider, err := e.provider(cmd.Context()); err != nil {
			e.log.WithError(err).Warn("LLM provider not configured; /api/generate is disabled")
		} else {
			deps.Generator = questiongen.New(provider, questiongen.DefaultConfig())
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           apihttp.NewRouter(deps),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			e.log.WithField("addr", addr).Info("listening")
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		e.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default http.addr from config)")
}
