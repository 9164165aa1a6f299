package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hfocr/internal/httpapi"
)

type serveOptions struct {
	addr         string
	corsOrigins  string
	maxUploadMB  int
	secureCookie bool
	requestLog   string
}

func newServeCmd(o *options) *cobra.Command {
	so := &serveOptions{}
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the web UI and HTTP API (default command)",
		Example: "  hfocr serve --addr :8080\n  hfocr serve -c hfocr.yaml --cors-origins https://app.example",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, o, so)
		},
	}
	f := cmd.Flags()
	f.StringVar(&so.addr, "addr", "", "HTTP listen address (defaults HFOCR_ADDR or :8080)")
	f.StringVar(&so.corsOrigins, "cors-origins", "", "Comma separated origins; enables CORS")
	f.IntVar(&so.maxUploadMB, "max-upload-mb", 0, "Upload size limit in MiB (default 32)")
	f.BoolVar(&so.secureCookie, "secure-cookie", false, "Mark the session cookie Secure (use behind TLS)")
	f.StringVar(&so.requestLog, "request-log", "", "Per-request log level: off|error|info|debug (defaults HFOCR_REQUEST_LOG)")
	return cmd
}

func runServe(cmd *cobra.Command, o *options, so *serveOptions) error {
	cfg := o.cfg
	if so.addr != "" {
		cfg.Addr = so.addr
	}
	if so.maxUploadMB > 0 {
		cfg.MaxUploadMB = so.maxUploadMB
	}
	if origins := splitCSV(so.corsOrigins); len(origins) > 0 {
		cfg.CORS.Enabled = true
		cfg.CORS.Origins = origins
	}

	mgr, reg, err := o.build()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpapi.SetLogger(o.log.With().Str("component", "http").Logger())
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxUploadBytes(int64(cfg.MaxUploadMB) << 20)
	httpapi.SetSecureCookies(so.secureCookie)
	httpapi.SetSessionTTL(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	if so.requestLog != "" {
		httpapi.SetRequestLogLevel(so.requestLog)
	}
	if cfg.CORS.Enabled {
		methods := cfg.CORS.Methods
		if len(methods) == 0 {
			methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
		}
		headers := cfg.CORS.Headers
		if len(headers) == 0 {
			headers = []string{"Content-Type", httpapi.SessionHeader}
		}
		httpapi.SetCORSOptions(true, cfg.CORS.Origins, methods, headers)
	}

	go mgr.Store().Run(ctx, time.Minute)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		o.log.Info().
			Str("addr", cfg.Addr).
			Str("base_url", reg.BaseURL()).
			Int("endpoints", len(reg.List())).
			Msg("hfocr listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	o.log.Info().Msg("shutting down")
	mgr.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		o.log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
