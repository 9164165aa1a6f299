package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hfocr/internal/common/fsutil"
	"hfocr/internal/config"
	"hfocr/internal/inference"
	"hfocr/internal/manager"
	"hfocr/internal/raster"
	"hfocr/internal/registry"
	"hfocr/internal/session"
	"hfocr/pkg/types"
)

// options holds flag values shared by every command.
type options struct {
	configPath string
	logLevel   string
	baseURL    string
	statusURL  string
	wire       string
	timeout    time.Duration
	noWarmup   bool
	pdftoppm   string
	tempDir    string

	token     string
	endpoint  string
	customURL string

	getenv func(string) string
	cfg    config.Config
	log    zerolog.Logger
	// httpClient overrides the inference transport in tests.
	httpClient *http.Client
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	o := &options{getenv: getenv}
	root := &cobra.Command{
		Use:           "hfocr",
		Short:         "OCR images and PDFs with Hugging Face hosted models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, o, &serveOptions{})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", "", "Config file (.yaml, .yml, .json, .toml)")
	pf.StringVar(&o.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults HFOCR_LOG_LEVEL or info)")
	pf.StringVar(&o.baseURL, "base-url", "", "Inference base URL (defaults HFOCR_BASE_URL or "+registry.DefaultBaseURL+")")
	pf.StringVar(&o.statusURL, "status-url", "", "Model status base URL (defaults HFOCR_STATUS_URL or "+config.DefaultStatusURL+")")
	pf.StringVar(&o.wire, "wire", "", "Request body format: raw|multipart")
	pf.DurationVar(&o.timeout, "timeout", 0, "Per-request inference timeout (default 60s)")
	pf.BoolVar(&o.noWarmup, "no-warmup", false, "Do not send a warm-up request when a model is loading")
	pf.StringVar(&o.pdftoppm, "pdftoppm", "", "Path to the pdftoppm binary")
	pf.StringVar(&o.tempDir, "temp-dir", "", "Directory for scratch files while rasterizing PDFs")
	pf.StringVar(&o.token, "token", "", "Hugging Face token (defaults HF_TOKEN)")
	pf.StringVar(&o.endpoint, "endpoint", "", "Endpoint name from `hfocr endpoints`")
	pf.StringVar(&o.customURL, "custom-url", "", "Custom inference URL; overrides --endpoint")

	root.AddCommand(newServeCmd(o), newOCRCmd(o), newEndpointsCmd(o), newProbeCmd(o))
	return root
}

// resolve merges config file, environment and flags, in increasing precedence.
func (o *options) resolve(cmd *cobra.Command) error {
	var cfg config.Config
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	cfg = config.FromEnv(cfg, o.getenv)

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("log-level", &cfg.LogLevel, o.logLevel)
	override("base-url", &cfg.BaseURL, o.baseURL)
	override("status-url", &cfg.StatusURL, o.statusURL)
	override("wire", &cfg.WireFormat, o.wire)
	override("pdftoppm", &cfg.Pdftoppm, o.pdftoppm)
	override("temp-dir", &cfg.TempDir, o.tempDir)
	if flags.Changed("timeout") {
		if o.timeout < time.Second {
			return fmt.Errorf("--timeout must be at least 1s, got %s", o.timeout)
		}
		cfg.TimeoutSeconds = int(o.timeout.Seconds())
	}
	if flags.Changed("no-warmup") {
		cfg.DisableWarmup = o.noWarmup
	}
	if !flags.Changed("token") {
		o.token = o.getenv("HF_TOKEN")
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.log = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

// build wires the service graph from the resolved configuration.
func (o *options) build() (*manager.Manager, *registry.Registry, error) {
	cfg := o.cfg
	reg, err := registry.New(cfg.BaseURL, cfg.Endpoints)
	if err != nil {
		return nil, nil, fmt.Errorf("endpoints: %w", err)
	}
	client := inference.New(inference.Config{
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		Wire:       inference.WireFormat(cfg.WireFormat),
		Warmup:     !cfg.DisableWarmup,
		StatusURL:  cfg.StatusURL,
		HTTPClient: o.httpClient,
		Logger:     o.log.With().Str("component", "inference").Logger(),
	})
	tempDir, err := fsutil.EnsureDir(cfg.TempDir)
	if err != nil {
		return nil, nil, fmt.Errorf("temp dir: %w", err)
	}
	rz := raster.New(raster.Config{
		TempDir:  tempDir,
		Renderer: raster.Pdftoppm{Bin: cfg.Pdftoppm},
		Logger:   o.log.With().Str("component", "raster").Logger(),
	})
	mgr := manager.New(manager.Config{
		Registry:   reg,
		Recognizer: client,
		Rasterizer: rz,
		Store:      session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute),
		Logger:     o.log.With().Str("component", "manager").Logger(),
	})
	return mgr, reg, nil
}

// sessionRequest builds the credentials given on the command line.
func (o *options) sessionRequest() types.SessionRequest {
	return types.SessionRequest{Token: o.token, Endpoint: o.endpoint, CustomURL: o.customURL}
}
