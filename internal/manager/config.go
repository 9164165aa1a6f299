package manager

import (
	"context"

	"github.com/rs/zerolog"

	"hfocr/internal/inference"
	"hfocr/internal/raster"
	"hfocr/internal/registry"
	"hfocr/internal/session"
	"hfocr/pkg/types"
)

// Recognizer submits images and probes model readiness. *inference.Client implements it.
type Recognizer interface {
	Submit(ctx context.Context, image []byte, s inference.Session) (inference.Result, error)
	Probe(ctx context.Context, s inference.Session) (types.ModelStatus, error)
}

// Rasterizer renders PDF bytes into page images. *raster.Rasterizer implements it.
type Rasterizer interface {
	Rasterize(ctx context.Context, data []byte) ([]raster.Page, error)
}

// Config wires a Manager. Registry and Recognizer are required.
type Config struct {
	Registry   *registry.Registry
	Recognizer Recognizer
	// Rasterizer defaults to raster.New with pdftoppm from PATH.
	Rasterizer Rasterizer
	// Store defaults to an empty store with session.DefaultTTL.
	Store  *session.Store
	Logger zerolog.Logger
}
