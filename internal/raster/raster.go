// Package raster converts PDF documents into ordered page images.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

const (
	// nativeDPI is the PDF user-space resolution.
	nativeDPI = 72
	// DefaultScale renders pages at twice their native resolution.
	DefaultScale = 2
)

// ConversionError reports a PDF that could not be turned into images.
type ConversionError struct {
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return "pdf conversion failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "pdf conversion failed: " + e.Reason
}

func (e *ConversionError) Unwrap() error { return e.Err }

// StatusCode maps conversion failures to 422 Unprocessable Entity.
func (e *ConversionError) StatusCode() int { return http.StatusUnprocessableEntity }

// ErrorKind names the outcome for transport payloads.
func (e *ConversionError) ErrorKind() string { return "conversion_error" }

// Hint suggests a user action.
func (e *ConversionError) Hint() string {
	return "check that the PDF opens without a password, or upload page images instead"
}

// IsConversionError reports whether err is a *ConversionError.
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}

// Page is one rendered page. It is never modified after Rasterize returns it.
type Page struct {
	// Number is the 1-based page index in document order.
	Number int
	Image  image.Image
	// PNG is the encoded form of Image as produced by the renderer.
	PNG []byte
}

// PageRenderer renders a single page of the PDF at path to PNG bytes.
// page is 1-based. Implementations may write scratch files next to path.
type PageRenderer interface {
	RenderPage(ctx context.Context, path string, page, dpi int) ([]byte, error)
}

// Config configures a Rasterizer. Zero values select defaults.
type Config struct {
	// TempDir is where the scratch copy of the input is written. Empty means os.TempDir.
	TempDir string
	// Scale multiplies the native resolution.
	Scale    int
	Renderer PageRenderer
	Logger   zerolog.Logger
}

// Rasterizer renders PDFs page by page. It keeps no state between calls.
type Rasterizer struct {
	tempDir  string
	dpi      int
	renderer PageRenderer
	log      zerolog.Logger
}

// New constructs a Rasterizer. A nil Renderer uses pdftoppm from PATH.
func New(cfg Config) *Rasterizer {
	r := &Rasterizer{tempDir: cfg.TempDir, renderer: cfg.Renderer, log: cfg.Logger}
	scale := cfg.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	r.dpi = nativeDPI * scale
	if r.renderer == nil {
		r.renderer = Pdftoppm{}
	}
	return r
}

// Rasterize renders every page of data, in order. The scratch directory holding
// the input copy is removed before Rasterize returns, on success and failure.
func (r *Rasterizer) Rasterize(ctx context.Context, data []byte) ([]Page, error) {
	dir, err := os.MkdirTemp(r.tempDir, "hfocr-pdf-*")
	if err != nil {
		return nil, &ConversionError{Reason: "create temp dir", Err: err}
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			r.log.Warn().Err(err).Str("dir", dir).Msg("remove temp dir")
		}
	}()

	path := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, &ConversionError{Reason: "write temp file", Err: err}
	}
	n, err := countPages(path)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := r.renderer.RenderPage(ctx, path, i, r.dpi)
		if err != nil {
			return nil, &ConversionError{Reason: fmt.Sprintf("render page %d", i), Err: err}
		}
		img, err := png.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, &ConversionError{Reason: fmt.Sprintf("decode page %d", i), Err: err}
		}
		pages = append(pages, Page{Number: i, Image: img, PNG: b})
	}
	r.log.Debug().Int("pages", n).Int("dpi", r.dpi).Msg("pdf rasterized")
	return pages, nil
}

// countPages opens the PDF and checks that every page in its page tree resolves.
// The parser panics on some malformed inputs; those become ConversionErrors too.
func countPages(path string) (n int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			n, err = 0, &ConversionError{Reason: fmt.Sprintf("invalid pdf: %v", rec)}
		}
	}()
	f, rd, err := pdf.Open(path)
	if err != nil {
		return 0, &ConversionError{Reason: "invalid or encrypted pdf", Err: err}
	}
	defer f.Close()
	n = rd.NumPage()
	if n <= 0 {
		return 0, &ConversionError{Reason: "document has no pages"}
	}
	for i := 1; i <= n; i++ {
		if rd.Page(i).V.IsNull() {
			return 0, &ConversionError{Reason: fmt.Sprintf("page %d missing from page tree", i)}
		}
	}
	return n, nil
}
