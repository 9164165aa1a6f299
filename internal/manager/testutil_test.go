package manager

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"hfocr/internal/inference"
	"hfocr/internal/raster"
	"hfocr/internal/registry"
	"hfocr/pkg/types"
)

// fakeRecognizer records submissions and answers from its fields.
type fakeRecognizer struct {
	mu      sync.Mutex
	text    string
	err     error
	status  types.ModelStatus
	calls   int
	last    []byte
	lastSes inference.Session
	onProbe func()
}

func (f *fakeRecognizer) Submit(ctx context.Context, img []byte, s inference.Session) (inference.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.Token == "" {
		return inference.Result{}, &inference.Error{Kind: inference.KindMissingCredential}
	}
	f.calls++
	f.last = img
	f.lastSes = s
	if f.err != nil {
		return inference.Result{}, f.err
	}
	return inference.Result{Text: f.text, Shape: inference.ShapeList}, nil
}

func (f *fakeRecognizer) Probe(ctx context.Context, s inference.Session) (types.ModelStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSes = s
	if f.onProbe != nil {
		f.onProbe()
	}
	if f.err != nil {
		return types.ModelStatus{}, f.err
	}
	return f.status, nil
}

// fakeRasterizer returns n pages of the given size, or err.
type fakeRasterizer struct {
	pages int
	w, h  int
	err   error
}

func (f fakeRasterizer) Rasterize(ctx context.Context, data []byte) ([]raster.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]raster.Page, 0, f.pages)
	for i := 1; i <= f.pages; i++ {
		img := image.NewRGBA(image.Rect(0, 0, f.w, f.h))
		img.Set(0, 0, color.RGBA{R: uint8(i), A: 255})
		var buf bytes.Buffer
		_ = png.Encode(&buf, img)
		out = append(out, raster.Page{Number: i, Image: img, PNG: buf.Bytes()})
	}
	return out, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func newTestManager(t *testing.T, rec *fakeRecognizer, rz Rasterizer) *Manager {
	t.Helper()
	reg, err := registry.New("https://hub.example", nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if rz == nil {
		rz = fakeRasterizer{pages: 2, w: 40, h: 20}
	}
	return New(Config{Registry: reg, Recognizer: rec, Rasterizer: rz})
}

// newSession returns a configured session id carrying token.
func newSession(t *testing.T, m *Manager, token string) string {
	t.Helper()
	id, _, err := m.Configure("", types.SessionRequest{Token: token})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	return id
}

func decodePNG(b []byte) (image.Image, string, error) {
	img, err := png.Decode(bytes.NewReader(b))
	return img, "png", err
}
