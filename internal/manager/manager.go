package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"hfocr/internal/inference"
	"hfocr/internal/raster"
	"hfocr/internal/registry"
	"hfocr/internal/session"
	"hfocr/pkg/types"
)

// State is the lifecycle state reported by Status.
type State string

const (
	StateReady    State = "ready"
	StateDraining State = "draining"
)

// Manager owns the session store and routes work to the recognizer and rasterizer.
type Manager struct {
	mu    sync.RWMutex
	state State

	reg    *registry.Registry
	rec    Recognizer
	raster Rasterizer
	store  *session.Store
	log    zerolog.Logger

	submits   atomic.Uint64
	rasterize atomic.Uint64
	startTime time.Time
}

// New constructs a Manager from cfg.
func New(cfg Config) *Manager {
	m := &Manager{
		state:     StateReady,
		reg:       cfg.Registry,
		rec:       cfg.Recognizer,
		raster:    cfg.Rasterizer,
		store:     cfg.Store,
		log:       cfg.Logger,
		startTime: time.Now(),
	}
	if m.raster == nil {
		m.raster = raster.New(raster.Config{Logger: cfg.Logger})
	}
	if m.store == nil {
		m.store = session.NewStore(session.DefaultTTL)
	}
	return m
}

// Store exposes the session store so callers can run its janitor.
func (m *Manager) Store() *session.Store { return m.store }

// Ready reports whether new work is accepted.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateReady && m.reg != nil && m.rec != nil
}

// Close stops accepting new uploads and submissions. In-flight calls finish.
func (m *Manager) Close() {
	m.mu.Lock()
	m.state = StateDraining
	m.mu.Unlock()
}

func (m *Manager) draining() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateDraining
}

// Endpoints lists the registry.
func (m *Manager) Endpoints() types.EndpointsResponse {
	return types.EndpointsResponse{Endpoints: m.reg.List(), Default: m.reg.Default().Name}
}

func inferenceKind(err error) string { return string(inference.KindOf(err)) }
