package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hfocr/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Endpoints() types.EndpointsResponse
	Describe(id string) (string, types.SessionResponse, error)
	Configure(id string, req types.SessionRequest) (string, types.SessionResponse, error)
	Clear(id string) error
	Probe(ctx context.Context, id string) (types.ModelStatus, error)
	Upload(ctx context.Context, id, filename string, data []byte) (types.DocumentResponse, error)
	Documents(id string) ([]types.DocumentResponse, error)
	PageImage(id, docID string, n int) ([]byte, string, error)
	ProcessPage(ctx context.Context, id, docID string, n int, preprocess bool) (types.OCRResponse, error)
	Text(id, docID string) (string, error)
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the router.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)
	r.Use(middleware.Compress(5, "application/json", "text/html", "text/plain"))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsAllowedOrigins,
			AllowedMethods:   corsAllowedMethods,
			AllowedHeaders:   corsAllowedHeaders,
			ExposedHeaders:   []string{SessionHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	h := &handlers{svc: svc}
	r.Get("/", h.index)
	r.Get("/endpoints", h.endpoints)
	r.Get("/status", h.status)
	r.Get("/openapi.json", h.openapi)

	r.Group(func(r chi.Router) {
		r.Use(withSession(svc))
		r.Get("/session", h.getSession)
		r.Put("/session", h.putSession)
		r.Delete("/session", h.deleteSession)
		r.Get("/session/status", h.probe)

		r.Get("/documents", h.listDocuments)
		r.Post("/documents", h.upload)
		r.Get("/documents/{id}/pages/{n}", h.pageImage)
		r.Post("/documents/{id}/pages/{n}/ocr", h.ocr)
		r.Get("/documents/{id}/text", h.text)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("draining"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	return r
}
