// Package registry holds the static list of hosted OCR endpoints a session can select.
package registry

import (
	"fmt"
	"net/url"
	"strings"

	"hfocr/pkg/types"
)

const (
	// DefaultBaseURL is the Inference Providers router for hf-inference models.
	DefaultBaseURL = "https://router.huggingface.co/hf-inference"
	// LegacyBaseURL is the retired serverless Inference API.
	LegacyBaseURL = "https://api-inference.huggingface.co"
)

// Defaults returns the built-in endpoint list. URLs are left empty and resolved by New.
func Defaults() []types.Endpoint {
	return []types.Endpoint{
		{Name: "DeepSeek OCR", Model: "deepseek-ai/deepseek-ocr", Description: "General document OCR"},
		{Name: "Microsoft TrOCR", Model: "microsoft/trocr-base-printed", Description: "Printed single-line text"},
		{Name: "TrOCR Handwritten", Model: "microsoft/trocr-base-handwritten", Description: "Handwritten single-line text"},
	}
}

// Registry is an immutable, ordered set of endpoints. The first entry is the default.
type Registry struct {
	base      string
	endpoints []types.Endpoint
	byName    map[string]int
}

// New validates eps and resolves missing URLs against base. An empty eps uses Defaults.
func New(base string, eps []types.Endpoint) (*Registry, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := parseHTTPURL(base); err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	if len(eps) == 0 {
		eps = Defaults()
	}
	r := &Registry{base: base, byName: make(map[string]int, len(eps))}
	for _, e := range eps {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, fmt.Errorf("endpoint with empty name")
		}
		if _, dup := r.byName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate endpoint name %q", e.Name)
		}
		if e.URL == "" {
			if e.Model == "" {
				return nil, fmt.Errorf("endpoint %q: model or url required", e.Name)
			}
			e.URL = Resolve(base, e.Model)
		} else if _, err := parseHTTPURL(e.URL); err != nil {
			return nil, fmt.Errorf("endpoint %q: %w", e.Name, err)
		}
		if e.Model == "" {
			e.Model = ModelID(e.URL)
		}
		r.byName[e.Name] = len(r.endpoints)
		r.endpoints = append(r.endpoints, e)
	}
	return r, nil
}

// BaseURL returns the configured inference base URL.
func (r *Registry) BaseURL() string { return r.base }

// List returns a copy of the endpoints in display order.
func (r *Registry) List() []types.Endpoint {
	out := make([]types.Endpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}

// Default returns the first registered endpoint.
func (r *Registry) Default() types.Endpoint { return r.endpoints[0] }

// Lookup finds an endpoint by display name.
func (r *Registry) Lookup(name string) (types.Endpoint, bool) {
	i, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return types.Endpoint{}, false
	}
	return r.endpoints[i], true
}

// Custom builds an ad-hoc endpoint from a user supplied URL.
func (r *Registry) Custom(raw string) (types.Endpoint, error) {
	u, err := parseHTTPURL(strings.TrimSpace(raw))
	if err != nil {
		return types.Endpoint{}, err
	}
	return types.Endpoint{Name: "Custom", Model: ModelID(u.String()), URL: u.String()}, nil
}

// Resolve joins base and a model id into an inference URL.
func Resolve(base, model string) string {
	return strings.TrimRight(base, "/") + "/models/" + strings.Trim(model, "/")
}

// ModelID extracts the model identifier following "/models/" in an inference URL.
// It returns "" when the URL does not follow that layout.
func ModelID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	_, after, ok := strings.Cut(u.Path, "/models/")
	if !ok {
		return ""
	}
	return strings.Trim(after, "/")
}

func parseHTTPURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url %q has no host", raw)
	}
	return u, nil
}
