package types

// EndpointsResponse wraps the registry returned by GET /endpoints.
type EndpointsResponse struct {
	// Available endpoints in display order.
	Endpoints []Endpoint `json:"endpoints"`
	// Name of the endpoint selected for new sessions.
	// example: DeepSeek OCR
	Default string `json:"default" example:"DeepSeek OCR"`
}

// SessionRequest updates the credentials of the calling session.
type SessionRequest struct {
	// Hugging Face access token. Omit to keep the current one.
	// example: hf_xxx
	Token string `json:"token,omitempty" example:"hf_xxx"`
	// Endpoint name from GET /endpoints.
	// example: Microsoft TrOCR
	Endpoint string `json:"endpoint,omitempty" example:"Microsoft TrOCR"`
	// Optional custom inference URL; takes precedence over Endpoint.
	// example: https://router.huggingface.co/hf-inference/models/microsoft/trocr-base-printed
	CustomURL string `json:"custom_url,omitempty"`
}

// SessionResponse describes the calling session. The token itself is never echoed.
type SessionResponse struct {
	// Opaque session identifier (also set as a cookie).
	// example: 4f0c2a9e6b1d4c7f8a3e5b2d1c0f9e8a
	ID string `json:"id" example:"4f0c2a9e6b1d4c7f8a3e5b2d1c0f9e8a"`
	// Whether a token is configured.
	// example: true
	HasToken bool `json:"has_token" example:"true"`
	// Selected endpoint.
	Endpoint Endpoint `json:"endpoint"`
	// Last readiness status observed for the selected endpoint, if any.
	LastStatus *ModelStatus `json:"last_status,omitempty"`
}

// DocumentResponse is returned after a successful upload.
type DocumentResponse struct {
	// Document identifier, scoped to the session.
	// example: 9b1e2c3d
	ID string `json:"id" example:"9b1e2c3d"`
	// Original file name.
	// example: scan.pdf
	Filename string `json:"filename" example:"scan.pdf"`
	// Either "image" or "pdf".
	// example: pdf
	Kind string `json:"kind" example:"pdf"`
	// Number of pages available for processing.
	// example: 3
	Pages int `json:"pages" example:"3"`
}

// OCRResponse is returned by POST /documents/{id}/pages/{n}/ocr.
type OCRResponse struct {
	// Document identifier.
	Document string `json:"document"`
	// 1-based page number.
	// example: 1
	Page int `json:"page" example:"1"`
	// Extracted text; may be empty when the model detected nothing.
	// example: Hello world
	Text string `json:"text" example:"Hello world"`
	// Endpoint name that served the request.
	Endpoint string `json:"endpoint"`
	// Whether the page was normalized before submission.
	Preprocessed bool `json:"preprocessed"`
	// Round-trip duration in milliseconds.
	// example: 850
	DurationMS int64 `json:"duration_ms" example:"850"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid or expired token
	Error string `json:"error" example:"invalid or expired token"`
	// HTTP status code.
	// example: 401
	Code int `json:"code" example:"401"`
	// Machine-readable outcome kind, when known.
	// example: invalid_token
	Kind string `json:"kind,omitempty" example:"invalid_token"`
	// Suggested user action.
	Hint string `json:"hint,omitempty"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall service state.
	// example: ready
	State string `json:"state" example:"ready"`
	// Number of live sessions.
	// example: 2
	Sessions int `json:"sessions" example:"2"`
	// Number of registered endpoints.
	// example: 3
	Endpoints int `json:"endpoints" example:"3"`
	// Inference base URL currently configured.
	BaseURL string `json:"base_url"`
	// Total inference submissions since start.
	// example: 12
	SubmitsTotal uint64 `json:"submits_total" example:"12"`
	// Total pages rasterized since start.
	// example: 40
	PagesRasterized uint64 `json:"pages_rasterized" example:"40"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
