package inference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hfocr/pkg/types"
)

// WireFormat selects how image bytes are placed in the request body.
type WireFormat string

const (
	// WireRaw sends the image bytes as the request body.
	WireRaw WireFormat = "raw"
	// WireMultipart sends the image as a multipart form field named "data".
	WireMultipart WireFormat = "multipart"
)

const (
	defaultTimeout   = 60 * time.Second
	maxResponseBytes = 4 << 20
	warmupPayload    = `{"inputs":"warmup"}`
)

// Session carries the per-user state a request needs.
type Session struct {
	Token    string
	Endpoint types.Endpoint
}

// Config configures a Client. Zero values select defaults.
type Config struct {
	// Timeout bounds each request including reading the body.
	Timeout time.Duration
	// Wire selects raw or multipart bodies.
	Wire WireFormat
	// Warmup sends one trivial JSON POST after a 503 before reporting ModelLoading.
	Warmup bool
	// StatusURL is the base for GET <StatusURL>/status/<model-id>.
	StatusURL string
	// HTTPClient overrides the transport. Its own Timeout is left untouched.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client submits images to hosted OCR models.
type Client struct {
	http      *http.Client
	timeout   time.Duration
	wire      WireFormat
	warmup    bool
	statusURL string
	log       zerolog.Logger
}

// New constructs a Client from cfg.
func New(cfg Config) *Client {
	c := &Client{
		http:      cfg.HTTPClient,
		timeout:   cfg.Timeout,
		wire:      cfg.Wire,
		warmup:    cfg.Warmup,
		statusURL: strings.TrimRight(cfg.StatusURL, "/"),
		log:       cfg.Logger,
	}
	if c.http == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          16,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		// Deadlines come from the per-request context.
		c.http = &http.Client{Transport: tr}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.wire == "" {
		c.wire = WireRaw
	}
	return c
}

// Submit sends image to the session's endpoint and classifies the response.
// An empty token fails with KindMissingCredential before any network call.
func (c *Client) Submit(ctx context.Context, image []byte, s Session) (Result, error) {
	if strings.TrimSpace(s.Token) == "" {
		return Result{}, &Error{Kind: KindMissingCredential}
	}
	if s.Endpoint.URL == "" {
		return Result{}, &Error{Kind: KindModelNotFound, Message: "no endpoint selected"}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newSubmitRequest(ctx, image, s)
	if err != nil {
		return Result{}, &Error{Kind: KindConnection, Message: err.Error(), Err: err}
	}
	start := time.Now()
	status, body, err := c.do(req)
	if err != nil {
		return Result{}, transportError(err)
	}
	c.log.Debug().
		Str("endpoint", s.Endpoint.Name).
		Int("status", status).
		Int("bytes", len(image)).
		Dur("dur", time.Since(start)).
		Msg("inference response")

	if truncated(body) {
		c.log.Warn().Str("endpoint", s.Endpoint.Name).Int("status", status).Msg("response body truncated")
	}
	switch status {
	case http.StatusOK:
		if truncated(body) {
			return Result{}, &Error{Kind: KindMalformedResponse, Message: fmt.Sprintf("response exceeds %d bytes", maxResponseBytes)}
		}
		return parseResult(body)
	case http.StatusServiceUnavailable:
		if c.warmup {
			c.warmUp(ctx, s)
		}
	}
	return Result{}, classify(status, body)
}

func (c *Client) newSubmitRequest(ctx context.Context, image []byte, s Session) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)
	switch c.wire {
	case WireMultipart:
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("data", "image"+extensionFor(image))
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(image); err != nil {
			return nil, err
		}
		if err := mw.Close(); err != nil {
			return nil, err
		}
		body, contentType = &buf, mw.FormDataContentType()
	default:
		body, contentType = bytes.NewReader(image), http.DetectContentType(image)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint.URL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// warmUp sends one trivial JSON request to nudge a cold model; its outcome is ignored.
func (c *Client) warmUp(ctx context.Context, s Session) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint.URL, strings.NewReader(warmupPayload))
	if err != nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Content-Type", "application/json")
	status, _, err := c.do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("endpoint", s.Endpoint.Name).Msg("warmup failed")
		return
	}
	c.log.Debug().Int("status", status).Str("endpoint", s.Endpoint.Name).Msg("warmup sent")
}

// do reads at most maxResponseBytes+1 bytes of the body; see truncated.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func truncated(body []byte) bool { return len(body) > maxResponseBytes }

// transportError separates timeouts from other transport failures.
func transportError(err error) *Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindConnection, Message: err.Error(), Err: err}
}

func extensionFor(b []byte) string {
	switch http.DetectContentType(b) {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/bmp":
		return ".bmp"
	}
	return ".bin"
}
