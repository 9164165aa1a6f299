package httpapi

import (
	"time"

	"hfocr/internal/session"
)

// maxBodyBytes bounds JSON request bodies.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes sets the JSON body limit. n <= 0 restores 1 MiB.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// maxUploadBytes bounds multipart uploads.
var maxUploadBytes int64 = 32 << 20

// SetMaxUploadBytes sets the upload limit. n <= 0 restores 32 MiB.
func SetMaxUploadBytes(n int64) {
	if n <= 0 {
		maxUploadBytes = 32 << 20
		return
	}
	maxUploadBytes = n
}

// multipartMemory is how much of an upload is held in memory before the
// remainder is written to temporary files.
var multipartMemory int64 = 8 << 20

// secureCookies marks the session cookie Secure. Enable behind TLS.
var secureCookies bool

// SetSecureCookies toggles the Secure attribute of the session cookie.
func SetSecureCookies(on bool) { secureCookies = on }

// sessionTTL is the lifetime of the session cookie.
var sessionTTL = session.DefaultTTL

// SetSessionTTL matches the cookie lifetime to the store's idle TTL. d <= 0
// restores the default.
func SetSessionTTL(d time.Duration) {
	if d <= 0 {
		sessionTTL = session.DefaultTTL
		return
	}
	sessionTTL = d
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
