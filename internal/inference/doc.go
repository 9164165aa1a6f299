// Package inference talks to a hosted OCR model over HTTP.
//
// Submit posts one image to the selected endpoint and classifies the response
// into a fixed set of outcome kinds (see Kind). Probe performs an advisory
// readiness check against the provider's status endpoint. Neither call retries;
// callers decide whether to re-invoke after a loading or rate-limited outcome.
//
// All per-user state (token, selected endpoint) is passed in explicitly through
// Session so the Client itself holds no user data and is safe for concurrent use.
package inference
