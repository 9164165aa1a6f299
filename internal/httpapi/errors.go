package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"hfocr/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

type kinded interface{ ErrorKind() string }

type hinted interface{ Hint() string }

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeErrorResponse(w, types.ErrorResponse{Error: msg, Code: status})
}

func writeErrorResponse(w http.ResponseWriter, resp types.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	_ = json.NewEncoder(w).Encode(resp)
}

// errorResponse maps err to a payload. Errors without a status become 500.
func errorResponse(err error) types.ErrorResponse {
	resp := types.ErrorResponse{Error: err.Error(), Code: http.StatusInternalServerError}
	var he HTTPError
	if errors.As(err, &he) {
		resp.Code = he.StatusCode()
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		resp.Code = http.StatusRequestEntityTooLarge
		resp.Error = "upload too large"
	}
	var k kinded
	if errors.As(err, &k) {
		resp.Kind = k.ErrorKind()
	}
	var h hinted
	if errors.As(err, &h) {
		resp.Hint = h.Hint()
	}
	return resp
}
