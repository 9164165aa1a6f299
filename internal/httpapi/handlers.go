package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hfocr/docs"
	"hfocr/pkg/types"
)

type handlers struct {
	svc Service
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Debug().Err(err).Msg("encode response")
	}
}

// fail writes err unless the request was abandoned by the client or the server.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	resp := errorResponse(err)
	if serverBaseCtx.Err() != nil && resp.Code == http.StatusInternalServerError {
		resp.Code = http.StatusServiceUnavailable
	}
	if resp.Code >= 500 {
		ev := zlog.Warn().Int("status", resp.Code).Str("kind", resp.Kind).Err(err)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			ev = ev.Str("request_id", rid)
		}
		ev.Msg("request failed")
	}
	writeErrorResponse(w, resp)
}

// endpoints godoc
// @Summary  List OCR endpoints
// @Produce  json
// @Success  200 {object} types.EndpointsResponse
// @Router   /endpoints [get]
func (h *handlers) endpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Endpoints())
}

// status godoc
// @Summary  Service status
// @Produce  json
// @Success  200 {object} types.StatusResponse
// @Router   /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

func (h *handlers) openapi(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, docs.SwaggerInfo.ReadDoc())
}

// getSession godoc
// @Summary  Describe the calling session
// @Produce  json
// @Success  200 {object} types.SessionResponse
// @Router   /session [get]
func (h *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	_, resp, err := h.svc.Describe(sessionFrom(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// putSession godoc
// @Summary  Set token and endpoint
// @Accept   json
// @Produce  json
// @Param    body body types.SessionRequest true "Session settings"
// @Success  200 {object} types.SessionResponse
// @Failure  400 {object} types.ErrorResponse
// @Failure  404 {object} types.ErrorResponse
// @Router   /session [put]
func (h *handlers) putSession(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	cur := sessionFrom(r.Context())
	id, resp, err := h.svc.Configure(cur, req)
	if err != nil {
		fail(w, r, err)
		return
	}
	if id != cur {
		setSession(w, id)
	}
	writeJSON(w, http.StatusOK, resp)
}

// deleteSession godoc
// @Summary  Clear token, endpoint and documents
// @Success  204
// @Router   /session [delete]
func (h *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(sessionFrom(r.Context())); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// probe godoc
// @Summary  Check whether the selected model is loaded
// @Produce  json
// @Success  200 {object} types.ModelStatus
// @Failure  401 {object} types.ErrorResponse
// @Failure  404 {object} types.ErrorResponse
// @Router   /session/status [get]
func (h *handlers) probe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	st, err := h.svc.Probe(ctx, sessionFrom(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// listDocuments godoc
// @Summary  List uploaded documents
// @Produce  json
// @Success  200 {array} types.DocumentResponse
// @Router   /documents [get]
func (h *handlers) listDocuments(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Documents(sessionFrom(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	if list == nil {
		list = []types.DocumentResponse{}
	}
	writeJSON(w, http.StatusOK, list)
}

// upload godoc
// @Summary  Upload an image or PDF
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "jpg, jpeg, png, bmp or pdf"
// @Success  201 {object} types.DocumentResponse
// @Failure  413 {object} types.ErrorResponse
// @Failure  415 {object} types.ErrorResponse
// @Failure  422 {object} types.ErrorResponse
// @Router   /documents [post]
func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			countRejection("too_large")
			fail(w, r, err)
			return
		}
		countRejection("missing_file")
		writeJSONError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	// Parts larger than multipartMemory were spilled to disk.
	defer func() { _ = r.MultipartForm.RemoveAll() }()
	f, hdr, err := r.FormFile("file")
	if err != nil {
		countRejection("missing_file")
		writeJSONError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		countRejection("read_error")
		fail(w, r, err)
		return
	}

	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	doc, err := h.svc.Upload(ctx, sessionFrom(r.Context()), hdr.Filename, data)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// pageImage godoc
// @Summary  Preview a page image
// @Produce  png
// @Param    id path string true "Document id"
// @Param    n  path int    true "1-based page number"
// @Success  200
// @Failure  404 {object} types.ErrorResponse
// @Router   /documents/{id}/pages/{n} [get]
func (h *handlers) pageImage(w http.ResponseWriter, r *http.Request) {
	n, ok := pageParam(w, r)
	if !ok {
		return
	}
	data, ct, err := h.svc.PageImage(sessionFrom(r.Context()), chi.URLParam(r, "id"), n)
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "private, max-age=300")
	_, _ = w.Write(data)
}

// ocr godoc
// @Summary  Extract text from one page
// @Produce  json
// @Param    id         path  string true  "Document id"
// @Param    n          path  int    true  "1-based page number"
// @Param    preprocess query bool   false "Convert to grayscale and downscale before sending"
// @Success  200 {object} types.OCRResponse
// @Failure  401 {object} types.ErrorResponse
// @Failure  404 {object} types.ErrorResponse
// @Failure  422 {object} types.ErrorResponse
// @Failure  429 {object} types.ErrorResponse
// @Failure  502 {object} types.ErrorResponse
// @Failure  503 {object} types.ErrorResponse
// @Failure  504 {object} types.ErrorResponse
// @Router   /documents/{id}/pages/{n}/ocr [post]
func (h *handlers) ocr(w http.ResponseWriter, r *http.Request) {
	n, ok := pageParam(w, r)
	if !ok {
		return
	}
	pre, _ := strconv.ParseBool(r.URL.Query().Get("preprocess"))
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	resp, err := h.svc.ProcessPage(ctx, sessionFrom(r.Context()), chi.URLParam(r, "id"), n, pre)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// text godoc
// @Summary  Download the combined text
// @Produce  plain
// @Param    id path string true "Document id"
// @Success  200 {string} string
// @Failure  404 {object} types.ErrorResponse
// @Router   /documents/{id}/text [get]
func (h *handlers) text(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Text(sessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="extracted_text.txt"`)
	_, _ = io.WriteString(w, out)
}

func pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid page number %q", chi.URLParam(r, "n")))
		return 0, false
	}
	return n, true
}
