package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"hfocr/internal/preprocess"
	"hfocr/pkg/types"
)

//go:embed assets/index.html assets/help.md
var assets embed.FS

var (
	indexOnce sync.Once
	indexTmpl *template.Template
	helpHTML  template.HTML
	indexErr  error
)

type indexData struct {
	Title        string
	Endpoints    []types.Endpoint
	Default      string
	Accept       string
	MaxDimension int
	Help         template.HTML
}

func loadIndex() {
	indexTmpl, indexErr = template.ParseFS(assets, "assets/index.html")
	if indexErr != nil {
		return
	}
	src, err := assets.ReadFile("assets/help.md")
	if err != nil {
		indexErr = err
		return
	}
	helpHTML, indexErr = renderMarkdown(src)
}

// renderMarkdown converts trusted, embedded markdown to HTML.
func renderMarkdown(src []byte) (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Linkify))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	indexOnce.Do(loadIndex)
	if indexErr != nil {
		writeJSONError(w, http.StatusInternalServerError, "index unavailable: "+indexErr.Error())
		return
	}
	eps := h.svc.Endpoints()
	data := indexData{
		Title:        "Hugging Face OCR",
		Endpoints:    eps.Endpoints,
		Default:      eps.Default,
		Accept:       ".jpg,.jpeg,.png,.bmp,.pdf",
		MaxDimension: preprocess.MaxDimension,
		Help:         helpHTML,
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "render index: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
