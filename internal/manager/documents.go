package manager

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hfocr/internal/document"
	"hfocr/internal/preprocess"
	"hfocr/internal/raster"
	"hfocr/internal/session"
	"hfocr/pkg/types"
)

// Upload converts filename/data into a document on session id. Images become a
// single page; PDFs are rasterized in page order.
func (m *Manager) Upload(ctx context.Context, id, filename string, data []byte) (types.DocumentResponse, error) {
	if m.draining() {
		return types.DocumentResponse{}, ErrDraining
	}
	kind, err := document.KindOf(filename)
	if err != nil {
		return types.DocumentResponse{}, unsupportedMediaError{msg: err.Error()}
	}
	if len(data) == 0 {
		return types.DocumentResponse{}, badRequestError{msg: "empty upload"}
	}
	if _, err := m.snapshot(id); err != nil {
		return types.DocumentResponse{}, err
	}

	var pages []*document.Page
	switch kind {
	case document.KindImage:
		img, _, err := preprocess.Decode(data)
		if err != nil {
			return types.DocumentResponse{}, badRequestError{msg: "cannot decode image: " + err.Error()}
		}
		pages = []*document.Page{{Number: 1, Image: img, Data: data, ContentType: http.DetectContentType(data)}}
	case document.KindPDF:
		rendered, err := m.raster.Rasterize(ctx, data)
		if err != nil {
			if raster.IsConversionError(err) {
				conversionFailures.Inc()
			}
			m.log.Warn().Err(err).Str("file", filename).Msg("pdf conversion failed")
			return types.DocumentResponse{}, err
		}
		if len(rendered) == 0 {
			conversionFailures.Inc()
			return types.DocumentResponse{}, &raster.ConversionError{Reason: "document has no pages"}
		}
		pagesRasterized.Add(float64(len(rendered)))
		m.rasterize.Add(uint64(len(rendered)))
		for _, p := range rendered {
			pages = append(pages, &document.Page{Number: p.Number, Image: p.Image, Data: p.PNG, ContentType: "image/png"})
		}
	}

	docID, err := session.NewID()
	if err != nil {
		return types.DocumentResponse{}, err
	}
	doc := &document.Document{ID: docID[:12], Filename: filename, Kind: kind, Pages: pages}
	err = m.store.Do(id, func(s *session.Session) error {
		s.AddDocument(doc)
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		return types.DocumentResponse{}, notFoundError{what: "session"}
	}
	if err != nil {
		return types.DocumentResponse{}, err
	}
	m.log.Info().Str("session", shortID(id)).Str("document", doc.ID).Str("kind", string(kind)).Int("pages", len(pages)).Msg("document uploaded")
	return types.DocumentResponse{ID: doc.ID, Filename: filename, Kind: string(kind), Pages: len(pages)}, nil
}

// PageImage returns the stored image of page n and its content type.
func (m *Manager) PageImage(id, docID string, n int) ([]byte, string, error) {
	var (
		data []byte
		ct   string
	)
	err := m.withPage(id, docID, n, func(_ *document.Document, p *document.Page) error {
		data, ct = p.Data, p.ContentType
		return nil
	})
	return data, ct, err
}

// Text returns the combined text of every processed page of docID.
func (m *Manager) Text(id, docID string) (string, error) {
	var out string
	err := m.withDocument(id, docID, func(d *document.Document) error {
		out = d.Combine()
		return nil
	})
	return out, err
}

// Documents lists the documents of session id in upload order.
func (m *Manager) Documents(id string) ([]types.DocumentResponse, error) {
	var out []types.DocumentResponse
	err := m.store.Do(id, func(s *session.Session) error {
		for _, did := range s.DocumentIDs() {
			d := s.Documents[did]
			out = append(out, types.DocumentResponse{ID: d.ID, Filename: d.Filename, Kind: string(d.Kind), Pages: len(d.Pages)})
		}
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		return nil, notFoundError{what: "session"}
	}
	return out, err
}

func (m *Manager) withDocument(id, docID string, fn func(*document.Document) error) error {
	err := m.store.Do(id, func(s *session.Session) error {
		d, ok := s.Documents[docID]
		if !ok {
			return notFoundError{what: "document " + docID}
		}
		return fn(d)
	})
	if errors.Is(err, session.ErrNotFound) {
		return notFoundError{what: "session"}
	}
	return err
}

func (m *Manager) withPage(id, docID string, n int, fn func(*document.Document, *document.Page) error) error {
	return m.withDocument(id, docID, func(d *document.Document) error {
		p, ok := d.Page(n)
		if !ok {
			return notFoundError{what: "page " + strconv.Itoa(n)}
		}
		return fn(d, p)
	})
}
