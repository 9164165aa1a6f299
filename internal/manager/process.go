package manager

import (
	"context"
	"time"

	"hfocr/internal/document"
	"hfocr/internal/inference"
	"hfocr/internal/preprocess"
	"hfocr/pkg/types"
)

// ProcessPage submits page n of docID to the session's endpoint and stores the
// recognized text on success. With normalize set the page is converted to
// grayscale and downscaled before submission; the stored image is untouched.
func (m *Manager) ProcessPage(ctx context.Context, id, docID string, n int, normalize bool) (types.OCRResponse, error) {
	if m.draining() {
		return types.OCRResponse{}, ErrDraining
	}
	is, err := m.snapshot(id)
	if err != nil {
		return types.OCRResponse{}, err
	}
	var page *document.Page
	if err := m.withPage(id, docID, n, func(_ *document.Document, p *document.Page) error {
		page = p
		return nil
	}); err != nil {
		return types.OCRResponse{}, err
	}

	payload := page.Data
	if normalize {
		payload, err = preprocess.EncodePNG(preprocess.Normalize(page.Image))
		if err != nil {
			return types.OCRResponse{}, err
		}
	}

	start := time.Now()
	res, err := m.rec.Submit(ctx, payload, is)
	dur := time.Since(start)
	m.submits.Add(1)
	if !inference.IsMissingCredential(err) {
		submitDuration.WithLabelValues(is.Endpoint.Name).Observe(dur.Seconds())
	}
	submitOutcomes.WithLabelValues(is.Endpoint.Name, outcomeLabel(err)).Inc()
	if err != nil {
		m.log.Warn().
			Str("session", shortID(id)).
			Str("endpoint", is.Endpoint.Name).
			Int("page", n).
			Str("kind", inferenceKind(err)).
			Err(err).
			Msg("ocr failed")
		return types.OCRResponse{}, err
	}

	if err := m.withPage(id, docID, n, func(_ *document.Document, p *document.Page) error {
		p.Text = res.Text
		p.Processed = true
		return nil
	}); err != nil {
		// The session was cleared while the call was in flight.
		return types.OCRResponse{}, err
	}
	m.log.Info().
		Str("session", shortID(id)).
		Str("endpoint", is.Endpoint.Name).
		Int("page", n).
		Str("shape", res.Shape.String()).
		Int("chars", len(res.Text)).
		Dur("dur", dur).
		Msg("ocr done")
	return types.OCRResponse{
		Document:     docID,
		Page:         n,
		Text:         res.Text,
		Endpoint:     is.Endpoint.Name,
		Preprocessed: normalize,
		DurationMS:   dur.Milliseconds(),
	}, nil
}
