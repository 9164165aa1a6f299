package manager

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"hfocr/internal/inference"
	"hfocr/internal/raster"
	"hfocr/pkg/types"
)

func TestEndpoints_DefaultFirst(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, nil)
	resp := m.Endpoints()
	if len(resp.Endpoints) != 3 || resp.Default != "DeepSeek OCR" {
		t.Fatalf("unexpected endpoints: %+v", resp)
	}
	if resp.Endpoints[1].URL != "https://hub.example/models/microsoft/trocr-base-printed" {
		t.Fatalf("url not resolved against base: %s", resp.Endpoints[1].URL)
	}
}

func TestConfigure_EndpointSelection(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, nil)
	id, resp, err := m.Configure("", types.SessionRequest{})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if resp.HasToken || resp.Endpoint.Name != "DeepSeek OCR" {
		t.Fatalf("new session should default: %+v", resp)
	}
	_, resp, err = m.Configure(id, types.SessionRequest{Token: " hf_abc ", Endpoint: "Microsoft TrOCR"})
	if err != nil || !resp.HasToken || resp.Endpoint.Model != "microsoft/trocr-base-printed" {
		t.Fatalf("unexpected: %+v err=%v", resp, err)
	}
	_, resp, err = m.Configure(id, types.SessionRequest{CustomURL: "https://x.example/models/acme/ocr", Endpoint: "Microsoft TrOCR"})
	if err != nil || resp.Endpoint.Name != "Custom" || resp.Endpoint.Model != "acme/ocr" {
		t.Fatalf("custom url should win: %+v err=%v", resp, err)
	}
	if !resp.HasToken {
		t.Fatalf("token must survive endpoint change")
	}
}

func TestConfigure_Errors(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, nil)
	if _, _, err := m.Configure("", types.SessionRequest{Endpoint: "nope"}); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := m.Configure("", types.SessionRequest{CustomURL: "ftp://x"}); !IsBadRequest(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, nil)
	id := newSession(t, m, "hf_x")
	if _, err := m.Upload(context.Background(), id, "a.png", pngBytes(t, 4, 4)); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := m.Clear(id); err != nil {
		t.Fatalf("clear: %v", err)
	}
	_, resp, _ := m.Describe(id)
	if resp.HasToken {
		t.Fatalf("token should be cleared")
	}
	docs, _ := m.Documents(id)
	if len(docs) != 0 {
		t.Fatalf("documents should be cleared: %v", docs)
	}
	if err := m.Clear("missing"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProbe_StoresLastStatus(t *testing.T) {
	rec := &fakeRecognizer{status: types.ModelStatus{Loaded: true, State: "Loaded"}}
	m := newTestManager(t, rec, nil)
	id := newSession(t, m, "hf_x")
	st, err := m.Probe(context.Background(), id)
	if err != nil || !st.Loaded {
		t.Fatalf("probe: %+v %v", st, err)
	}
	_, resp, _ := m.Describe(id)
	if resp.LastStatus == nil || resp.LastStatus.State != "Loaded" {
		t.Fatalf("last status not stored: %+v", resp)
	}
	// switching endpoint forgets it
	_, resp, _ = m.Configure(id, types.SessionRequest{Endpoint: "TrOCR Handwritten"})
	if resp.LastStatus != nil {
		t.Fatalf("last status should reset on endpoint change")
	}
}

func TestProbe_SessionGoneBeforeResultStored(t *testing.T) {
	var logs bytes.Buffer
	rec := &fakeRecognizer{status: types.ModelStatus{State: "Loadable"}}
	m := newTestManager(t, rec, nil)
	m.log = zerolog.New(&logs).Level(zerolog.DebugLevel)
	id := newSession(t, m, "hf_x")
	rec.onProbe = func() { m.Store().Delete(id) }

	st, err := m.Probe(context.Background(), id)
	if err != nil || st.State != "Loadable" {
		t.Fatalf("probe: %+v %v", st, err)
	}
	if !strings.Contains(logs.String(), "probe result not stored") {
		t.Fatalf("expected debug log, got %q", logs.String())
	}
}

func TestUpload_Image(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, nil)
	id := newSession(t, m, "hf_x")
	data := pngBytes(t, 10, 10)
	doc, err := m.Upload(context.Background(), id, "Scan.PNG", data)
	if err != nil || doc.Kind != "image" || doc.Pages != 1 {
		t.Fatalf("upload: %+v %v", doc, err)
	}
	b, ct, err := m.PageImage(id, doc.ID, 1)
	if err != nil || ct != "image/png" || len(b) != len(data) {
		t.Fatalf("page image: ct=%s len=%d err=%v", ct, len(b), err)
	}
}

func TestUpload_Rejections(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, nil)
	id := newSession(t, m, "hf_x")
	ctx := context.Background()
	if _, err := m.Upload(ctx, id, "a.gif", []byte("GIF89a")); !IsUnsupportedMedia(err) {
		t.Fatalf("expected unsupported media, got %v", err)
	}
	if _, err := m.Upload(ctx, id, "a.png", nil); !IsBadRequest(err) {
		t.Fatalf("expected bad request for empty, got %v", err)
	}
	if _, err := m.Upload(ctx, id, "a.png", []byte("not a png")); !IsBadRequest(err) {
		t.Fatalf("expected bad request for garbage, got %v", err)
	}
	if _, err := m.Upload(ctx, "missing", "a.png", pngBytes(t, 2, 2)); !IsNotFound(err) {
		t.Fatalf("expected not found session, got %v", err)
	}
	var he interface{ StatusCode() int }
	_, err := m.Upload(ctx, id, "a.txt", []byte("x"))
	if !errors.As(err, &he) || he.StatusCode() != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 status, got %v", err)
	}
}

func TestUpload_PDF(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, fakeRasterizer{pages: 3, w: 30, h: 60})
	id := newSession(t, m, "hf_x")
	before := testutil.ToFloat64(pagesRasterized)
	doc, err := m.Upload(context.Background(), id, "doc.pdf", []byte("%PDF-1.4"))
	if err != nil || doc.Kind != "pdf" || doc.Pages != 3 {
		t.Fatalf("upload: %+v %v", doc, err)
	}
	if got := testutil.ToFloat64(pagesRasterized) - before; got != 3 {
		t.Fatalf("expected 3 rasterized pages counted, got %v", got)
	}
	if m.Status().PagesRasterized != 3 {
		t.Fatalf("status should report rasterized pages")
	}
	if _, _, err := m.PageImage(id, doc.ID, 4); !IsNotFound(err) {
		t.Fatalf("expected page not found, got %v", err)
	}
}

func TestUpload_PDFConversionError(t *testing.T) {
	cerr := &raster.ConversionError{Reason: "encrypted"}
	m := newTestManager(t, &fakeRecognizer{}, fakeRasterizer{err: cerr})
	id := newSession(t, m, "hf_x")
	before := testutil.ToFloat64(conversionFailures)
	_, err := m.Upload(context.Background(), id, "doc.pdf", []byte("%PDF"))
	if !raster.IsConversionError(err) {
		t.Fatalf("expected conversion error, got %v", err)
	}
	if testutil.ToFloat64(conversionFailures)-before != 1 {
		t.Fatalf("conversion failure not counted")
	}
	docs, _ := m.Documents(id)
	if len(docs) != 0 {
		t.Fatalf("failed upload must not add a document")
	}
}

func TestProcessPage_StoresTextAndCombines(t *testing.T) {
	rec := &fakeRecognizer{text: "hello"}
	m := newTestManager(t, rec, nil)
	id := newSession(t, m, "hf_x")
	doc, _ := m.Upload(context.Background(), id, "doc.pdf", []byte("%PDF"))
	resp, err := m.ProcessPage(context.Background(), id, doc.ID, 1, false)
	if err != nil || resp.Text != "hello" || resp.Endpoint != "DeepSeek OCR" || resp.Page != 1 {
		t.Fatalf("process: %+v %v", resp, err)
	}
	text, err := m.Text(id, doc.ID)
	if err != nil || text != "--- Page 1 ---\nhello\n" {
		t.Fatalf("combined: %q %v", text, err)
	}
	if rec.lastSes.Token != "hf_x" {
		t.Fatalf("token not forwarded")
	}
}

func TestProcessPage_MissingCredential(t *testing.T) {
	rec := &fakeRecognizer{text: "x"}
	m := newTestManager(t, rec, nil)
	id, _, _ := m.Configure("", types.SessionRequest{})
	doc, _ := m.Upload(context.Background(), id, "a.png", pngBytes(t, 3, 3))
	before := testutil.ToFloat64(submitOutcomes.WithLabelValues("DeepSeek OCR", "missing_credential"))
	_, err := m.ProcessPage(context.Background(), id, doc.ID, 1, false)
	if !inference.IsMissingCredential(err) {
		t.Fatalf("expected missing credential, got %v", err)
	}
	if rec.calls != 0 {
		t.Fatalf("recognizer must not be reached without a token")
	}
	if testutil.ToFloat64(submitOutcomes.WithLabelValues("DeepSeek OCR", "missing_credential"))-before != 1 {
		t.Fatalf("outcome not counted")
	}
}

func TestProcessPage_ErrorLeavesPageUnprocessed(t *testing.T) {
	rec := &fakeRecognizer{err: &inference.Error{Kind: inference.KindModelLoading, Status: 503}}
	m := newTestManager(t, rec, nil)
	id := newSession(t, m, "hf_x")
	doc, _ := m.Upload(context.Background(), id, "a.png", pngBytes(t, 3, 3))
	if _, err := m.ProcessPage(context.Background(), id, doc.ID, 1, false); !inference.IsModelLoading(err) {
		t.Fatalf("expected model loading, got %v", err)
	}
	text, _ := m.Text(id, doc.ID)
	if text != "" {
		t.Fatalf("failed page must not appear in output: %q", text)
	}
}

func TestProcessPage_Preprocess(t *testing.T) {
	rec := &fakeRecognizer{text: "ok"}
	m := newTestManager(t, rec, fakeRasterizer{pages: 1, w: 2400, h: 1200})
	id := newSession(t, m, "hf_x")
	doc, _ := m.Upload(context.Background(), id, "big.pdf", []byte("%PDF"))
	resp, err := m.ProcessPage(context.Background(), id, doc.ID, 1, true)
	if err != nil || !resp.Preprocessed {
		t.Fatalf("process: %+v %v", resp, err)
	}
	img, _, err := decodePNG(rec.last)
	if err != nil {
		t.Fatalf("submitted payload is not png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 600 {
		t.Fatalf("expected 1200x600 payload, got %v", b)
	}
	// stored page keeps the original rendering
	stored, _, _ := m.PageImage(id, doc.ID, 1)
	orig, _, _ := decodePNG(stored)
	if orig.Bounds().Dx() != 2400 {
		t.Fatalf("stored page must not be modified")
	}
}

func TestProcessPage_NotFound(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{text: "x"}, nil)
	id := newSession(t, m, "hf_x")
	if _, err := m.ProcessPage(context.Background(), id, "nope", 1, false); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := m.ProcessPage(context.Background(), "nope", "nope", 1, false); !IsNotFound(err) {
		t.Fatalf("expected session not found, got %v", err)
	}
}

func TestClose_Drains(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, nil)
	id := newSession(t, m, "hf_x")
	if !m.Ready() {
		t.Fatalf("expected ready")
	}
	m.Close()
	if m.Ready() || m.Status().State != "draining" {
		t.Fatalf("expected draining")
	}
	if _, err := m.Upload(context.Background(), id, "a.png", pngBytes(t, 2, 2)); !errors.Is(err, ErrDraining) {
		t.Fatalf("expected ErrDraining, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	m := newTestManager(t, &fakeRecognizer{}, nil)
	newSession(t, m, "a")
	newSession(t, m, "b")
	st := m.Status()
	if st.Sessions != 2 || st.Endpoints != 3 || st.BaseURL != "https://hub.example" || st.State != "ready" {
		t.Fatalf("unexpected status: %+v", st)
	}
}
