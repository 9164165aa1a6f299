package httpapi

import (
	"context"
	"sync"

	"hfocr/pkg/types"
)

// mockService records the arguments of the last call and answers from its fields.
type mockService struct {
	mu sync.Mutex

	endpoints types.EndpointsResponse
	status    types.StatusResponse
	ready     bool
	probe     types.ModelStatus
	doc       types.DocumentResponse
	docs      []types.DocumentResponse
	page      []byte
	pageType  string
	ocr       types.OCRResponse
	text      string
	err       error

	gotSession    string
	gotRequest    types.SessionRequest
	gotFilename   string
	gotData       []byte
	gotDoc        string
	gotPage       int
	gotPreprocess bool
	cleared       bool
}

func (m *mockService) Endpoints() types.EndpointsResponse { return m.endpoints }
func (m *mockService) Status() types.StatusResponse       { return m.status }
func (m *mockService) Ready() bool                        { return m.ready }

func (m *mockService) Describe(id string) (string, types.SessionResponse, error) {
	if id == "" || id == "expired" {
		id = "s-new"
	}
	return id, types.SessionResponse{ID: id}, nil
}

func (m *mockService) Configure(id string, req types.SessionRequest) (string, types.SessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotSession, m.gotRequest = id, req
	if m.err != nil {
		return "", types.SessionResponse{}, m.err
	}
	return id, types.SessionResponse{ID: id, HasToken: req.Token != "", Endpoint: types.Endpoint{Name: req.Endpoint}}, nil
}

func (m *mockService) Clear(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotSession, m.cleared = id, true
	return m.err
}

func (m *mockService) Probe(ctx context.Context, id string) (types.ModelStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotSession = id
	return m.probe, m.err
}

func (m *mockService) Upload(ctx context.Context, id, filename string, data []byte) (types.DocumentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotSession, m.gotFilename, m.gotData = id, filename, data
	return m.doc, m.err
}

func (m *mockService) Documents(id string) ([]types.DocumentResponse, error) {
	m.gotSession = id
	return m.docs, m.err
}

func (m *mockService) PageImage(id, docID string, n int) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotSession, m.gotDoc, m.gotPage = id, docID, n
	return m.page, m.pageType, m.err
}

func (m *mockService) ProcessPage(ctx context.Context, id, docID string, n int, preprocess bool) (types.OCRResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotSession, m.gotDoc, m.gotPage, m.gotPreprocess = id, docID, n, preprocess
	return m.ocr, m.err
}

func (m *mockService) Text(id, docID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotSession, m.gotDoc = id, docID
	return m.text, m.err
}

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }
