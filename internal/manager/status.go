package manager

import (
	"time"

	"hfocr/pkg/types"
)

// Status builds the response for GET /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()
	now := time.Now()
	return types.StatusResponse{
		State:           string(state),
		Sessions:        m.store.Len(),
		Endpoints:       len(m.reg.List()),
		BaseURL:         m.reg.BaseURL(),
		SubmitsTotal:    m.submits.Load(),
		PagesRasterized: m.rasterize.Load(),
		UptimeSeconds:   int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:  now.Unix(),
	}
}
