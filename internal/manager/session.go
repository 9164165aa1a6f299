package manager

import (
	"context"
	"errors"
	"strings"

	"hfocr/internal/inference"
	"hfocr/internal/session"
	"hfocr/pkg/types"
)

// Describe returns the session for id, creating one when id is empty or unknown.
// The returned id is the one the caller must use from now on.
func (m *Manager) Describe(id string) (string, types.SessionResponse, error) {
	id, err := m.store.Ensure(id)
	if err != nil {
		return "", types.SessionResponse{}, err
	}
	var out types.SessionResponse
	err = m.store.Do(id, func(s *session.Session) error {
		m.defaultEndpoint(s)
		out = describe(s)
		return nil
	})
	return id, out, err
}

// Configure applies token and endpoint changes. A custom URL wins over an
// endpoint name; empty fields leave the current value untouched.
func (m *Manager) Configure(id string, req types.SessionRequest) (string, types.SessionResponse, error) {
	ep, err := m.resolveEndpoint(req)
	if err != nil {
		return "", types.SessionResponse{}, err
	}
	id, err = m.store.Ensure(id)
	if err != nil {
		return "", types.SessionResponse{}, err
	}
	var out types.SessionResponse
	err = m.store.Do(id, func(s *session.Session) error {
		if tok := strings.TrimSpace(req.Token); tok != "" {
			s.Token = tok
		}
		if ep != nil && ep.URL != s.Endpoint.URL {
			s.Endpoint = *ep
			s.LastStatus = nil
		}
		m.defaultEndpoint(s)
		out = describe(s)
		return nil
	})
	if err == nil {
		m.log.Info().Str("session", shortID(id)).Str("endpoint", out.Endpoint.Name).Bool("has_token", out.HasToken).Msg("session configured")
	}
	return id, out, err
}

// Clear drops credentials, endpoint choice and documents of session id.
func (m *Manager) Clear(id string) error {
	err := m.store.Do(id, func(s *session.Session) error {
		s.Reset()
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		return notFoundError{what: "session"}
	}
	return err
}

// Probe asks the status endpoint whether the session's model is loaded and
// remembers the answer on the session.
func (m *Manager) Probe(ctx context.Context, id string) (types.ModelStatus, error) {
	is, err := m.snapshot(id)
	if err != nil {
		return types.ModelStatus{}, err
	}
	st, err := m.rec.Probe(ctx, is)
	if err != nil {
		m.log.Debug().Err(err).Str("endpoint", is.Endpoint.Name).Msg("probe failed")
		return types.ModelStatus{}, err
	}
	err = m.store.Do(id, func(s *session.Session) error {
		if s.Endpoint.URL == is.Endpoint.URL {
			s.LastStatus = &st
		}
		return nil
	})
	if err != nil {
		m.log.Debug().Err(err).Str("session", shortID(id)).Msg("probe result not stored")
	}
	return st, nil
}

// snapshot copies the credentials of session id so they can be used without the lock.
func (m *Manager) snapshot(id string) (inference.Session, error) {
	var is inference.Session
	err := m.store.Do(id, func(s *session.Session) error {
		m.defaultEndpoint(s)
		is = inference.Session{Token: s.Token, Endpoint: s.Endpoint}
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		return is, notFoundError{what: "session"}
	}
	return is, err
}

func (m *Manager) resolveEndpoint(req types.SessionRequest) (*types.Endpoint, error) {
	if raw := strings.TrimSpace(req.CustomURL); raw != "" {
		ep, err := m.reg.Custom(raw)
		if err != nil {
			return nil, badRequestError{msg: "custom url: " + err.Error()}
		}
		return &ep, nil
	}
	if name := strings.TrimSpace(req.Endpoint); name != "" {
		ep, ok := m.reg.Lookup(name)
		if !ok {
			return nil, notFoundError{what: "endpoint " + name}
		}
		return &ep, nil
	}
	return nil, nil
}

func (m *Manager) defaultEndpoint(s *session.Session) {
	if s.Endpoint.URL == "" {
		s.Endpoint = m.reg.Default()
	}
}

func describe(s *session.Session) types.SessionResponse {
	out := types.SessionResponse{ID: s.ID, HasToken: s.Token != "", Endpoint: s.Endpoint}
	if s.LastStatus != nil {
		st := *s.LastStatus
		out.LastStatus = &st
	}
	return out
}

// shortID keeps log lines from carrying full session ids.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
