package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"hfocr/internal/registry"
	"hfocr/pkg/types"
)

// Probe asks the provider whether the session's model is loaded. The answer is
// advisory: Submit never consults it.
func (c *Client) Probe(ctx context.Context, s Session) (types.ModelStatus, error) {
	if strings.TrimSpace(s.Token) == "" {
		return types.ModelStatus{}, &Error{Kind: KindMissingCredential}
	}
	model := s.Endpoint.Model
	if model == "" {
		model = registry.ModelID(s.Endpoint.URL)
	}
	if model == "" {
		return types.ModelStatus{}, &Error{Kind: KindModelNotFound, Message: "cannot derive model id from " + s.Endpoint.URL}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL+"/status/"+model, nil)
	if err != nil {
		return types.ModelStatus{}, &Error{Kind: KindConnection, Message: err.Error(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Accept", "application/json")
	status, body, err := c.do(req)
	if err != nil {
		return types.ModelStatus{}, transportError(err)
	}
	if status != http.StatusOK {
		return types.ModelStatus{}, classify(status, body)
	}
	var ms types.ModelStatus
	if err := json.Unmarshal(body, &ms); err != nil {
		return types.ModelStatus{}, &Error{Kind: KindMalformedResponse, Message: err.Error(), Err: err}
	}
	c.log.Debug().Str("model", model).Bool("loaded", ms.Loaded).Str("state", ms.State).Msg("probe")
	return ms, nil
}
