package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dial-cli/internal/gateway"

	"github.com/google/uuid"
)

// Model is one entry from the gateway's model-discovery endpoint.
type Model struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Object      string `json:"object"`
}

// Name returns the human-facing label, falling back to the id.
func (m Model) Name() string {
	if strings.TrimSpace(m.DisplayName) != "" {
		return m.DisplayName
	}
	return m.ID
}

// ListModels fetches the model list from {discovery}/models, where the
// discovery URL comes from resolving the raw base URL. Auth follows the
// routing mode: Api-Key header in Azure mode, bearer token in direct mode.
func ListModels(ctx context.Context, baseURL string, apiKey string) ([]Model, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errors.New("missing API key: run `dial-cli login` or set DIAL_API_KEY")
	}

	ep := gateway.Resolve(baseURL)
	endpoint := ep.ModelDiscoveryURL + "/models"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if ep.UseAzure {
		req.Header.Set("Api-Key", key)
	} else {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", key))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http_%d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Data []Model `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode model list from %s: %w", endpoint, err)
	}
	return decoded.Data, nil
}
