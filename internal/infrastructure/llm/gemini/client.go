package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
	"github.com/conciergelab/shop-concierge/internal/infrastructure/resilience"
)

// Client calls the Gemini generateContent REST endpoint. Construction
// requires an API key; a missing key is a permanent condition until
// process restart, not a transient miss.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, model, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.WrapError(domain.ErrCredentialMissing, "gemini", errors.New("GEMINI_API_KEY is not set"))
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   resilience.NewExecutor("gemini_generate", resilience.DefaultConfig(), classifyGeminiError),
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r *generateResponse) text() string {
	var b strings.Builder
	for _, candidate := range r.Candidates {
		for _, p := range candidate.Content.Parts {
			b.WriteString(p.Text)
		}
		break
	}
	return b.String()
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	request := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var response generateResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		return c.postJSON(ctx, path, request, &response, "generate")
	})
	if err != nil {
		return "", wrapTemporaryIfNeeded("generate", err)
	}

	text := strings.TrimSpace(response.text())
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty candidate text")
	}
	return text, nil
}
