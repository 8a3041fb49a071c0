package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/RafaelMurad/PawCare/internal/domain/advisor"
	"github.com/RafaelMurad/PawCare/internal/platform/httpclient"
)

const (
	baseURL      = "https://api.anthropic.com/v1"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-3-5-haiku-20241022"
	maxTokens    = 1024
)

// Provider habla con la API de mensajes de Anthropic.
type Provider struct {
	client *httpclient.Client
	apiKey string
	model  string
}

func New(client *httpclient.Client, apiKey, model string) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	if client == nil {
		client = httpclient.New(0)
	}
	client.BaseURL = baseURL
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Provider{client: client, apiKey: apiKey, model: model}, nil
}

func (p *Provider) Name() string { return "anthropic" }

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *Provider) Ask(ctx context.Context, prompt string) (advisor.Answer, error) {
	req := messagesRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	var resp messagesResponse
	err := p.client.DoJSON(ctx, http.MethodPost, "/messages", map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": apiVersion,
	}, req, &resp)
	if err != nil {
		return advisor.Answer{}, fmt.Errorf("anthropic: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return advisor.Answer{}, errors.New("anthropic: empty content")
	}

	model := resp.Model
	if model == "" {
		model = p.model
	}
	return advisor.Answer{Text: strings.TrimSpace(b.String()), Model: model}, nil
}
