package openai

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
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Provider habla con la API de chat completions de OpenAI.
type Provider struct {
	client *httpclient.Client
	apiKey string
	model  string
}

func New(client *httpclient.Client, apiKey, baseURL, model string) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: api key is required")
	}
	if client == nil {
		client = httpclient.New(0)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	client.BaseURL = strings.TrimRight(baseURL, "/")
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Provider{client: client, apiKey: apiKey, model: model}, nil
}

func (p *Provider) Name() string { return "openai" }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *Provider) Ask(ctx context.Context, prompt string) (advisor.Answer, error) {
	req := chatRequest{
		Model:    p.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	var resp chatResponse
	err := p.client.DoJSON(ctx, http.MethodPost, "/chat/completions",
		map[string]string{"Authorization": "Bearer " + p.apiKey}, req, &resp)
	if err != nil {
		return advisor.Answer{}, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return advisor.Answer{}, errors.New("openai: empty choices")
	}

	model := resp.Model
	if model == "" {
		model = p.model
	}
	return advisor.Answer{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: model,
	}, nil
}
