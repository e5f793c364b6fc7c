package geminiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	geminidomain "github.com/vfg2006/cafe-manager-api/infrastructure/integrator/gemini/domain"
)

type GenerateParams struct {
	Prompt      string
	ImageBase64 string
	MimeType    string
}

// GenerateContent chama o endpoint generateContent com a imagem inline e o
// prompt, pedindo resposta em JSON, e devolve o texto do primeiro candidato.
func (c *GeminiClient) GenerateContent(ctx context.Context, params GenerateParams) (string, error) {
	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.Gemini.BaseURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, fmt.Sprintf("/v1beta/models/%s:generateContent", c.config.Gemini.Model))

	body := geminidomain.GenerateContentRequest{
		Contents: []geminidomain.Content{
			{
				Parts: []geminidomain.Part{
					{
						InlineData: &geminidomain.InlineData{
							MimeType: params.MimeType,
							Data:     params.ImageBase64,
						},
					},
					{Text: params.Prompt},
				},
			},
		},
		GenerationConfig: &geminidomain.GenerationConfig{
			ResponseMimeType: "application/json",
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.Gemini.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("requisição falhou com status %s: %s", resp.Status, string(raw))
	}

	var response geminidomain.GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	text := response.Text()
	if text == "" {
		return "", fmt.Errorf("resposta do Gemini sem conteúdo")
	}

	return text, nil
}
