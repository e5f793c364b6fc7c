package geminiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/cafe-manager-api/internal/config"
)

type Client interface {
	GenerateContent(ctx context.Context, req GenerateParams) (string, error)
}

type GeminiClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente Gemini. O timeout é longo
// porque a análise de imagem leva dezenas de segundos em planilhas densas.
func NewClient(cfg *config.Config) Client {
	return &GeminiClient{
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		config: cfg,
	}
}
