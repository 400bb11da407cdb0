package metaclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/meta-health-agent/internal/config"
	"github.com/vfg2006/meta-health-agent/internal/domain"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

type Client interface {
	GetCampaignInsightsByAccountID(ctx context.Context, accountID string, filters *domain.InsightFilters) ([]domain.CampaignDayRecord, error)
	EnsureValidToken(ctx context.Context) error
}

type MetaClient struct {
	cfg          config.Meta
	tokenManager *TokenManager
	httpClient   *http.Client
}

// NewHTTPClient cria o cliente HTTP compartilhado com o timeout configurado
func NewHTTPClient(cfg config.Meta) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func NewClient(cfg config.Meta, tokenManager *TokenManager, httpClient *http.Client) *MetaClient {
	return &MetaClient{
		cfg:          cfg,
		tokenManager: tokenManager,
		httpClient:   httpClient,
	}
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *MetaClient) EnsureValidToken(ctx context.Context) error {
	return c.tokenManager.EnsureValidToken(ctx)
}
