package metaclient

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-health-agent/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-health-agent/internal/config"
)

// ErrTokenRefreshed indica que o token expirou e foi renovado; a requisição pode ser repetida
var ErrTokenRefreshed = errors.New("meta: access token expired and was refreshed, retry the request")

// ErrTokenExpired indica que o token expirou e não pode ser renovado automaticamente
var ErrTokenExpired = errors.New("meta: access token expired and cannot be refreshed automatically")

const refreshInterval = 23 * time.Hour

// TokenManager gerencia o token de acesso da API do Meta
type TokenManager struct {
	cfg         config.Meta
	httpClient  *http.Client
	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	exchanged   bool
	now         func() time.Time
	stopRefresh chan struct{}
	stopOnce    sync.Once
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg config.Meta, httpClient *http.Client) *TokenManager {
	return &TokenManager{
		cfg:         cfg,
		httpClient:  httpClient,
		accessToken: cfg.AccessToken,
		now:         time.Now,
		stopRefresh: make(chan struct{}),
	}
}

// AccessToken retorna o token atual
func (tm *TokenManager) AccessToken() string {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.accessToken
}

// EnsureValidToken troca o token por um de longa duração na primeira chamada
// e o renova quando faltam menos de 24 horas para expirar.
// Sem credenciais do app, o token configurado é usado como está.
func (tm *TokenManager) EnsureValidToken(ctx context.Context) error {
	if !tm.cfg.CanExchangeToken() {
		return nil
	}

	tm.mu.Lock()
	needsRefresh := !tm.exchanged ||
		(!tm.expiresAt.IsZero() && tm.expiresAt.Sub(tm.now()) < 24*time.Hour)
	tm.mu.Unlock()

	if !needsRefresh {
		return nil
	}

	return tm.RefreshToken(ctx)
}

// RefreshToken obtém um novo token de longa duração a partir do atual
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	if !tm.cfg.CanExchangeToken() {
		return ErrTokenExpired
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	tokenResp, err := GetLongLivedToken(ctx, tm.httpClient, tm.accessToken, tm.cfg.AppID, tm.cfg.AppSecret, tm.cfg.URL)
	if err != nil {
		if metadomain.ContainsTokenExpirationMessage(err.Error()) {
			logrus.WithError(err).Error("meta: access token expired and requires a new OAuth authorization")
			return errors.Wrap(ErrTokenExpired, err.Error())
		}
		return err
	}

	tm.accessToken = tokenResp.AccessToken
	tm.expiresAt = CalculateTokenExpiration(tm.now(), tokenResp.ExpiresIn)
	tm.exchanged = true

	fields := logrus.Fields{}
	if !tm.expiresAt.IsZero() {
		fields["refresh_before"] = tm.expiresAt.Format(time.RFC3339)
	}
	logrus.WithFields(fields).Info("meta: long-lived access token refreshed")

	return nil
}

// StartAutoRefresh renova o token periodicamente até StopAutoRefresh ser chamado
func (tm *TokenManager) StartAutoRefresh(ctx context.Context) {
	if !tm.cfg.CanExchangeToken() {
		return
	}

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.WithError(err).Error("meta: periodic token refresh failed")
				ticker.Reset(1 * time.Hour)
				continue
			}
			ticker.Reset(refreshInterval)
		case <-tm.stopRefresh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// StopAutoRefresh para a goroutine de renovação automática
func (tm *TokenManager) StopAutoRefresh() {
	tm.stopOnce.Do(func() {
		close(tm.stopRefresh)
	})
}

// HandleResponse lê o corpo da resposta e trata erros de token expirado
func (tm *TokenManager) HandleResponse(ctx context.Context, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "meta: reading response body")
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	var errorResp metadomain.ErrorResponse
	parseErr := json.Unmarshal(body, &errorResp)

	if (parseErr == nil && errorResp.IsTokenExpired()) || metadomain.ContainsTokenExpirationMessage(string(body)) {
		logrus.WithFields(logrus.Fields{
			"code":    errorResp.Error.Code,
			"subcode": errorResp.Error.ErrorSubcode,
		}).Warn("meta: expired access token detected")

		if refreshErr := tm.RefreshToken(ctx); refreshErr != nil {
			return nil, errors.Wrap(refreshErr, "meta: refreshing expired token")
		}

		return nil, ErrTokenRefreshed
	}

	if parseErr == nil && errorResp.Error.Message != "" {
		return nil, errors.Errorf("meta: request failed with status %d: %s", resp.StatusCode, errorResp.Error.Message)
	}

	return nil, errors.Errorf("meta: request failed with status %d: %s", resp.StatusCode, body)
}
