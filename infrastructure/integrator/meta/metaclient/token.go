package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// GetLongLivedToken troca um token (curto ou longo) por um novo token de longa duração
func GetLongLivedToken(ctx context.Context, httpClient *http.Client, token, appID, appSecret, graphURL string) (*TokenResponse, error) {
	if token == "" {
		return nil, errors.New("meta: access token must not be empty")
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", appID)
	params.Add("client_secret", appSecret)
	params.Add("fb_exchange_token", token)

	requestURL := fmt.Sprintf("%s/oauth/access_token?%s", graphURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "meta: building token exchange request")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "meta: token exchange request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "meta: reading token exchange response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("meta: token exchange failed with status %d: %s", resp.StatusCode, body)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, errors.Wrap(err, "meta: decoding token exchange response")
	}

	if tokenResp.AccessToken == "" {
		return nil, errors.New("meta: token exchange returned an empty token")
	}

	return &tokenResp, nil
}

// CalculateTokenExpiration calcula quando o token deve ser renovado.
// Um dia é descontado para renovar antes da expiração real; zero significa desconhecido.
func CalculateTokenExpiration(now time.Time, expiresIn int64) time.Time {
	if expiresIn <= 0 {
		return time.Time{}
	}

	buffer := int64(24 * 60 * 60)
	safeExpiresIn := expiresIn - buffer
	if safeExpiresIn < 0 {
		safeExpiresIn = expiresIn / 2
	}

	return now.Add(time.Duration(safeExpiresIn) * time.Second)
}
