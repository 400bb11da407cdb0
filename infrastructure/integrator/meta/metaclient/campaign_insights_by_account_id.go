package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-health-agent/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-health-agent/internal/domain"
)

const accountPrefix = "act_"

// maxPages limita a paginação caso a API devolva cursores em ciclo
var maxPages = 1000

// ErrTooManyPages evita um relatório calculado sobre parte das linhas
var ErrTooManyPages = errors.New("meta: pagination exceeded the page limit, insights would be incomplete")

// AccountPath retorna o identificador da conta com o prefixo act_, sem duplicá-lo
func AccountPath(accountID string) string {
	if strings.HasPrefix(accountID, accountPrefix) {
		return accountID
	}
	return accountPrefix + accountID
}

// GetCampaignInsightsByAccountID busca as linhas campanha×dia do período, seguindo todas as páginas
func (c *MetaClient) GetCampaignInsightsByAccountID(ctx context.Context, accountID string, filters *domain.InsightFilters) ([]domain.CampaignDayRecord, error) {
	if !filters.Valid() {
		return nil, errors.New("meta: start and end dates are required")
	}

	if err := c.EnsureValidToken(ctx); err != nil {
		return nil, errors.Wrap(err, "meta: checking token validity")
	}

	pageURL := c.insightsURL(accountID, filters)
	records := make([]domain.CampaignDayRecord, 0)

	for page := 0; pageURL != "" && page < maxPages; page++ {
		result, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		records = append(records, result.Data...)
		pageURL = result.Paging.Next
	}

	if pageURL != "" {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"pages":      maxPages,
			"records":    len(records),
		}).Warn("meta: stopped following campaign insights pagination")
		return nil, errors.Wrapf(ErrTooManyPages, "account %s", accountID)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"records":    len(records),
	}).Debug("meta: campaign insights retrieved")

	return records, nil
}

func (c *MetaClient) insightsURL(accountID string, filters *domain.InsightFilters) string {
	baseURL := fmt.Sprintf("%s/%s/insights", c.cfg.URL, AccountPath(accountID))

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}",
		filters.StartDate.Format(time.DateOnly),
		filters.EndDate.Format(time.DateOnly),
	)

	params := url.Values{}
	params.Add("level", "campaign")
	params.Add("fields", strings.Join(metadomain.CampaignInsightFields, ","))
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("limit", strconv.Itoa(c.cfg.PageLimit))
	params.Add("access_token", c.tokenManager.AccessToken())

	return baseURL + "?" + params.Encode()
}

// fetchPage busca uma página; se o token foi renovado, repete uma única vez com o novo token
func (c *MetaClient) fetchPage(ctx context.Context, pageURL string) (*metadomain.CampaignInsightsPage, error) {
	body, err := c.get(ctx, pageURL)
	if errors.Is(err, ErrTokenRefreshed) {
		retryURL, urlErr := withAccessToken(pageURL, c.tokenManager.AccessToken())
		if urlErr != nil {
			return nil, urlErr
		}
		body, err = c.get(ctx, retryURL)
	}
	if err != nil {
		return nil, err
	}

	var page metadomain.CampaignInsightsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Wrap(err, "meta: decoding insights page")
	}

	return &page, nil
}

func (c *MetaClient) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "meta: building insights request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "meta: insights request failed")
	}
	defer resp.Body.Close()

	return c.tokenManager.HandleResponse(ctx, resp)
}

func withAccessToken(rawURL, token string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "meta: parsing request url")
	}

	query := parsed.Query()
	query.Set("access_token", token)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
