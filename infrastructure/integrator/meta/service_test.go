package meta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-health-agent/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/pkg/log"
	"go.uber.org/mock/gomock"
)

func filters() *domain.InsightFilters {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	return &domain.InsightFilters{StartDate: &start, EndDate: &end}
}

func TestMetaIntegrator_GetCampaignDayRecords(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	f := filters()
	expected := []domain.CampaignDayRecord{{CampaignID: "1", CampaignName: "A"}}
	client.EXPECT().GetCampaignInsightsByAccountID(gomock.Any(), "123", f).Return(expected, nil)

	records, err := New(client).GetCampaignDayRecords(context.Background(), "123", f)

	require.NoError(t, err)
	assert.Equal(t, expected, records)
}

func TestMetaIntegrator_GetCampaignDayRecords_PropagatesError(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	upstreamErr := errors.New("meta: request failed with status 500: boom")
	client.EXPECT().GetCampaignInsightsByAccountID(gomock.Any(), "123", gomock.Any()).Return(nil, upstreamErr)

	records, err := New(client).GetCampaignDayRecords(context.Background(), "123", filters())

	assert.Nil(t, records)
	assert.ErrorIs(t, err, upstreamErr)
}
