package market

import (
	"context"
	"errors"
	"testing"

	"golang-trading-insight/internal/config"
	"golang-trading-insight/internal/dto"
	"golang-trading-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMarketDataRepository struct {
	indices *dto.MarketData
	err     error
	calls   int
}

func (f *fakeMarketDataRepository) GetMarketIndices(ctx context.Context) (*dto.MarketData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.indices, nil
}

func (f *fakeMarketDataRepository) GetStockSnapshot(ctx context.Context, symbol string) (*dto.StockSnapshot, error) {
	return nil, errors.New("not used")
}

// fakeAnalysisService scores a fixed sentiment regardless of input.
type fakeAnalysisService struct {
	sentiment *dto.SentimentResult
	lastData  *dto.MarketData
}

func (f *fakeAnalysisService) AnalyzeStock(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeAnalysisService) GetMarketSentiment(ctx context.Context, data *dto.MarketData) *dto.SentimentResult {
	f.lastData = data
	return f.sentiment
}

func (f *fakeAnalysisService) GenerateTradingPlan(ctx context.Context, holdings []dto.Holding, budget float64, riskTolerance string) (*dto.TradingPlanResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeAnalysisService) SummarizeNews(ctx context.Context, news []dto.NewsItem) (*dto.NewsSummaryResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeAnalysisService) AnalyzeBulk(ctx context.Context, symbols []string, prefs *dto.UserPreferences) []dto.AnalysisResult {
	return nil
}

func newTestMarketService(market *fakeMarketDataRepository, analysisSvc *fakeAnalysisService) Service {
	cfg := &config.Config{}
	log := &logger.Logger{Logger: zap.NewNop()}
	return NewService(cfg, log, nil, market, analysisSvc)
}

func TestGetSentimentWithoutCache(t *testing.T) {
	indices := &dto.MarketData{
		Nifty50: dto.IndexQuote{Value: 24000, ChangePercent: 0.5},
	}
	market := &fakeMarketDataRepository{indices: indices}
	analysisSvc := &fakeAnalysisService{
		sentiment: &dto.SentimentResult{
			Sentiment:  dto.SentimentBullish,
			Confidence: 72,
			Factors:    []string{"Broad rally"},
			Reasoning:  "Indices up across the board",
		},
	}
	svc := newTestMarketService(market, analysisSvc)

	result := svc.GetSentiment(context.Background())
	require.NotNil(t, result)

	assert.Equal(t, dto.SentimentBullish, result.Sentiment)
	assert.Equal(t, 72, result.Confidence)
	assert.Equal(t, 1, market.calls)
	assert.Equal(t, indices, analysisSvc.lastData)
}

func TestRefreshSentimentMarketDataFailure(t *testing.T) {
	market := &fakeMarketDataRepository{err: errors.New("provider down")}
	svc := newTestMarketService(market, &fakeAnalysisService{})

	result := svc.RefreshSentiment(context.Background())
	require.NotNil(t, result)

	assert.Equal(t, dto.SentimentNeutral, result.Sentiment)
	assert.Equal(t, 50, result.Confidence)
	assert.Equal(t, []string{"Market data unavailable"}, result.Factors)
}
