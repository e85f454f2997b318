package analysis

import (
	"context"
	"encoding/json"
	"sync"

	"golang-trading-insight/internal/config"
	"golang-trading-insight/internal/dto"
	"golang-trading-insight/internal/entity"
	"golang-trading-insight/internal/repository"
	"golang-trading-insight/pkg/logger"
	"golang-trading-insight/pkg/utils"
)

// Service orchestrates prompt construction, the completion call, and
// response parsing for the four AI analysis operations.
//
// Failure policy: AnalyzeStock, GenerateTradingPlan, and SummarizeNews
// surface an ExternalServiceError when the completion call itself fails;
// GetMarketSentiment and each symbol of AnalyzeBulk absorb those failures,
// since neither may block its caller. Unparseable responses are always
// resolved into typed fallback results, never errors.
type Service interface {
	AnalyzeStock(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResult, error)
	GetMarketSentiment(ctx context.Context, data *dto.MarketData) *dto.SentimentResult
	GenerateTradingPlan(ctx context.Context, holdings []dto.Holding, budget float64, riskTolerance string) (*dto.TradingPlanResult, error)
	SummarizeNews(ctx context.Context, news []dto.NewsItem) (*dto.NewsSummaryResult, error)
	AnalyzeBulk(ctx context.Context, symbols []string, prefs *dto.UserPreferences) []dto.AnalysisResult
}

type service struct {
	cfg         *config.Config
	log         *logger.Logger
	aiRepo      repository.AIRepository
	marketData  repository.MarketDataRepository
	historyRepo repository.AnalysisHistoryRepository
}

// NewService creates a new analysis service. historyRepo may be nil, in
// which case completed analyses are not recorded.
func NewService(cfg *config.Config, log *logger.Logger,
	aiRepo repository.AIRepository,
	marketData repository.MarketDataRepository,
	historyRepo repository.AnalysisHistoryRepository) Service {
	return &service{
		cfg:         cfg,
		log:         log,
		aiRepo:      aiRepo,
		marketData:  marketData,
		historyRepo: historyRepo,
	}
}

// AnalyzeStock runs a single-symbol analysis.
func (s *service) AnalyzeStock(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResult, error) {
	prompt := BuildAnalysisPrompt(req)

	text, err := s.aiRepo.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("Stock analysis completion call failed",
			logger.StringField("symbol", req.Symbol),
			logger.ErrorField(err),
		)
		return nil, dto.NewExternalServiceError("stock analysis", req.Symbol, err)
	}

	result := ParseAnalysisResponse(text, req.Symbol)

	s.recordAnalysis(ctx, req, result)

	return result, nil
}

// GetMarketSentiment scores aggregate market sentiment. It always returns
// a result; a completion-call failure degrades to the NEUTRAL fallback
// because sentiment is dashboard decoration, not a user action.
func (s *service) GetMarketSentiment(ctx context.Context, data *dto.MarketData) *dto.SentimentResult {
	prompt := BuildMarketSentimentPrompt(data)

	text, err := s.aiRepo.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("Market sentiment completion call failed", logger.ErrorField(err))
		return &dto.SentimentResult{
			Sentiment:  dto.SentimentNeutral,
			Confidence: defaultConfidence,
			Factors:    []string{"Unable to analyze market sentiment"},
			Reasoning:  "AI analysis temporarily unavailable",
		}
	}

	return ParseMarketSentimentResponse(text)
}

// GenerateTradingPlan builds a ranked plan for the given holdings.
func (s *service) GenerateTradingPlan(ctx context.Context, holdings []dto.Holding, budget float64, riskTolerance string) (*dto.TradingPlanResult, error) {
	prompt := BuildTradingPlanPrompt(holdings, budget, riskTolerance)

	text, err := s.aiRepo.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("Trading plan completion call failed", logger.ErrorField(err))
		return nil, dto.NewExternalServiceError("trading plan", "", err)
	}

	return ParseTradingPlanResponse(text), nil
}

// SummarizeNews condenses the given headlines.
func (s *service) SummarizeNews(ctx context.Context, news []dto.NewsItem) (*dto.NewsSummaryResult, error) {
	prompt := BuildNewsSummaryPrompt(news)

	text, err := s.aiRepo.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("News summary completion call failed", logger.ErrorField(err))
		return nil, dto.NewExternalServiceError("news summary", "", err)
	}

	return ParseNewsSummaryResponse(text), nil
}

// AnalyzeBulk analyzes up to the configured maximum number of symbols in
// fixed-size groups. Symbols within a group run concurrently; the group is
// awaited before the next one starts, bounding simultaneous upstream load.
// A failed symbol is dropped from the output; input order is preserved for
// the symbols that succeeded.
func (s *service) AnalyzeBulk(ctx context.Context, symbols []string, prefs *dto.UserPreferences) []dto.AnalysisResult {
	if len(symbols) > s.cfg.Analysis.BulkMaxSymbols {
		symbols = symbols[:s.cfg.Analysis.BulkMaxSymbols]
	}

	analyses := make([]dto.AnalysisResult, 0, len(symbols))

	for _, group := range utils.Chunk(symbols, s.cfg.Analysis.BulkBatchSize) {
		if !utils.ShouldContinue(ctx, s.log) {
			break
		}

		groupResults := make([]*dto.AnalysisResult, len(group))
		var wg sync.WaitGroup
		for i, symbol := range group {
			wg.Add(1)
			idx, code := i, symbol
			utils.GoSafe(func() {
				defer wg.Done()
				result, err := s.analyzeSymbol(ctx, code, prefs)
				if err != nil {
					s.log.Error("Bulk analysis failed for symbol",
						logger.StringField("symbol", code),
						logger.ErrorField(err),
					)
					return
				}
				groupResults[idx] = result
			})
		}
		wg.Wait()

		for _, result := range groupResults {
			if result != nil {
				analyses = append(analyses, *result)
			}
		}
	}

	return analyses
}

func (s *service) analyzeSymbol(ctx context.Context, symbol string, prefs *dto.UserPreferences) (*dto.AnalysisResult, error) {
	snapshot, err := s.marketData.GetStockSnapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return s.AnalyzeStock(ctx, &dto.AnalysisRequest{
		Symbol:              symbol,
		CurrentPrice:        snapshot.CurrentPrice,
		HistoricalData:      snapshot.HistoricalData,
		NewsData:            snapshot.NewsData,
		TechnicalIndicators: snapshot.TechnicalIndicators,
		UserPreferences:     prefs,
	})
}

// recordAnalysis persists the outcome for history and auditing. Failures
// are logged, not surfaced; persistence must not break the analysis path.
func (s *service) recordAnalysis(ctx context.Context, req *dto.AnalysisRequest, result *dto.AnalysisResult) {
	if s.historyRepo == nil {
		return
	}

	keyFactorsJSON, _ := json.Marshal(result.KeyFactors)
	requestJSON, _ := json.Marshal(req)
	responseJSON, _ := json.Marshal(result)

	err := s.historyRepo.Create(ctx, &entity.AIAnalysis{
		Symbol:         result.Symbol,
		Recommendation: result.Recommendation,
		Confidence:     result.Confidence,
		Reasoning:      result.Reasoning,
		TargetPrice:    result.TargetPrice,
		StopLoss:       result.StopLoss,
		Timeframe:      result.Timeframe,
		RiskLevel:      result.RiskLevel,
		KeyFactors:     keyFactorsJSON,
		RequestData:    requestJSON,
		ResponseData:   responseJSON,
	})
	if err != nil {
		s.log.Error("Failed to record analysis",
			logger.StringField("symbol", result.Symbol),
			logger.ErrorField(err),
		)
	}
}
