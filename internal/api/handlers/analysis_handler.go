package handlers

import (
	"net/http"
	"strconv"

	"golang-trading-insight/internal/config"
	"golang-trading-insight/internal/dto"
	"golang-trading-insight/internal/repository"
	"golang-trading-insight/internal/service/analysis"
	"golang-trading-insight/internal/service/market"
	"golang-trading-insight/pkg/logger"
	"golang-trading-insight/pkg/telegram"
	"golang-trading-insight/pkg/utils"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler handles HTTP requests for AI analysis operations.
type AnalysisHandler struct {
	cfg         *config.Config
	logger      *logger.Logger
	analysisSvc analysis.Service
	marketSvc   market.Service
	newsRepo    repository.NewsFeedRepository
	historyRepo repository.AnalysisHistoryRepository
	notifier    telegram.Notifier
}

// NewAnalysisHandler creates a new AnalysisHandler. notifier and
// historyRepo may be nil when those integrations are disabled.
func NewAnalysisHandler(cfg *config.Config, log *logger.Logger,
	analysisSvc analysis.Service, marketSvc market.Service,
	newsRepo repository.NewsFeedRepository,
	historyRepo repository.AnalysisHistoryRepository,
	notifier telegram.Notifier) *AnalysisHandler {
	return &AnalysisHandler{
		cfg:         cfg,
		logger:      log,
		analysisSvc: analysisSvc,
		marketSvc:   marketSvc,
		newsRepo:    newsRepo,
		historyRepo: historyRepo,
		notifier:    notifier,
	}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.AnalyzeStock)
	g.PUT("/analyze/bulk", h.AnalyzeBulk)
	g.GET("/analyze/:symbol/history", h.GetAnalysisHistory)
	g.GET("/market/sentiment", h.GetMarketSentiment)
	g.POST("/trading-plan", h.GenerateTradingPlan)
	g.GET("/news/summary", h.SummarizeNews)
}

// AnalyzeStock runs a single-symbol AI analysis.
func (h *AnalysisHandler) AnalyzeStock(c echo.Context) error {
	var req dto.AnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
	}
	if req.CurrentPrice <= 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "current_price must be positive"})
	}

	result, err := h.analysisSvc.AnalyzeStock(c.Request().Context(), &req)
	if err != nil {
		if dto.IsExternalServiceError(err) {
			return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "AI analysis unavailable, try again"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// BulkAnalyzeRequest is the payload for a bulk analysis run.
type BulkAnalyzeRequest struct {
	Symbols         []string             `json:"symbols"`
	UserPreferences *dto.UserPreferences `json:"user_preferences,omitempty"`
}

// AnalyzeBulk analyzes a list of symbols; failed symbols are omitted from
// the response rather than failing the batch.
func (h *AnalysisHandler) AnalyzeBulk(c echo.Context) error {
	var req BulkAnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if len(req.Symbols) == 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbols is required"})
	}

	analyses := h.analysisSvc.AnalyzeBulk(c.Request().Context(), req.Symbols, req.UserPreferences)

	h.notifyStrongSignals(analyses)

	return c.JSON(http.StatusOK, analyses)
}

// GetAnalysisHistory returns recent persisted analyses for a symbol.
func (h *AnalysisHandler) GetAnalysisHistory(c echo.Context) error {
	if h.historyRepo == nil {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "analysis history is not enabled"})
	}

	symbol := c.Param("symbol")
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be a positive integer"})
		}
		limit = parsed
	}

	analyses, err := h.historyRepo.FindLatestBySymbol(c.Request().Context(), symbol, limit)
	if err != nil {
		h.logger.Error("Failed to load analysis history", logger.StringField("symbol", symbol), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load analysis history"})
	}

	return c.JSON(http.StatusOK, analyses)
}

// GetMarketSentiment returns the current (possibly cached) market sentiment.
func (h *AnalysisHandler) GetMarketSentiment(c echo.Context) error {
	return c.JSON(http.StatusOK, h.marketSvc.GetSentiment(c.Request().Context()))
}

// TradingPlanRequest is the payload for trading plan generation.
type TradingPlanRequest struct {
	Holdings      []dto.Holding `json:"holdings"`
	Budget        float64       `json:"budget"`
	RiskTolerance string        `json:"risk_tolerance"`
}

// GenerateTradingPlan builds a ranked trading plan for the given holdings.
func (h *AnalysisHandler) GenerateTradingPlan(c echo.Context) error {
	var req TradingPlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if len(req.Holdings) == 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "holdings is required"})
	}

	plan, err := h.analysisSvc.GenerateTradingPlan(c.Request().Context(), req.Holdings, req.Budget, req.RiskTolerance)
	if err != nil {
		if dto.IsExternalServiceError(err) {
			return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "AI analysis unavailable, try again"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, plan)
}

// SummarizeNews fetches recent market headlines and summarizes them.
func (h *AnalysisHandler) SummarizeNews(c echo.Context) error {
	ctx := c.Request().Context()

	headlines, err := h.newsRepo.GetMarketHeadlines(ctx, h.cfg.News.MaxHeadlines)
	if err != nil {
		h.logger.Error("Failed to fetch market headlines", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "market news unavailable, try again"})
	}
	if len(headlines) == 0 {
		return c.JSON(http.StatusOK, dto.NewsSummaryResult{
			Summary:         "No recent market news available.",
			KeyPoints:       []string{},
			MentionedStocks: []string{},
		})
	}

	summary, err := h.analysisSvc.SummarizeNews(ctx, headlines)
	if err != nil {
		if dto.IsExternalServiceError(err) {
			return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "AI analysis unavailable, try again"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, summary)
}

// notifyStrongSignals pushes high-conviction recommendations to Telegram.
func (h *AnalysisHandler) notifyStrongSignals(analyses []dto.AnalysisResult) {
	if h.notifier == nil {
		return
	}

	for _, a := range analyses {
		if a.Recommendation != dto.RecommendationStrongBuy && a.Recommendation != dto.RecommendationStrongSell {
			continue
		}
		msg := telegram.FormatSignalAlertMessage(utils.TimeNowIST(), a.Symbol, a.Recommendation, a.Confidence, a.TargetPrice)
		if err := h.notifier.SendMessage(msg); err != nil {
			h.logger.Error("Failed to send signal alert",
				logger.StringField("symbol", a.Symbol),
				logger.ErrorField(err),
			)
		}
	}
}
