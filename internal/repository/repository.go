package repository

import (
	"context"

	"golang-trading-insight/internal/dto"
	"golang-trading-insight/internal/entity"
)

// AIRepository wraps a single generative completion call: prompt in, raw
// text out. It holds no business logic; interpreting the text belongs to
// the analysis service.
type AIRepository interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// MarketDataRepository supplies market index quotes and per-symbol
// snapshots from the connected market data provider.
type MarketDataRepository interface {
	GetMarketIndices(ctx context.Context) (*dto.MarketData, error)
	GetStockSnapshot(ctx context.Context, symbol string) (*dto.StockSnapshot, error)
}

// NewsFeedRepository supplies recent market news headlines.
type NewsFeedRepository interface {
	GetMarketHeadlines(ctx context.Context, limit int) ([]dto.NewsItem, error)
}

// AnalysisHistoryRepository persists completed analyses.
type AnalysisHistoryRepository interface {
	Create(ctx context.Context, analysis *entity.AIAnalysis) error
	FindLatestBySymbol(ctx context.Context, symbol string, limit int) ([]entity.AIAnalysis, error)
}
