package dto

import "time"

// Recommendation values the model is allowed to return for a stock analysis.
const (
	RecommendationBuy        = "BUY"
	RecommendationSell       = "SELL"
	RecommendationHold       = "HOLD"
	RecommendationStrongBuy  = "STRONG_BUY"
	RecommendationStrongSell = "STRONG_SELL"
)

// Risk level values.
const (
	RiskLevelLow      = "LOW"
	RiskLevelMedium   = "MEDIUM"
	RiskLevelHigh     = "HIGH"
	RiskLevelVeryHigh = "VERY_HIGH"
)

// Market sentiment values.
const (
	SentimentBullish = "BULLISH"
	SentimentBearish = "BEARISH"
	SentimentNeutral = "NEUTRAL"
)

// News sentiment values.
const (
	NewsSentimentPositive = "POSITIVE"
	NewsSentimentNegative = "NEGATIVE"
	NewsSentimentNeutral  = "NEUTRAL"
)

// Trading plan actions.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
	ActionHold = "HOLD"
)

// PricePoint is a single historical OHLCV bar.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// NewsItem is a single market news headline with its pre-scored sentiment.
type NewsItem struct {
	Title       string    `json:"title"`
	Sentiment   string    `json:"sentiment"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Symbols     []string  `json:"symbols"`
	URL         string    `json:"url"`
}

// MACDIndicator holds the MACD line and its signal line.
type MACDIndicator struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands holds the band bounds.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// VolumeIndicator holds volume relative to its average.
type VolumeIndicator struct {
	Avg     int64   `json:"avg"`
	Current int64   `json:"current"`
	Ratio   float64 `json:"ratio"`
}

// TechnicalIndicators is the fixed indicator bundle embedded into the
// analysis prompt. It is passed through opaquely, never recomputed here.
type TechnicalIndicators struct {
	SMA20     float64         `json:"sma_20"`
	SMA50     float64         `json:"sma_50"`
	EMA20     float64         `json:"ema_20"`
	RSI       float64         `json:"rsi"`
	MACD      MACDIndicator   `json:"macd"`
	Bollinger BollingerBands  `json:"bollinger"`
	Volume    VolumeIndicator `json:"volume"`
}

// UserPreferences captures the trading preferences a user configured.
type UserPreferences struct {
	RiskTolerance      string   `json:"risk_tolerance"`
	MaxBudgetPerTrade  float64  `json:"max_budget_per_trade"`
	ExcludedSectors    []string `json:"excluded_sectors"`
	PreferredMarketCap string   `json:"preferred_market_cap"`
}

// AnalysisRequest is the input for a single-symbol stock analysis.
// HistoricalData may be empty; that degrades analysis quality but is not
// an error. CurrentPrice must be positive, validated at the API boundary.
type AnalysisRequest struct {
	Symbol              string               `json:"symbol"`
	CurrentPrice        float64              `json:"current_price"`
	HistoricalData      []PricePoint         `json:"historical_data"`
	NewsData            []NewsItem           `json:"news_data,omitempty"`
	TechnicalIndicators *TechnicalIndicators `json:"technical_indicators,omitempty"`
	UserPreferences     *UserPreferences     `json:"user_preferences,omitempty"`
}

// Holding is a single portfolio position supplied by the broker layer.
type Holding struct {
	Symbol       string  `json:"symbol"`
	Quantity     int     `json:"quantity"`
	AvgPrice     float64 `json:"avg_price"`
	CurrentPrice float64 `json:"current_price"`
}

// IndexQuote is a single market index value with its daily change.
type IndexQuote struct {
	Value         float64 `json:"value"`
	ChangePercent float64 `json:"change_percent"`
}

// MarketData bundles the four index quotes used for sentiment scoring.
type MarketData struct {
	Nifty50   IndexQuote `json:"nifty_50"`
	Sensex    IndexQuote `json:"sensex"`
	BankNifty IndexQuote `json:"bank_nifty"`
	ITIndex   IndexQuote `json:"it_index"`
}

// StockSnapshot is the per-symbol market state used to seed a bulk analysis.
type StockSnapshot struct {
	Symbol              string               `json:"symbol"`
	CurrentPrice        float64              `json:"current_price"`
	HistoricalData      []PricePoint         `json:"historical_data"`
	NewsData            []NewsItem           `json:"news_data,omitempty"`
	TechnicalIndicators *TechnicalIndicators `json:"technical_indicators,omitempty"`
}
