package dto

import "time"

// AnalysisResult is the structured outcome of a single-symbol AI analysis.
// Confidence is always clamped into [0,100] before this struct is built.
type AnalysisResult struct {
	Symbol         string    `json:"symbol"`
	Recommendation string    `json:"recommendation"`
	Confidence     int       `json:"confidence"`
	Reasoning      string    `json:"reasoning"`
	TargetPrice    float64   `json:"target_price,omitempty"`
	StopLoss       float64   `json:"stop_loss,omitempty"`
	Timeframe      string    `json:"timeframe"`
	RiskLevel      string    `json:"risk_level"`
	KeyFactors     []string  `json:"key_factors"`
	CreatedAt      time.Time `json:"created_at"`
}

// SentimentResult is the aggregate market sentiment score.
type SentimentResult struct {
	Sentiment  string   `json:"sentiment"`
	Confidence int      `json:"confidence"`
	Factors    []string `json:"factors"`
	Reasoning  string   `json:"reasoning"`
}

// TradeSuggestion is one ranked entry of a trading plan.
type TradeSuggestion struct {
	Action    string  `json:"action"`
	Symbol    string  `json:"symbol"`
	Quantity  int     `json:"quantity,omitempty"`
	Reasoning string  `json:"reasoning"`
	Priority  float64 `json:"priority"`
}

// TradingPlanResult is the outcome of a multi-holding plan generation.
type TradingPlanResult struct {
	Suggestions     []TradeSuggestion `json:"suggestions"`
	OverallStrategy string            `json:"overall_strategy"`
	RiskAssessment  string            `json:"risk_assessment"`
}

// NewsSummaryResult is the outcome of news summarization.
type NewsSummaryResult struct {
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"key_points"`
	MentionedStocks []string `json:"mentioned_stocks"`
}
