package analysis

import (
	"strings"
	"testing"
	"time"

	"golang-trading-insight/internal/dto"

	"github.com/stretchr/testify/assert"
)

func buildPricePoints(closes ...float64) []dto.PricePoint {
	points := make([]dto.PricePoint, 0, len(closes))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		points = append(points, dto.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    100000,
		})
	}
	return points
}

func TestBuildAnalysisPromptMinimalRequest(t *testing.T) {
	prompt := BuildAnalysisPrompt(&dto.AnalysisRequest{
		Symbol:       "RELIANCE",
		CurrentPrice: 2500,
	})

	assert.Contains(t, prompt, "analyze RELIANCE for swing trading opportunities")
	assert.Contains(t, prompt, "Current Price: ₹2500.00")
	assert.Contains(t, prompt, "Recent Performance: +0.00% over 0 periods")

	// Optional sections are omitted entirely, not rendered empty.
	assert.NotContains(t, prompt, "TECHNICAL ANALYSIS:")
	assert.NotContains(t, prompt, "RECENT NEWS SENTIMENT:")
	assert.NotContains(t, prompt, "USER PREFERENCES:")

	// The response contract is always present.
	assert.Contains(t, prompt, `"recommendation": "BUY|SELL|HOLD|STRONG_BUY|STRONG_SELL"`)
	assert.Contains(t, prompt, `"riskLevel": "LOW|MEDIUM|HIGH|VERY_HIGH"`)
	assert.Contains(t, prompt, "EXACT JSON format")
}

func TestBuildAnalysisPromptPriceChange(t *testing.T) {
	prompt := BuildAnalysisPrompt(&dto.AnalysisRequest{
		Symbol:         "TCS",
		CurrentPrice:   3800,
		HistoricalData: buildPricePoints(3700, 3720, 3750),
	})

	assert.Contains(t, prompt, "Recent Performance: +2.70% over 3 periods")
}

func TestBuildAnalysisPromptNegativePriceChange(t *testing.T) {
	prompt := BuildAnalysisPrompt(&dto.AnalysisRequest{
		Symbol:         "TCS",
		CurrentPrice:   3600,
		HistoricalData: buildPricePoints(4000, 3900, 3800),
	})

	assert.Contains(t, prompt, "Recent Performance: -10.00% over 3 periods")
}

func TestBuildAnalysisPromptTrailingWindow(t *testing.T) {
	closes := make([]float64, 0, 60)
	for i := 0; i < 60; i++ {
		closes = append(closes, 100+float64(i))
	}

	prompt := BuildAnalysisPrompt(&dto.AnalysisRequest{
		Symbol:         "INFY",
		CurrentPrice:   160,
		HistoricalData: buildPricePoints(closes...),
	})

	// Only the trailing 30 bars count; the reference close is bar 30 (=130).
	assert.Contains(t, prompt, "over 30 periods")
	assert.Contains(t, prompt, "+23.08%")
}

func TestBuildAnalysisPromptZeroReferenceClose(t *testing.T) {
	prompt := BuildAnalysisPrompt(&dto.AnalysisRequest{
		Symbol:         "IDEA",
		CurrentPrice:   12,
		HistoricalData: buildPricePoints(0, 10, 11),
	})

	// A zero reference close cannot produce a change figure.
	assert.Contains(t, prompt, "Recent Performance: +0.00% over 3 periods")
}

func TestBuildAnalysisPromptOptionalSections(t *testing.T) {
	prompt := BuildAnalysisPrompt(&dto.AnalysisRequest{
		Symbol:       "HDFCBANK",
		CurrentPrice: 1650,
		TechnicalIndicators: &dto.TechnicalIndicators{
			SMA20: 1620, SMA50: 1580, EMA20: 1630, RSI: 61.5,
			MACD:      dto.MACDIndicator{MACD: 4.2, Signal: 3.1},
			Bollinger: dto.BollingerBands{Upper: 1700, Lower: 1560},
			Volume:    dto.VolumeIndicator{Ratio: 1.4},
		},
		NewsData: []dto.NewsItem{
			{Title: "HDFC Bank Q4 profit jumps", Sentiment: dto.NewsSentimentPositive, Source: "ET"},
		},
		UserPreferences: &dto.UserPreferences{
			RiskTolerance:      "MODERATE",
			MaxBudgetPerTrade:  50000,
			ExcludedSectors:    []string{"Realty", "PSU Banks"},
			PreferredMarketCap: "LARGE",
		},
	})

	assert.Contains(t, prompt, "TECHNICAL ANALYSIS:")
	assert.Contains(t, prompt, "RSI: 61.50")
	assert.Contains(t, prompt, "MACD: 4.20 (Signal: 3.10)")
	assert.Contains(t, prompt, "Volume Ratio: 1.40x average")

	assert.Contains(t, prompt, "RECENT NEWS SENTIMENT:")
	assert.Contains(t, prompt, "- HDFC Bank Q4 profit jumps (POSITIVE) - ET")

	assert.Contains(t, prompt, "USER PREFERENCES:")
	assert.Contains(t, prompt, "Risk Tolerance: MODERATE")
	assert.Contains(t, prompt, "Excluded Sectors: Realty, PSU Banks")
}

func TestBuildAnalysisPromptNewsCapped(t *testing.T) {
	news := make([]dto.NewsItem, 0, 8)
	for i := 0; i < 8; i++ {
		news = append(news, dto.NewsItem{
			Title:     "Headline " + string(rune('A'+i)),
			Sentiment: dto.NewsSentimentNeutral,
			Source:    "Wire",
		})
	}

	prompt := BuildAnalysisPrompt(&dto.AnalysisRequest{
		Symbol:       "SBIN",
		CurrentPrice: 800,
		NewsData:     news,
	})

	assert.Equal(t, 5, strings.Count(prompt, "(NEUTRAL) - Wire"))
	assert.Contains(t, prompt, "Headline E")
	assert.NotContains(t, prompt, "Headline F")
}

func TestBuildMarketSentimentPrompt(t *testing.T) {
	prompt := BuildMarketSentimentPrompt(&dto.MarketData{
		Nifty50:   dto.IndexQuote{Value: 24315.50, ChangePercent: 0.85},
		Sensex:    dto.IndexQuote{Value: 80120.25, ChangePercent: 0.72},
		BankNifty: dto.IndexQuote{Value: 52410.10, ChangePercent: -0.30},
		ITIndex:   dto.IndexQuote{Value: 43250.00, ChangePercent: 1.15},
	})

	assert.Contains(t, prompt, "NIFTY 50: 24315.50 (+0.85%)")
	assert.Contains(t, prompt, "SENSEX: 80120.25 (+0.72%)")
	assert.Contains(t, prompt, "BANK NIFTY: 52410.10 (-0.30%)")
	assert.Contains(t, prompt, "IT INDEX: 43250.00 (+1.15%)")
	assert.Contains(t, prompt, `"sentiment": "BULLISH|BEARISH|NEUTRAL"`)
}

func TestBuildTradingPlanPrompt(t *testing.T) {
	prompt := BuildTradingPlanPrompt([]dto.Holding{
		{Symbol: "RELIANCE", Quantity: 10, AvgPrice: 2400, CurrentPrice: 2500},
		{Symbol: "TCS", Quantity: 5, AvgPrice: 3600, CurrentPrice: 3800},
	}, 100000, "AGGRESSIVE")

	assert.Contains(t, prompt, "RELIANCE: 10 shares @ ₹2400.00 (Current: ₹2500.00)")
	assert.Contains(t, prompt, "TCS: 5 shares @ ₹3600.00 (Current: ₹3800.00)")
	// 10*2500 + 5*3800
	assert.Contains(t, prompt, "Portfolio Value: ₹44000.00")
	assert.Contains(t, prompt, "Available Budget: ₹100000.00")
	assert.Contains(t, prompt, "Risk Tolerance: AGGRESSIVE")
	assert.Contains(t, prompt, `"action": "BUY|SELL|HOLD"`)
}

func TestBuildNewsSummaryPrompt(t *testing.T) {
	prompt := BuildNewsSummaryPrompt([]dto.NewsItem{
		{Title: "RBI holds rates steady", Source: "Mint", Sentiment: dto.NewsSentimentNeutral},
		{Title: "Auto sales hit record high", Source: "ET", Sentiment: dto.NewsSentimentPositive},
	})

	assert.Contains(t, prompt, "- RBI holds rates steady (Mint, Sentiment: NEUTRAL)")
	assert.Contains(t, prompt, "- Auto sales hit record high (ET, Sentiment: POSITIVE)")
	assert.Contains(t, prompt, `"mentionedStocks"`)
}
