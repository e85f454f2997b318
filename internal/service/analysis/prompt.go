package analysis

import (
	"fmt"
	"math"
	"strings"

	"golang-trading-insight/internal/dto"
)

// recentWindow is how many trailing bars feed the recent-performance figure.
const recentWindow = 30

// maxPromptNews caps how many headlines go into the analysis prompt.
const maxPromptNews = 5

// BuildAnalysisPrompt renders the single-symbol analysis instruction.
// Optional sections (technical indicators, news, user preferences) are
// omitted entirely when absent rather than rendered empty.
func BuildAnalysisPrompt(req *dto.AnalysisRequest) string {
	recent := req.HistoricalData
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	priceChange := 0.0
	if len(recent) > 1 {
		refClose := recent[0].Close
		if refClose > 0 && !math.IsNaN(refClose) && !math.IsInf(refClose, 0) {
			priceChange = (req.CurrentPrice - refClose) / refClose * 100
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`As an expert financial analyst specializing in Indian stock markets, analyze %s for swing trading opportunities (1-4 week holding period).

CURRENT DATA:
- Symbol: %s
- Current Price: ₹%.2f
- Recent Performance: %+.2f%% over %d periods`,
		req.Symbol, req.Symbol, req.CurrentPrice, priceChange, len(recent)))

	if ti := req.TechnicalIndicators; ti != nil {
		b.WriteString(fmt.Sprintf(`

TECHNICAL ANALYSIS:
- SMA 20: ₹%.2f | SMA 50: ₹%.2f
- EMA 20: ₹%.2f
- RSI: %.2f
- MACD: %.2f (Signal: %.2f)
- Bollinger Bands: Upper ₹%.2f, Lower ₹%.2f
- Volume Ratio: %.2fx average`,
			ti.SMA20, ti.SMA50, ti.EMA20, ti.RSI,
			ti.MACD.MACD, ti.MACD.Signal,
			ti.Bollinger.Upper, ti.Bollinger.Lower,
			ti.Volume.Ratio))
	}

	if len(req.NewsData) > 0 {
		news := req.NewsData
		if len(news) > maxPromptNews {
			news = news[:maxPromptNews]
		}
		b.WriteString("\n\nRECENT NEWS SENTIMENT:")
		for _, item := range news {
			b.WriteString(fmt.Sprintf("\n- %s (%s) - %s", item.Title, item.Sentiment, item.Source))
		}
	}

	if prefs := req.UserPreferences; prefs != nil {
		excludedSectors := "None"
		if len(prefs.ExcludedSectors) > 0 {
			excludedSectors = strings.Join(prefs.ExcludedSectors, ", ")
		}
		b.WriteString(fmt.Sprintf(`

USER PREFERENCES:
- Risk Tolerance: %s
- Max Budget Per Trade: ₹%.2f
- Excluded Sectors: %s
- Preferred Market Cap: %s`,
			prefs.RiskTolerance, prefs.MaxBudgetPerTrade, excludedSectors, prefs.PreferredMarketCap))
	}

	b.WriteString(`

Provide your analysis in this EXACT JSON format (no additional text):
{
  "recommendation": "BUY|SELL|HOLD|STRONG_BUY|STRONG_SELL",
  "confidence": 85,
  "reasoning": "Detailed analysis with specific technical and fundamental reasons",
  "targetPrice": 1250.50,
  "stopLoss": 1180.00,
  "timeframe": "2-4 weeks",
  "riskLevel": "LOW|MEDIUM|HIGH|VERY_HIGH",
  "keyFactors": ["Factor 1", "Factor 2", "Factor 3"]
}

Focus on:
1. Technical patterns and momentum
2. Volume analysis and breakout potential
3. Risk-reward ratio for swing trading
4. Market sector performance
5. Indian market specific factors (SEBI regulations, FII/DII activity, etc.)

Be specific with price targets and risk management.`)

	return b.String()
}

// BuildMarketSentimentPrompt renders the aggregate sentiment instruction
// from the four index quotes.
func BuildMarketSentimentPrompt(data *dto.MarketData) string {
	return fmt.Sprintf(`Analyze current Indian stock market sentiment based on these indices:

NIFTY 50: %.2f (%+.2f%%)
SENSEX: %.2f (%+.2f%%)
BANK NIFTY: %.2f (%+.2f%%)
IT INDEX: %.2f (%+.2f%%)

Provide analysis in this EXACT JSON format:
{
  "sentiment": "BULLISH|BEARISH|NEUTRAL",
  "confidence": 75,
  "factors": ["Factor 1", "Factor 2", "Factor 3"],
  "reasoning": "Detailed explanation of market conditions and outlook"
}

Consider global markets, FII/DII flows, sector rotation, and technical levels.`,
		data.Nifty50.Value, data.Nifty50.ChangePercent,
		data.Sensex.Value, data.Sensex.ChangePercent,
		data.BankNifty.Value, data.BankNifty.ChangePercent,
		data.ITIndex.Value, data.ITIndex.ChangePercent)
}

// BuildTradingPlanPrompt renders the portfolio plan instruction.
func BuildTradingPlanPrompt(holdings []dto.Holding, budget float64, riskTolerance string) string {
	portfolioValue := 0.0
	var holdingsBuilder strings.Builder
	for i, h := range holdings {
		portfolioValue += float64(h.Quantity) * h.CurrentPrice
		if i > 0 {
			holdingsBuilder.WriteString("\n")
		}
		holdingsBuilder.WriteString(fmt.Sprintf("%s: %d shares @ ₹%.2f (Current: ₹%.2f)",
			h.Symbol, h.Quantity, h.AvgPrice, h.CurrentPrice))
	}

	return fmt.Sprintf(`Create a comprehensive trading plan for this Indian stock portfolio:

CURRENT HOLDINGS:
%s

Portfolio Value: ₹%.2f
Available Budget: ₹%.2f
Risk Tolerance: %s

Provide recommendations in this EXACT JSON format:
{
  "suggestions": [
    {
      "action": "BUY|SELL|HOLD",
      "symbol": "RELIANCE",
      "quantity": 10,
      "reasoning": "Specific reason for this recommendation",
      "priority": 9
    }
  ],
  "overallStrategy": "Portfolio strategy and diversification advice",
  "riskAssessment": "Risk analysis and mitigation suggestions"
}

Focus on portfolio optimization, risk management, and sector diversification for Indian markets.`,
		holdingsBuilder.String(), portfolioValue, budget, riskTolerance)
}

// BuildNewsSummaryPrompt renders the headline summarization instruction.
func BuildNewsSummaryPrompt(news []dto.NewsItem) string {
	var newsBuilder strings.Builder
	for _, n := range news {
		newsBuilder.WriteString(fmt.Sprintf("- %s (%s, Sentiment: %s)\n", n.Title, n.Source, n.Sentiment))
	}

	return fmt.Sprintf(`As a financial analyst, summarize the key insights from these Indian market news headlines.
Focus on market-moving information, sector trends, and specific company news.

NEWS HEADLINES:
%s
Provide your summary in this EXACT JSON format:
{
  "summary": "A concise overview of the most important news.",
  "keyPoints": ["Point 1", "Point 2", "Point 3"],
  "mentionedStocks": ["STOCK1", "STOCK2"]
}`, newsBuilder.String())
}
