package analysis

import (
	"testing"

	"golang-trading-insight/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{
			name:     "bare object",
			input:    `{"recommendation": "BUY"}`,
			expected: `{"recommendation": "BUY"}`,
			found:    true,
		},
		{
			name:     "markdown fenced",
			input:    "```json\n{\"recommendation\": \"BUY\"}\n```",
			expected: `{"recommendation": "BUY"}`,
			found:    true,
		},
		{
			name:     "object wrapped in prose",
			input:    `Sure, here is the analysis you asked for: {"recommendation": "SELL", "confidence": 70} Let me know if you need more.`,
			expected: `{"recommendation": "SELL", "confidence": 70}`,
			found:    true,
		},
		{
			name:     "prefers largest valid object over embedded snippet",
			input:    `The format is {"example": 1}. Final answer: {"recommendation": "HOLD", "confidence": 55, "nested": {"a": 1}}`,
			expected: `{"recommendation": "HOLD", "confidence": 55, "nested": {"a": 1}}`,
			found:    true,
		},
		{
			name:     "braces inside string values",
			input:    `{"reasoning": "pattern looks like {wedge} formation", "recommendation": "BUY"}`,
			expected: `{"reasoning": "pattern looks like {wedge} formation", "recommendation": "BUY"}`,
			found:    true,
		},
		{
			name:  "no object present",
			input: "I cannot provide an analysis at this time.",
			found: false,
		},
		{
			name:  "unbalanced braces",
			input: `{"recommendation": "BUY", "confidence": 80`,
			found: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractJSONObject(tc.input)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestCoerceConfidence(t *testing.T) {
	testCases := []struct {
		name     string
		input    interface{}
		expected int
	}{
		{name: "in range", input: float64(85), expected: 85},
		{name: "above range clamps to 100", input: float64(150), expected: 100},
		{name: "below range clamps to 0", input: float64(-10), expected: 0},
		{name: "numeric string", input: "72", expected: 72},
		{name: "percentage string", input: "90%", expected: 90},
		{name: "rounds fractional values", input: 66.7, expected: 67},
		{name: "non numeric string defaults", input: "high", expected: 50},
		{name: "missing defaults", input: nil, expected: 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, coerceConfidence(tc.input))
		})
	}
}

func TestParseAnalysisResponse(t *testing.T) {
	raw := `Here is my analysis:
{
  "recommendation": "buy",
  "confidence": 82,
  "reasoning": "Strong momentum with a volume breakout above the 50-day average.",
  "targetPrice": 1250.50,
  "stopLoss": 1180.00,
  "timeframe": "2-3 weeks",
  "riskLevel": "medium",
  "keyFactors": ["Momentum", "Volume breakout"]
}`

	result := ParseAnalysisResponse(raw, "RELIANCE")
	require.NotNil(t, result)

	assert.Equal(t, "RELIANCE", result.Symbol)
	assert.Equal(t, dto.RecommendationBuy, result.Recommendation)
	assert.Equal(t, 82, result.Confidence)
	assert.Equal(t, 1250.50, result.TargetPrice)
	assert.Equal(t, 1180.00, result.StopLoss)
	assert.Equal(t, "2-3 weeks", result.Timeframe)
	assert.Equal(t, dto.RiskLevelMedium, result.RiskLevel)
	assert.Equal(t, []string{"Momentum", "Volume breakout"}, result.KeyFactors)
	assert.False(t, result.CreatedAt.IsZero())
}

func TestParseAnalysisResponseInvalidEnum(t *testing.T) {
	raw := `{"recommendation": "MAYBE_BUY", "reasoning": "Mixed signals.", "riskLevel": "EXTREME", "confidence": 60}`

	result := ParseAnalysisResponse(raw, "TCS")
	require.NotNil(t, result)

	// Unknown enum values degrade the field, not the whole result.
	assert.Equal(t, dto.RecommendationHold, result.Recommendation)
	assert.Equal(t, dto.RiskLevelMedium, result.RiskLevel)
	assert.Equal(t, 60, result.Confidence)
	assert.Equal(t, "Mixed signals.", result.Reasoning)
}

func TestParseAnalysisResponseFallbacks(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "plain prose", input: "The market is too volatile for a call today."},
		{name: "empty response", input: ""},
		{name: "missing reasoning", input: `{"recommendation": "BUY", "confidence": 90}`},
		{name: "missing recommendation", input: `{"reasoning": "Looks strong.", "confidence": 90}`},
		{name: "empty mandatory field", input: `{"recommendation": "  ", "reasoning": "Looks strong."}`},
		{name: "malformed json", input: `{"recommendation": "BUY", "reasoning": }`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseAnalysisResponse(tc.input, "INFY")
			require.NotNil(t, result)

			assert.Equal(t, "INFY", result.Symbol)
			assert.Equal(t, dto.RecommendationHold, result.Recommendation)
			assert.Equal(t, 50, result.Confidence)
			assert.Equal(t, "2-4 weeks", result.Timeframe)
			assert.Equal(t, dto.RiskLevelMedium, result.RiskLevel)
			assert.Contains(t, result.Reasoning, "INFY")
			assert.Equal(t, []string{"AI parsing error", "Manual review needed"}, result.KeyFactors)
		})
	}
}

func TestParseAnalysisResponseMissingOptionals(t *testing.T) {
	raw := `{"recommendation": "SELL", "reasoning": "Breakdown below support."}`

	result := ParseAnalysisResponse(raw, "HDFC")
	require.NotNil(t, result)

	assert.Equal(t, dto.RecommendationSell, result.Recommendation)
	assert.Equal(t, 50, result.Confidence)
	assert.Equal(t, "2-4 weeks", result.Timeframe)
	assert.Equal(t, dto.RiskLevelMedium, result.RiskLevel)
	assert.Zero(t, result.TargetPrice)
	assert.Zero(t, result.StopLoss)
	assert.NotNil(t, result.KeyFactors)
	assert.Empty(t, result.KeyFactors)
}

func TestParseMarketSentimentResponse(t *testing.T) {
	raw := "```json\n{\"sentiment\": \"bullish\", \"confidence\": 110, \"factors\": [\"FII inflows\"], \"reasoning\": \"Broad based rally.\"}\n```"

	result := ParseMarketSentimentResponse(raw)
	require.NotNil(t, result)

	assert.Equal(t, dto.SentimentBullish, result.Sentiment)
	assert.Equal(t, 100, result.Confidence)
	assert.Equal(t, []string{"FII inflows"}, result.Factors)
	assert.Equal(t, "Broad based rally.", result.Reasoning)
}

func TestParseMarketSentimentResponseFallback(t *testing.T) {
	result := ParseMarketSentimentResponse("no json here")
	require.NotNil(t, result)

	assert.Equal(t, dto.SentimentNeutral, result.Sentiment)
	assert.Equal(t, 50, result.Confidence)
	assert.Equal(t, []string{"Unable to analyze sentiment"}, result.Factors)
	assert.Equal(t, "AI response parsing failed", result.Reasoning)
}

func TestParseTradingPlanResponse(t *testing.T) {
	raw := `{
  "suggestions": [
    {"action": "buy", "symbol": "RELIANCE", "quantity": 10, "reasoning": "Add on dips.", "priority": 9},
    {"action": "TRIM", "quantity": 5, "reasoning": "No symbol, should be dropped."},
    {"action": "sell", "symbol": "YESBANK", "reasoning": "Cut the laggard.", "priority": 7}
  ],
  "overallStrategy": "Rotate into largecaps.",
  "riskAssessment": "Moderate concentration risk."
}`

	result := ParseTradingPlanResponse(raw)
	require.NotNil(t, result)
	require.Len(t, result.Suggestions, 2)

	assert.Equal(t, dto.ActionBuy, result.Suggestions[0].Action)
	assert.Equal(t, "RELIANCE", result.Suggestions[0].Symbol)
	assert.Equal(t, 10, result.Suggestions[0].Quantity)
	assert.Equal(t, 9.0, result.Suggestions[0].Priority)

	assert.Equal(t, dto.ActionSell, result.Suggestions[1].Action)
	assert.Equal(t, "YESBANK", result.Suggestions[1].Symbol)

	assert.Equal(t, "Rotate into largecaps.", result.OverallStrategy)
	assert.Equal(t, "Moderate concentration risk.", result.RiskAssessment)
}

func TestParseTradingPlanResponseFallback(t *testing.T) {
	result := ParseTradingPlanResponse("I could not produce a plan.")
	require.NotNil(t, result)

	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, "Unable to generate trading plan", result.OverallStrategy)
	assert.Equal(t, "Manual risk assessment required", result.RiskAssessment)
}

func TestParseNewsSummaryResponse(t *testing.T) {
	raw := `{"summary": "IT stocks led the session.", "keyPoints": ["TCS earnings beat"], "mentionedStocks": ["TCS", "INFY"]}`

	result := ParseNewsSummaryResponse(raw)
	require.NotNil(t, result)

	assert.Equal(t, "IT stocks led the session.", result.Summary)
	assert.Equal(t, []string{"TCS earnings beat"}, result.KeyPoints)
	assert.Equal(t, []string{"TCS", "INFY"}, result.MentionedStocks)
}

func TestParseNewsSummaryResponseFallback(t *testing.T) {
	result := ParseNewsSummaryResponse("")
	require.NotNil(t, result)

	assert.Equal(t, "Unable to generate news summary.", result.Summary)
	assert.NotNil(t, result.KeyPoints)
	assert.Empty(t, result.KeyPoints)
	assert.NotNil(t, result.MentionedStocks)
	assert.Empty(t, result.MentionedStocks)
}
