package analysis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang-trading-insight/internal/dto"
)

// defaultConfidence is used whenever the model's confidence is missing or
// not a number.
const defaultConfidence = 50

const defaultTimeframe = "2-4 weeks"

var allowedRecommendations = map[string]bool{
	dto.RecommendationBuy:        true,
	dto.RecommendationSell:       true,
	dto.RecommendationHold:       true,
	dto.RecommendationStrongBuy:  true,
	dto.RecommendationStrongSell: true,
}

var allowedRiskLevels = map[string]bool{
	dto.RiskLevelLow:      true,
	dto.RiskLevelMedium:   true,
	dto.RiskLevelHigh:     true,
	dto.RiskLevelVeryHigh: true,
}

var allowedSentiments = map[string]bool{
	dto.SentimentBullish: true,
	dto.SentimentBearish: true,
	dto.SentimentNeutral: true,
}

var allowedActions = map[string]bool{
	dto.ActionBuy:  true,
	dto.ActionSell: true,
	dto.ActionHold: true,
}

// extractJSONObject locates a JSON object inside free-form model output
// that may wrap it in prose or markdown fences. It scans brace depth with
// string/escape awareness and returns the largest balanced span that is
// itself valid JSON, so example snippets embedded in prose before the real
// answer do not win over the full object.
func extractJSONObject(text string) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "`json\n`")

	best := ""
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(text); i++ {
			c := text[i]
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				if inString {
					escaped = true
				}
			case '"':
				inString = !inString
			case '{':
				if !inString {
					depth++
				}
			case '}':
				if !inString {
					depth--
					if depth == 0 {
						candidate := text[start : i+1]
						if len(candidate) > len(best) && json.Valid([]byte(candidate)) {
							best = candidate
						}
						i = len(text) // done with this start
					}
				}
			}
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}

func decodeObject(text string) (map[string]interface{}, error) {
	jsonStr, ok := extractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response object: %w", err)
	}
	return obj, nil
}

// coerceConfidence turns a loosely-typed confidence value into an int
// clamped to [0,100]. Anything that is not a number defaults to 50.
func coerceConfidence(v interface{}) int {
	num, ok := coerceNumber(v)
	if !ok {
		return defaultConfidence
	}
	confidence := int(num + 0.5)
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}

func coerceNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "%"), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// coerceString returns the trimmed string value, or fallback when the
// value is absent, not a string, or empty. Fallbacks are human-readable
// phrases so the field stays meaningful to the UI.
func coerceString(v interface{}, fallback string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

// coerceStringSlice returns the string elements of an array value, or an
// empty slice when the value is absent or not an array. Never nil.
func coerceStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// coerceEnum uppercases the value and checks it against the allowed set,
// falling back to def for anything else. An invalid enum never rejects the
// whole object.
func coerceEnum(v interface{}, allowed map[string]bool, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if allowed[normalized] {
		return normalized
	}
	return def
}

// fallbackAnalysisResult is returned whenever the model's stock-analysis
// reply cannot be parsed. It is indistinguishable from a low-confidence
// HOLD to the caller, which is the intent.
func fallbackAnalysisResult(symbol string) *dto.AnalysisResult {
	return &dto.AnalysisResult{
		Symbol:         symbol,
		Recommendation: dto.RecommendationHold,
		Confidence:     defaultConfidence,
		Reasoning:      fmt.Sprintf("Unable to parse AI analysis for %s. Manual analysis recommended.", symbol),
		Timeframe:      defaultTimeframe,
		RiskLevel:      dto.RiskLevelMedium,
		KeyFactors:     []string{"AI parsing error", "Manual review needed"},
		CreatedAt:      time.Now(),
	}
}

// ParseAnalysisResponse converts raw model output into an AnalysisResult.
// Recommendation and reasoning are mandatory; everything else is
// normalized with safe defaults. Parse failures yield the fallback result,
// never an error.
func ParseAnalysisResponse(text, symbol string) *dto.AnalysisResult {
	obj, err := decodeObject(text)
	if err != nil {
		return fallbackAnalysisResult(symbol)
	}

	recommendation, hasRecommendation := obj["recommendation"].(string)
	reasoning, hasReasoning := obj["reasoning"].(string)
	if !hasRecommendation || strings.TrimSpace(recommendation) == "" ||
		!hasReasoning || strings.TrimSpace(reasoning) == "" {
		return fallbackAnalysisResult(symbol)
	}

	result := &dto.AnalysisResult{
		Symbol:         symbol,
		Recommendation: coerceEnum(recommendation, allowedRecommendations, dto.RecommendationHold),
		Confidence:     coerceConfidence(obj["confidence"]),
		Reasoning:      strings.TrimSpace(reasoning),
		Timeframe:      coerceString(obj["timeframe"], defaultTimeframe),
		RiskLevel:      coerceEnum(obj["riskLevel"], allowedRiskLevels, dto.RiskLevelMedium),
		KeyFactors:     coerceStringSlice(obj["keyFactors"]),
		CreatedAt:      time.Now(),
	}
	if targetPrice, ok := coerceNumber(obj["targetPrice"]); ok {
		result.TargetPrice = targetPrice
	}
	if stopLoss, ok := coerceNumber(obj["stopLoss"]); ok {
		result.StopLoss = stopLoss
	}

	return result
}

func fallbackSentimentResult() *dto.SentimentResult {
	return &dto.SentimentResult{
		Sentiment:  dto.SentimentNeutral,
		Confidence: defaultConfidence,
		Factors:    []string{"Unable to analyze sentiment"},
		Reasoning:  "AI response parsing failed",
	}
}

// ParseMarketSentimentResponse converts raw model output into a
// SentimentResult, falling back to NEUTRAL on any parse failure.
func ParseMarketSentimentResponse(text string) *dto.SentimentResult {
	obj, err := decodeObject(text)
	if err != nil {
		return fallbackSentimentResult()
	}

	return &dto.SentimentResult{
		Sentiment:  coerceEnum(obj["sentiment"], allowedSentiments, dto.SentimentNeutral),
		Confidence: coerceConfidence(obj["confidence"]),
		Factors:    coerceStringSlice(obj["factors"]),
		Reasoning:  coerceString(obj["reasoning"], "Analysis completed"),
	}
}

func fallbackTradingPlanResult() *dto.TradingPlanResult {
	return &dto.TradingPlanResult{
		Suggestions:     []dto.TradeSuggestion{},
		OverallStrategy: "Unable to generate trading plan",
		RiskAssessment:  "Manual risk assessment required",
	}
}

// ParseTradingPlanResponse converts raw model output into a
// TradingPlanResult with an empty suggestion list on parse failure.
func ParseTradingPlanResponse(text string) *dto.TradingPlanResult {
	obj, err := decodeObject(text)
	if err != nil {
		return fallbackTradingPlanResult()
	}

	suggestions := []dto.TradeSuggestion{}
	if rawSuggestions, ok := obj["suggestions"].([]interface{}); ok {
		for _, raw := range rawSuggestions {
			entry, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			symbol := coerceString(entry["symbol"], "")
			if symbol == "" {
				continue
			}
			suggestion := dto.TradeSuggestion{
				Action:    coerceEnum(entry["action"], allowedActions, dto.ActionHold),
				Symbol:    symbol,
				Reasoning: coerceString(entry["reasoning"], "No reasoning provided"),
			}
			if quantity, ok := coerceNumber(entry["quantity"]); ok {
				suggestion.Quantity = int(quantity)
			}
			if priority, ok := coerceNumber(entry["priority"]); ok {
				suggestion.Priority = priority
			}
			suggestions = append(suggestions, suggestion)
		}
	}

	return &dto.TradingPlanResult{
		Suggestions:     suggestions,
		OverallStrategy: coerceString(obj["overallStrategy"], "No specific strategy provided"),
		RiskAssessment:  coerceString(obj["riskAssessment"], "Risk assessment unavailable"),
	}
}

func fallbackNewsSummaryResult() *dto.NewsSummaryResult {
	return &dto.NewsSummaryResult{
		Summary:         "Unable to generate news summary.",
		KeyPoints:       []string{},
		MentionedStocks: []string{},
	}
}

// ParseNewsSummaryResponse converts raw model output into a
// NewsSummaryResult with empty lists on parse failure.
func ParseNewsSummaryResponse(text string) *dto.NewsSummaryResult {
	obj, err := decodeObject(text)
	if err != nil {
		return fallbackNewsSummaryResult()
	}

	return &dto.NewsSummaryResult{
		Summary:         coerceString(obj["summary"], "No summary available."),
		KeyPoints:       coerceStringSlice(obj["keyPoints"]),
		MentionedStocks: coerceStringSlice(obj["mentionedStocks"]),
	}
}
