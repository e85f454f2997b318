package market

import (
	"context"
	"encoding/json"

	"golang-trading-insight/internal/config"
	"golang-trading-insight/internal/dto"
	"golang-trading-insight/internal/repository"
	"golang-trading-insight/internal/service/analysis"
	"golang-trading-insight/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const sentimentCacheKey = "market:sentiment"

// Service serves the dashboard's market sentiment. Sentiment is cached in
// Redis and refreshed on a schedule so the read path stays warm, and it
// never fails: any upstream problem degrades to the NEUTRAL fallback.
type Service interface {
	GetSentiment(ctx context.Context) *dto.SentimentResult
	RefreshSentiment(ctx context.Context) *dto.SentimentResult
}

type service struct {
	cfg         *config.Config
	log         *logger.Logger
	redisClient *redis.Client
	marketData  repository.MarketDataRepository
	analysisSvc analysis.Service
}

// NewService creates a new market sentiment service. redisClient may be
// nil, in which case every call scores sentiment fresh.
func NewService(cfg *config.Config, log *logger.Logger, redisClient *redis.Client,
	marketData repository.MarketDataRepository, analysisSvc analysis.Service) Service {
	return &service{
		cfg:         cfg,
		log:         log,
		redisClient: redisClient,
		marketData:  marketData,
		analysisSvc: analysisSvc,
	}
}

// GetSentiment returns the cached sentiment when available, otherwise
// scores it fresh and caches the outcome.
func (s *service) GetSentiment(ctx context.Context) *dto.SentimentResult {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, sentimentCacheKey).Result()
		if err == nil {
			var result dto.SentimentResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result
			}
			s.log.Warn("Discarding unreadable cached sentiment", logger.ErrorField(err))
		} else if err != redis.Nil {
			s.log.Warn("Failed to read sentiment cache", logger.ErrorField(err))
		}
	}

	return s.RefreshSentiment(ctx)
}

// RefreshSentiment scores sentiment from live index quotes and updates the
// cache. It always returns a result.
func (s *service) RefreshSentiment(ctx context.Context) *dto.SentimentResult {
	marketData, err := s.marketData.GetMarketIndices(ctx)
	if err != nil {
		s.log.Error("Failed to fetch market indices", logger.ErrorField(err))
		return &dto.SentimentResult{
			Sentiment:  dto.SentimentNeutral,
			Confidence: 50,
			Factors:    []string{"Market data unavailable"},
			Reasoning:  "Unable to fetch market indices for sentiment analysis",
		}
	}

	result := s.analysisSvc.GetMarketSentiment(ctx, marketData)

	if s.redisClient != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			if err := s.redisClient.Set(ctx, sentimentCacheKey, payload, s.cfg.Market.SentimentCacheTTL).Err(); err != nil {
				s.log.Warn("Failed to cache market sentiment", logger.ErrorField(err))
			}
		}
	}

	return result
}
