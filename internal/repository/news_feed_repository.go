package repository

import (
	"context"
	"fmt"
	"time"

	"golang-trading-insight/internal/config"
	"golang-trading-insight/internal/dto"
	"golang-trading-insight/pkg/logger"

	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
)

const headlinesCacheKey = "market_headlines"

// newsFeedRepository pulls market headlines from a Google News RSS feed.
// Headlines change slowly relative to request volume, so results are held
// in a short-lived in-memory cache.
type newsFeedRepository struct {
	cfg           *config.Config
	logger        *logger.Logger
	parser        *gofeed.Parser
	inmemoryCache *cache.Cache
}

// NewNewsFeedRepository creates a new RSS-backed news feed repository.
func NewNewsFeedRepository(cfg *config.Config, log *logger.Logger) NewsFeedRepository {
	return &newsFeedRepository{
		cfg:           cfg,
		logger:        log,
		parser:        gofeed.NewParser(),
		inmemoryCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetMarketHeadlines returns up to limit recent market headlines, newest first.
func (r *newsFeedRepository) GetMarketHeadlines(ctx context.Context, limit int) ([]dto.NewsItem, error) {
	if cached, found := r.inmemoryCache.Get(headlinesCacheKey); found {
		items := cached.([]dto.NewsItem)
		return capHeadlines(items, limit), nil
	}

	feedURL := fmt.Sprintf("%s/rss/search?q=indian+stock+market&hl=en-IN&gl=IN&ceid=IN:en", r.cfg.News.RSSBaseURL)
	r.logger.Debug("Fetching market headlines", logger.StringField("url", feedURL))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	items := make([]dto.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		publishedAt := time.Now()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}
		source := ""
		if item.Custom != nil {
			source = item.Custom["source"]
		}
		items = append(items, dto.NewsItem{
			Title:       item.Title,
			Sentiment:   dto.NewsSentimentNeutral,
			Source:      source,
			PublishedAt: publishedAt,
			Symbols:     []string{},
			URL:         item.Link,
		})
	}

	r.inmemoryCache.Set(headlinesCacheKey, items, cache.DefaultExpiration)

	return capHeadlines(items, limit), nil
}

func capHeadlines(items []dto.NewsItem, limit int) []dto.NewsItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
