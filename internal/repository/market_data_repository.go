package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang-trading-insight/internal/config"
	"golang-trading-insight/internal/dto"
	"golang-trading-insight/pkg/logger"
)

// Yahoo Finance symbols for the four Indian market indices the sentiment
// prompt is built from.
const (
	symbolNifty50   = "^NSEI"
	symbolSensex    = "^BSESN"
	symbolBankNifty = "^NSEBANK"
	symbolITIndex   = "^CNXIT"
)

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooFinanceRepository implements MarketDataRepository against the Yahoo
// Finance chart API.
type yahooFinanceRepository struct {
	client *http.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewYahooFinanceRepository creates a new Yahoo Finance backed market data repository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) (MarketDataRepository, error) {
	return &yahooFinanceRepository{
		client: &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
		logger: log,
	}, nil
}

// GetMarketIndices fetches the four index quotes used for sentiment scoring.
func (r *yahooFinanceRepository) GetMarketIndices(ctx context.Context) (*dto.MarketData, error) {
	indices := map[string]*dto.IndexQuote{}
	for _, symbol := range []string{symbolNifty50, symbolSensex, symbolBankNifty, symbolITIndex} {
		chart, err := r.fetchChart(ctx, symbol, "1d", "1d")
		if err != nil {
			return nil, fmt.Errorf("failed to fetch index %s: %w", symbol, err)
		}
		meta := chart.Chart.Result[0].Meta
		changePercent := 0.0
		if meta.ChartPreviousClose > 0 {
			changePercent = (meta.RegularMarketPrice - meta.ChartPreviousClose) / meta.ChartPreviousClose * 100
		}
		indices[symbol] = &dto.IndexQuote{
			Value:         meta.RegularMarketPrice,
			ChangePercent: changePercent,
		}
	}

	return &dto.MarketData{
		Nifty50:   *indices[symbolNifty50],
		Sensex:    *indices[symbolSensex],
		BankNifty: *indices[symbolBankNifty],
		ITIndex:   *indices[symbolITIndex],
	}, nil
}

// GetStockSnapshot fetches the current price and recent daily bars for an
// NSE-listed symbol.
func (r *yahooFinanceRepository) GetStockSnapshot(ctx context.Context, symbol string) (*dto.StockSnapshot, error) {
	chart, err := r.fetchChart(ctx, symbol+".NS", "1d", "3mo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock data for %s: %w", symbol, err)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	points := make([]dto.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		points = append(points, dto.PricePoint{
			Timestamp: time.Unix(ts, 0),
			Open:      quote.Open[i],
			High:      quote.High[i],
			Low:       quote.Low[i],
			Close:     quote.Close[i],
			Volume:    quote.Volume[i],
		})
	}

	return &dto.StockSnapshot{
		Symbol:         symbol,
		CurrentPrice:   result.Meta.RegularMarketPrice,
		HistoricalData: points,
	}, nil
}

func (r *yahooFinanceRepository) fetchChart(ctx context.Context, symbol, interval, dataRange string) (*chartResponse, error) {
	params := url.Values{}
	params.Add("interval", interval)
	params.Add("range", dataRange)
	params.Add("includePrePost", "false")

	requestURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", r.cfg.Market.BaseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from Yahoo Finance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Yahoo Finance API returned status: %d", resp.StatusCode)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %s - %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}

	return &chart, nil
}
