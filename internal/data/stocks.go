package data

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fkcurrie/ledclock-golang/internal/types"
)

// StockProvider reads index changes from the Financial Modeling Prep
// quote-short endpoint
type StockProvider struct {
	client   *http.Client
	endpoint string
	apiKey   string
	symbols  []types.IndexSymbol
	logger   *log.Logger
}

// NewStockProvider returns a provider for symbols
func NewStockProvider(client *http.Client, endpoint, apiKey string, symbols []types.IndexSymbol, logger *log.Logger) *StockProvider {
	return &StockProvider{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
		symbols:  symbols,
		logger:   logger,
	}
}

type shortQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// DefaultStocks returns zero changes for every configured symbol
func (p *StockProvider) DefaultStocks() types.StockData {
	quotes := make([]types.Quote, 0, len(p.symbols))
	for _, s := range p.symbols {
		quotes = append(quotes, types.Quote{Symbol: s.Symbol, Label: s.Label})
	}
	return types.StockData{Quotes: quotes}
}

// Fetch returns one quote per symbol. A symbol that fails reports a zero
// change; the call only fails when every symbol does.
func (p *StockProvider) Fetch(ctx context.Context) (types.StockData, error) {
	data := types.StockData{Quotes: make([]types.Quote, 0, len(p.symbols)), UpdatedAt: time.Now()}
	failed := 0
	for _, s := range p.symbols {
		quote := types.Quote{Symbol: s.Symbol, Label: s.Label}
		change, err := p.quote(ctx, s.Symbol)
		if err != nil {
			p.logger.Warn("failed to fetch quote", "symbol", s.Symbol, "err", err)
			failed++
		} else {
			quote.Change = change
		}
		data.Quotes = append(data.Quotes, quote)
	}
	if failed > 0 && failed == len(p.symbols) {
		return types.StockData{}, fmt.Errorf("stocks: all %d quotes failed", failed)
	}
	return data, nil
}

func (p *StockProvider) quote(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("apikey", p.apiKey)

	var quotes []shortQuote
	if err := getJSON(ctx, p.client, p.endpoint+"?"+q.Encode(), &quotes); err != nil {
		return 0, err
	}
	if len(quotes) == 0 {
		return 0, fmt.Errorf("no quote for %s", symbol)
	}
	return quotes[0].Change, nil
}

// MarketHours reports whether t falls in the 9:15 to 16:15 weekday window,
// which pads the exchange session by a quarter hour on both ends.
func MarketHours(t time.Time) bool {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 9*60+15 && minutes <= 16*60+15
}
