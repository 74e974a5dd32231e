package marketdata

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// quoteChunkSize bounds how many symbols go into one quote request.
const quoteChunkSize = 50

// Fetcher retrieves live quotes for a batch of ticker symbols.
type Fetcher interface {
	Quotes(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

// SymbolSource lists the ticker symbols worth refreshing.
type SymbolSource interface {
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// Service refreshes the in-memory quote cache from the fetcher.
type Service struct {
	cache   *Cache
	fetcher Fetcher
	symbols SymbolSource
}

// NewService creates a new market data service
func NewService(cache *Cache, fetcher Fetcher, symbols SymbolSource) *Service {
	return &Service{cache: cache, fetcher: fetcher, symbols: symbols}
}

// Snapshot exposes the cache contents for the read endpoint
func (s *Service) Snapshot() (map[string]decimal.Decimal, time.Time) {
	return s.cache.Snapshot()
}

// Refresh fetches quotes for every held symbol in chunks. A failed chunk is
// logged and skipped so one flaky batch doesn't void the whole refresh.
func (s *Service) Refresh(ctx context.Context) error {
	symbols, err := s.symbols.DistinctSymbols(ctx)
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		return nil
	}

	for _, chunk := range chunkSymbols(symbols, quoteChunkSize) {
		quotes, err := s.fetcher.Quotes(ctx, chunk)
		if err != nil {
			log.Printf("market data refresh: chunk of %d symbols failed: %v", len(chunk), err)
			continue
		}
		s.cache.Store(quotes)
	}

	return nil
}

func chunkSymbols(symbols []string, size int) [][]string {
	var chunks [][]string
	for len(symbols) > size {
		chunks = append(chunks, symbols[:size])
		symbols = symbols[size:]
	}
	if len(symbols) > 0 {
		chunks = append(chunks, symbols)
	}
	return chunks
}
