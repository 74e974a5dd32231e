package scheduler

import (
	"context"
	"fmt"
	"log"

	"fintrack/internal/domain/marketdata"
)

// QuoteRefreshJob implements the Job interface for refreshing cached market
// quotes.
type QuoteRefreshJob struct {
	service *marketdata.Service
}

// NewQuoteRefreshJob creates a new quote refresh job
func NewQuoteRefreshJob(service *marketdata.Service) *QuoteRefreshJob {
	return &QuoteRefreshJob{service: service}
}

// Execute runs the quote refresh
func (j *QuoteRefreshJob) Execute(ctx context.Context) error {
	log.Println("Starting market data refresh")

	if err := j.service.Refresh(ctx); err != nil {
		log.Printf("Market data refresh failed: %v", err)
		return fmt.Errorf("refresh failed: %w", err)
	}

	log.Println("Market data refresh completed")
	return nil
}

// Description returns a human-readable description of the job
func (j *QuoteRefreshJob) Description() string {
	return "Market data refresh"
}
