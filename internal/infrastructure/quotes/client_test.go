package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotes_ParsesPrices(t *testing.T) {
	var gotSymbols string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbols = r.URL.Query().Get("symbols")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quoteResponse":{"result":[
			{"symbol":"AAPL","regularMarketPrice":201.5},
			{"symbol":"HALTED"}
		],"error":null}}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)

	prices, err := client.Quotes(context.Background(), []string{"AAPL", "HALTED"})
	require.NoError(t, err)
	assert.Equal(t, "AAPL,HALTED", gotSymbols)

	require.Contains(t, prices, "AAPL")
	assert.True(t, prices["AAPL"].Equal(decimal.NewFromFloat(201.5)))

	// Quotes without a market price are dropped, not zeroed.
	assert.NotContains(t, prices, "HALTED")
}

func TestQuotes_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)

	_, err := client.Quotes(context.Background(), []string{"AAPL"})
	assert.Error(t, err)
}

func TestQuotes_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse":{"result":[],"error":{"code":"Bad Request","description":"missing symbols"}}}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)

	_, err := client.Quotes(context.Background(), []string{"AAPL"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing symbols")
}

func TestQuotes_EmptySymbolListSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)

	prices, err := client.Quotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
	assert.False(t, called)
}
