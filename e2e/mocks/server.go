// Package mocks provides HTTP mock servers for the market data providers used in E2E tests.
package mocks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MockServer serves Alpha Vantage, NewsAPI and Alpaca market data from
// configurable fixtures.
type MockServer struct {
	mu     sync.RWMutex
	server *httptest.Server

	// Response configurations
	dailyCloses       []float64 // newest first
	alphaFundamentals *AlphaVantageFundamentals
	newsArticles      []NewsArticle

	// Error injection
	alpacaError       error
	alphaVantageError error
	alphaVantageNote  string
	newsAPIError      error

	// Request tracking for assertions
	requestLog []RequestLog
}

// RequestLog records incoming requests for test assertions.
type RequestLog struct {
	Method string
	Path   string
	Query  string
}

// NewMockServer creates a started mock server with default responses.
func NewMockServer() *MockServer {
	m := &MockServer{
		requestLog: make([]RequestLog, 0),
	}
	m.setDefaults()
	m.server = httptest.NewServer(m)
	return m
}

// URL returns the mock server's base URL.
func (m *MockServer) URL() string {
	return m.server.URL
}

// AlphaVantageURL returns the query endpoint to configure as ALPHA_VANTAGE_BASE_URL.
func (m *MockServer) AlphaVantageURL() string {
	return m.server.URL + "/query"
}

// Close shuts down the mock server.
func (m *MockServer) Close() {
	m.server.Close()
}

// ServeHTTP implements http.Handler to route requests to appropriate mock handlers.
func (m *MockServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requestLog = append(m.requestLog, RequestLog{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
	})
	m.mu.Unlock()

	path := r.URL.Path

	switch {
	case path == "/query":
		m.handleAlphaVantage(w, r)
	case strings.HasSuffix(path, "/everything"):
		m.handleNewsAPI(w, r)
	case strings.HasPrefix(path, "/v2/stocks") && strings.HasSuffix(path, "/bars"):
		m.handleAlpacaBars(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// GetRequestLog returns all logged requests for assertions.
func (m *MockServer) GetRequestLog() []RequestLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]RequestLog{}, m.requestLog...)
}

// CountRequests returns how many logged requests carried the given
// Alpha Vantage function or hit the given path.
func (m *MockServer) CountRequests(functionOrPath string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, req := range m.requestLog {
		if req.Path == functionOrPath || strings.Contains(req.Query, "function="+functionOrPath) {
			n++
		}
	}
	return n
}

// ClearRequestLog clears the request log.
func (m *MockServer) ClearRequestLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestLog = make([]RequestLog, 0)
}

// SetDailyCloses configures the daily closes served by Alpha Vantage and
// Alpaca, newest first.
func (m *MockServer) SetDailyCloses(closes []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dailyCloses = closes
}

// SetAlpacaError configures Alpaca to return an error.
func (m *MockServer) SetAlpacaError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alpacaError = err
}

// SetAlphaVantageFundamentals configures the OVERVIEW response. nil serves
// the empty object Alpha Vantage returns for unknown symbols.
func (m *MockServer) SetAlphaVantageFundamentals(f *AlphaVantageFundamentals) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alphaFundamentals = f
}

// SetAlphaVantageError configures Alpha Vantage to return an HTTP error.
func (m *MockServer) SetAlphaVantageError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alphaVantageError = err
}

// SetAlphaVantageNote makes Alpha Vantage answer 200 with a throttling note.
func (m *MockServer) SetAlphaVantageNote(note string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alphaVantageNote = note
}

// SetNewsArticles configures the articles served by both news feeds.
func (m *MockServer) SetNewsArticles(articles []NewsArticle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newsArticles = articles
}

// SetNewsAPIError configures NewsAPI to return an error.
func (m *MockServer) SetNewsAPIError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newsAPIError = err
}

func (m *MockServer) setDefaults() {
	// Steadily rising closes, last day +2%
	m.dailyCloses = GenerateCloses(100, 150.0, 0.5)
	m.dailyCloses[0] = m.dailyCloses[1] * 1.02

	m.alphaFundamentals = &AlphaVantageFundamentals{
		Symbol:        "AAPL",
		Name:          "Apple Inc",
		Exchange:      "NASDAQ",
		Sector:        "Technology",
		MarketCap:     "3000000000000",
		PERatio:       "12.5",
		EPS:           "6.15",
		BookValue:     "4.40",
		DividendYield: "0.0052",
	}

	m.newsArticles = generateDefaultNewsArticles(15)
}

func (m *MockServer) handleAlphaVantage(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	err := m.alphaVantageError
	note := m.alphaVantageNote
	closes := m.dailyCloses
	fundamentals := m.alphaFundamentals
	articles := m.newsArticles
	m.mu.RUnlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if note != "" {
		json.NewEncoder(w).Encode(map[string]string{"Note": note})
		return
	}

	q := r.URL.Query()
	switch q.Get("function") {
	case "TIME_SERIES_DAILY":
		json.NewEncoder(w).Encode(map[string]interface{}{
			"Meta Data":           map[string]string{"2. Symbol": q.Get("symbol")},
			"Time Series (Daily)": dailySeries(closes),
		})
	case "OVERVIEW":
		if fundamentals == nil {
			w.Write([]byte("{}"))
			return
		}
		overview := *fundamentals
		overview.Symbol = q.Get("symbol")
		json.NewEncoder(w).Encode(overview)
	case "NEWS_SENTIMENT":
		feed := make([]FeedItem, 0, len(articles))
		for _, a := range articles {
			published, _ := time.Parse(time.RFC3339, a.PublishedAt)
			feed = append(feed, FeedItem{
				Title:         a.Title,
				URL:           a.URL,
				Summary:       a.Description,
				Source:        a.Source["name"],
				TimePublished: published.Format("20060102T150405"),
			})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": strconv.Itoa(len(feed)),
			"feed":  feed,
		})
	default:
		json.NewEncoder(w).Encode(map[string]string{
			"Error Message": "This API function (" + q.Get("function") + ") does not exist.",
		})
	}
}

func (m *MockServer) handleNewsAPI(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	err := m.newsAPIError
	articles := m.newsArticles
	m.mu.RUnlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if size, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && size < len(articles) {
		articles = articles[:size]
	}

	resp := map[string]interface{}{
		"status":       "ok",
		"totalResults": len(articles),
		"articles":     articles,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (m *MockServer) handleAlpacaBars(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	err := m.alpacaError
	closes := m.dailyCloses
	m.mu.RUnlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	symbol := r.URL.Query().Get("symbols")
	if symbol == "" {
		// Single-symbol form: /v2/stocks/{symbol}/bars
		parts := strings.Split(r.URL.Path, "/")
		for i, p := range parts {
			if p == "stocks" && i+1 < len(parts) {
				symbol = parts[i+1]
				break
			}
		}
	}

	resp := map[string]interface{}{
		"bars": map[string]interface{}{
			symbol: alpacaBars(closes),
		},
		"next_page_token": nil,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GenerateCloses returns count closes, newest first, climbing by step per
// day from start.
func GenerateCloses(count int, start, step float64) []float64 {
	closes := make([]float64, count)
	for i := 0; i < count; i++ {
		closes[i] = start + float64(count-1-i)*step
	}
	return closes
}

// tradingDay returns the i-th weekday before today, i=0 being the latest.
func tradingDay(i int) time.Time {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for n := 0; ; {
		day = day.AddDate(0, 0, -1)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if n == i {
			return day
		}
		n++
	}
}

func dailySeries(closes []float64) map[string]DailyBar {
	series := make(map[string]DailyBar, len(closes))
	for i, c := range closes {
		price := strconv.FormatFloat(c, 'f', 4, 64)
		series[tradingDay(i).Format("2006-01-02")] = DailyBar{
			Open:   price,
			High:   strconv.FormatFloat(c+1, 'f', 4, 64),
			Low:    strconv.FormatFloat(c-1, 'f', 4, 64),
			Close:  price,
			Volume: strconv.Itoa(1000000 + i*10000),
		}
	}
	return series
}

func alpacaBars(closes []float64) []AlpacaBar {
	// Alpaca returns bars oldest first
	bars := make([]AlpacaBar, len(closes))
	for i, c := range closes {
		bars[len(closes)-1-i] = AlpacaBar{
			Timestamp: tradingDay(i).Format(time.RFC3339),
			Open:      c - 1,
			High:      c + 2,
			Low:       c - 2,
			Close:     c,
			Volume:    1000000 + int64(i*10000),
		}
	}
	return bars
}

func generateDefaultNewsArticles(count int) []NewsArticle {
	articles := make([]NewsArticle, count)
	titles := []string{
		"Company Reports Strong Quarterly Earnings",
		"New Product Launch Expected to Boost Sales",
		"Analyst Upgrades Stock to Buy",
		"Market Share Continues to Grow",
		"Innovation Pipeline Looks Promising",
	}
	for i := 0; i < count; i++ {
		articles[i] = NewsArticle{
			Source:      map[string]string{"name": "Financial Times"},
			Author:      "Test Author",
			Title:       titles[i%len(titles)],
			Description: "Shares gained after the company beat expectations.",
			URL:         fmt.Sprintf("https://example.com/article/%d", i),
			PublishedAt: time.Now().UTC().Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
		}
	}
	return articles
}
