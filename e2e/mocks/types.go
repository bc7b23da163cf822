package mocks

// AlpacaBar represents OHLCV bar data from Alpaca.
type AlpacaBar struct {
	Timestamp string  `json:"t"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    int64   `json:"v"`
}

// DailyBar is one day of the Alpha Vantage TIME_SERIES_DAILY payload.
type DailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// AlphaVantageFundamentals represents company overview data from Alpha Vantage.
type AlphaVantageFundamentals struct {
	Symbol        string `json:"Symbol"`
	Name          string `json:"Name"`
	Exchange      string `json:"Exchange"`
	Sector        string `json:"Sector"`
	MarketCap     string `json:"MarketCapitalization"`
	PERatio       string `json:"PERatio"`
	EPS           string `json:"EPS"`
	BookValue     string `json:"BookValue"`
	DividendYield string `json:"DividendYield"`
}

// FeedItem is one article of the Alpha Vantage NEWS_SENTIMENT feed.
type FeedItem struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}

// NewsArticle represents a news article from NewsAPI.
type NewsArticle struct {
	Source      map[string]string `json:"source"`
	Author      string            `json:"author"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	URL         string            `json:"url"`
	PublishedAt string            `json:"publishedAt"`
}
