package types

// DisplayConfig represents the configuration for the display
type DisplayConfig struct {
	Width             int `json:"width"`
	Height            int `json:"height"`
	Brightness        int `json:"brightness"`
	RefreshMillis     int `json:"refresh_ms"`
	ScrollEveryFrames int `json:"scroll_every_frames"`
	SplashMillis      int `json:"splash_ms"`
}

// HeadlineConfig represents the configuration for the headline scroller
type HeadlineConfig struct {
	Separator    string   `json:"separator"`
	ScrollSpeed  int      `json:"scroll_speed"`
	TrimDistance int      `json:"trim_distance"`
	Placeholders []string `json:"placeholders"`
}

// FeedSource is a named RSS or Atom feed
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NewsConfig represents the configuration for the news provider
type NewsConfig struct {
	Sources         []FeedSource `json:"sources"`
	MaxHeadlines    int          `json:"max_headlines"`
	MaxLength       int          `json:"max_length"`
	PerSource       int          `json:"per_source"`
	IntervalSeconds int          `json:"interval_seconds"`
}

// WeatherConfig represents the configuration for the weather provider
type WeatherConfig struct {
	Enabled         bool    `json:"enabled"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	IntervalSeconds int     `json:"interval_seconds"`
	Endpoint        string  `json:"endpoint"`
}

// IndexSymbol maps an API ticker to the label shown on the panel
type IndexSymbol struct {
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// StocksConfig represents the configuration for the stock provider
type StocksConfig struct {
	Enabled         bool          `json:"enabled"`
	APIKey          string        `json:"api_key"`
	IntervalSeconds int           `json:"interval_seconds"`
	Symbols         []IndexSymbol `json:"symbols"`
	Endpoint        string        `json:"endpoint"`
}

// HardwareConfig represents the HUB75 wiring
type HardwareConfig struct {
	Chip      string `json:"chip"`
	R1        int    `json:"r1"`
	G1        int    `json:"g1"`
	B1        int    `json:"b1"`
	R2        int    `json:"r2"`
	G2        int    `json:"g2"`
	B2        int    `json:"b2"`
	CLK       int    `json:"clk"`
	OE        int    `json:"oe"`
	LAT       int    `json:"lat"`
	A         int    `json:"a"`
	B         int    `json:"b"`
	C         int    `json:"c"`
	D         int    `json:"d"`
	E         int    `json:"e"`
	Threshold uint8  `json:"threshold"`
}
