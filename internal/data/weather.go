package data

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fkcurrie/ledclock-golang/internal/types"
)

// DefaultWeather is shown until the first successful fetch
var DefaultWeather = types.WeatherData{Current: 70, High: 75, Low: 65}

// WeatherProvider reads current conditions from the Open-Meteo forecast API
type WeatherProvider struct {
	client    *http.Client
	endpoint  string
	latitude  float64
	longitude float64
}

// NewWeatherProvider returns a provider for the given location
func NewWeatherProvider(client *http.Client, endpoint string, latitude, longitude float64) *WeatherProvider {
	return &WeatherProvider{
		client:    client,
		endpoint:  endpoint,
		latitude:  latitude,
		longitude: longitude,
	}
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
	} `json:"current_weather"`
	Daily struct {
		Max []float64 `json:"temperature_2m_max"`
		Min []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (p *WeatherProvider) url() string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.longitude, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("daily", "temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "auto")
	q.Set("temperature_unit", "fahrenheit")
	return p.endpoint + "?" + q.Encode()
}

// Fetch returns today's readings rounded to whole degrees
func (p *WeatherProvider) Fetch(ctx context.Context) (types.WeatherData, error) {
	var resp forecastResponse
	if err := getJSON(ctx, p.client, p.url(), &resp); err != nil {
		return types.WeatherData{}, fmt.Errorf("weather: %w", err)
	}
	if len(resp.Daily.Max) == 0 || len(resp.Daily.Min) == 0 {
		return types.WeatherData{}, fmt.Errorf("weather: response has no daily forecast")
	}

	return types.WeatherData{
		Current:   int(math.Round(resp.CurrentWeather.Temperature)),
		High:      int(math.Round(resp.Daily.Max[0])),
		Low:       int(math.Round(resp.Daily.Min[0])),
		UpdatedAt: time.Now(),
	}, nil
}
