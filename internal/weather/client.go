package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Weather is decorative: it only drives the background badge, so every
// failure path ends in Fallback rather than a user-facing error.

const DefaultBaseURL = "https://api.open-meteo.com"

var ErrNoPayload = errors.New("weather: response carried no current weather")

type Location struct {
	Latitude  float64
	Longitude float64
	Label     string
}

// DefaultLocation is used when geolocation is unavailable.
var DefaultLocation = Location{Latitude: 59.3293, Longitude: 18.0686, Label: "Stockholm"}

type Kind string

const (
	KindClear    Kind = "clear"
	KindPartly   Kind = "partly_cloudy"
	KindOvercast Kind = "overcast"
	KindFog      Kind = "fog"
	KindDrizzle  Kind = "drizzle"
	KindRain     Kind = "rain"
	KindSnow     Kind = "snow"
	KindShowers  Kind = "showers"
	KindThunder  Kind = "thunder"
	KindUnknown  Kind = "unknown"
)

type Classification struct {
	Kind  Kind
	Label string
	Emoji string
}

type Report struct {
	Classification
	TemperatureC float64
	Location     string
}

type classRule struct {
	codes []int
	class Classification
}

// WMO weather interpretation codes, grouped the way the badge displays
// them.
var classRules = []classRule{
	{[]int{0}, Classification{KindClear, "Clear", "☀️"}},
	{[]int{1, 2}, Classification{KindPartly, "Partly cloudy", "🌤️"}},
	{[]int{3}, Classification{KindOvercast, "Overcast", "☁️"}},
	{[]int{45, 48}, Classification{KindFog, "Fog", "🌫️"}},
	{[]int{51, 53, 55, 56, 57}, Classification{KindDrizzle, "Drizzle", "🌦️"}},
	{[]int{61, 63, 65, 66, 67}, Classification{KindRain, "Rain", "🌧️"}},
	{[]int{71, 73, 75, 77}, Classification{KindSnow, "Snow", "❄️"}},
	{[]int{80, 81, 82}, Classification{KindShowers, "Showers", "⛈️"}},
	{[]int{95, 96, 99}, Classification{KindThunder, "Thunder", "🌩️"}},
}

// Classify maps a WMO weather code to its display classification. Unknown
// codes get the neutral classification rather than an error.
func Classify(code int) Classification {
	for _, rule := range classRules {
		for _, c := range rule.codes {
			if c == code {
				return rule.class
			}
		}
	}
	return Classification{KindUnknown, "Unknown weather", "❔"}
}

// Fallback is the neutral report shown when the lookup fails.
func Fallback() Report {
	return Report{
		Classification: Classification{KindUnknown, "No weather data right now", "❔"},
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
	}
}

// NewClientWithBaseURL exists for tests pointing at a local server.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	c := NewClient(timeout)
	c.baseURL = baseURL
	return c
}

type currentWeatherPayload struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current fetches the current weather for a location. Callers substitute
// Fallback() on any error.
func (c *Client) Current(ctx context.Context, loc Location) (Report, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
	query.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
	query.Set("current_weather", "true")

	endpoint := c.baseURL + "/v1/forecast?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Report{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}

	var payload currentWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Report{}, fmt.Errorf("weather: decode response: %w", err)
	}
	if payload.CurrentWeather == nil {
		return Report{}, ErrNoPayload
	}

	label := loc.Label
	if label == "" {
		label = "Selected location"
	}
	return Report{
		Classification: Classify(payload.CurrentWeather.WeatherCode),
		TemperatureC:   payload.CurrentWeather.Temperature,
		Location:       label,
	}, nil
}
