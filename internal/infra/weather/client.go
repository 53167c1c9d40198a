package weather

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	userAgent        = "DailyReportBot/1.0 (weather)"
	nominatimBaseURL = "https://nominatim.openstreetmap.org"
	openMeteoBaseURL = "https://api.open-meteo.com"
)

// Place is a geocoded project location.
type Place struct {
	Lat     float64
	Lon     float64
	Display string
}

// Forecast is the hourly slice of the Open-Meteo response the hazard
// formatter needs.
type Forecast struct {
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature2M []float64 `json:"temperature_2m"`
		Precipitation []float64 `json:"precipitation"`
		Snowfall      []float64 `json:"snowfall"`
		WeatherCode   []int     `json:"weathercode"`
		WindSpeed10M  []float64 `json:"windspeed_10m"`
		WindGusts10M  []float64 `json:"windgusts_10m"`
	} `json:"hourly"`
}

// Client talks to the Nominatim geocoder and the Open-Meteo forecast API.
type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	return &Client{
		http: resty.New().
			SetHeader("User-Agent", userAgent).
			SetTimeout(10 * time.Second),
	}
}

var cityStateRe = regexp.MustCompile(`([A-Za-z .'-]+,\s*[A-Z]{2})\s*$`)

// ExtractCityState pulls the trailing "City, ST" suffix from a project name,
// or returns "" when the name carries no location.
func ExtractCityState(projectName string) string {
	m := cityStateRe.FindStringSubmatch(projectName)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Geocode resolves a "City, ST" string to coordinates. Returns nil when the
// geocoder has no match.
func (c *Client) Geocode(ctx context.Context, cityState string) (*Place, error) {
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"format": "json", "q": cityState}).
		SetResult(&results).
		Get(nominatimBaseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocode request returned %s", resp.Status())
	}
	if len(results) == 0 {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode returned bad latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode returned bad longitude %q: %w", results[0].Lon, err)
	}
	return &Place{Lat: lat, Lon: lon, Display: cityState}, nil
}

// FetchHourly retrieves the hourly forecast covering the next 24 hours in
// the given timezone.
func (c *Client) FetchHourly(ctx context.Context, lat, lon float64, loc *time.Location) (*Forecast, error) {
	start := time.Now().In(loc)
	end := start.Add(24 * time.Hour)

	fc := &Forecast{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":   strconv.FormatFloat(lat, 'f', -1, 64),
			"longitude":  strconv.FormatFloat(lon, 'f', -1, 64),
			"hourly":     "temperature_2m,precipitation,snowfall,weathercode,windspeed_10m,windgusts_10m",
			"timezone":   loc.String(),
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.Format("2006-01-02"),
		}).
		SetResult(fc).
		Get(openMeteoBaseURL + "/v1/forecast")
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("forecast request returned %s", resp.Status())
	}
	return fc, nil
}
