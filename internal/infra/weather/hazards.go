package weather

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Hazard thresholds over the next 24 hours.
const (
	heavyRainInPerHour = 0.25
	snowIn24Hours      = 1.0
	gustWindMph        = 35.0
	hotTempF           = 95.0
	coldTempF          = 20.0
)

// WMO weather codes for thunderstorms.
var thunderstormCodes = map[int]bool{95: true, 96: true, 99: true}

const hourlyTimeLayout = "2006-01-02T15:04"

// HazardLines condenses an hourly forecast into short warning lines: one per
// hazard class that crosses its threshold within the window. Returns nil
// when conditions are benign.
func HazardLines(fc *Forecast, loc *time.Location) []string {
	if fc == nil || len(fc.Hourly.Time) == 0 {
		return nil
	}
	h := fc.Hourly

	times := make([]time.Time, len(h.Time))
	for i, raw := range h.Time {
		t, err := time.ParseInLocation(hourlyTimeLayout, raw, loc)
		if err != nil {
			return nil
		}
		times[i] = t
	}

	var lines []string

	// Thunderstorm windows: contiguous runs of TS weather codes.
	var runStart, runEnd time.Time
	flush := func() {
		if !runStart.IsZero() {
			lines = append(lines, fmt.Sprintf("⛈️ Thunderstorms likely %s–%s",
				runStart.Format("3 PM"), runEnd.Format("3 PM")))
			runStart, runEnd = time.Time{}, time.Time{}
		}
	}
	for i := range times {
		if i < len(h.WeatherCode) && thunderstormCodes[h.WeatherCode[i]] {
			if runStart.IsZero() {
				runStart = times[i]
			}
			runEnd = times[i]
		} else {
			flush()
		}
	}
	flush()

	var heavyHours []string
	for i := range times {
		if i < len(h.Precipitation) && h.Precipitation[i] >= heavyRainInPerHour {
			heavyHours = append(heavyHours, times[i].Format("3 PM"))
		}
	}
	if len(heavyHours) > 0 {
		lines = append(lines, fmt.Sprintf("🌧️ Heavy rain ≥ %.2f\" around %s", heavyRainInPerHour, strings.Join(heavyHours, ", ")))
	}

	snowTotal := 0.0
	for _, v := range h.Snowfall {
		snowTotal += v
	}
	if snowTotal >= snowIn24Hours {
		lines = append(lines, fmt.Sprintf("❄️ Snow %.1f\" in next 24h", snowTotal))
	}

	gustMax := 0.0
	for _, v := range h.WindGusts10M {
		if v > gustMax {
			gustMax = v
		}
	}
	if gustMax >= gustWindMph {
		lines = append(lines, fmt.Sprintf("💨 Gusts up to %d mph", int(math.Round(gustMax))))
	}

	if len(h.Temperature2M) > 0 {
		tMax, tMin := h.Temperature2M[0], h.Temperature2M[0]
		for _, v := range h.Temperature2M {
			if v > tMax {
				tMax = v
			}
			if v < tMin {
				tMin = v
			}
		}
		if tMax >= hotTempF {
			lines = append(lines, fmt.Sprintf("🥵 High to ~%d°F", int(math.Round(tMax))))
		}
		if tMin <= coldTempF {
			lines = append(lines, fmt.Sprintf("🥶 Low to ~%d°F", int(math.Round(tMin))))
		}
	}

	return lines
}
