package services

import (
	"strings"
	"time"
)

// CurrentWeather describes present conditions at a location.
type CurrentWeather struct {
	Location    string    `json:"location"`
	Temperature int       `json:"temperature"` // °C
	Description string    `json:"description"`
	Humidity    int       `json:"humidity"` // %
	WindSpeed   int       `json:"wind_speed"`
	Icon        string    `json:"icon"`
	LastUpdated time.Time `json:"last_updated"`
}

// ForecastDay is one day of the weekly forecast.
type ForecastDay struct {
	Date        string `json:"date"`
	DayName     string `json:"day_name"`
	MaxTemp     int    `json:"max_temp"`
	MinTemp     int    `json:"min_temp"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherReport bundles current conditions, the weekly forecast, and a
// gardening tip derived from them.
type WeatherReport struct {
	Current      CurrentWeather `json:"current"`
	Forecast     []ForecastDay  `json:"forecast"`
	GardeningTip string         `json:"gardening_tip"`
}

// WeatherService produces location-based weather advisories. This is a
// static simulation; wiring a live provider is a deployment concern the
// engine does not take on.
type WeatherService interface {
	Report(location string) *WeatherReport
}

type weatherService struct{}

// NewWeatherService creates the weather advisory service.
func NewWeatherService() WeatherService {
	return &weatherService{}
}

type cityWeather struct {
	temperature int
	description string
	humidity    int
	windSpeed   int
	icon        string
}

// knownCities holds simulated baselines for locations with specific data.
// Unknown locations get the temperate default.
var knownCities = map[string]cityWeather{
	"santiago":   {22, "Partly cloudy", 65, 8, "partly_cloudy"},
	"valparaiso": {18, "Cloudy", 78, 12, "cloudy"},
	"la serena":  {25, "Sunny", 45, 6, "sunny"},
}

var forecastPatterns = []struct {
	description string
	icon        string
}{
	{"Sunny", "sunny"},
	{"Partly cloudy", "partly_cloudy"},
	{"Cloudy", "cloudy"},
	{"Light rain", "rainy"},
	{"Clear", "clear"},
}

// dailyVariation offsets the base temperature across the 7-day forecast.
var dailyVariation = [7]int{-3, -1, 0, 1, 2, -2, 1}

func (s *weatherService) Report(location string) *WeatherReport {
	current := currentFor(location)
	forecast := forecastFor(location)
	return &WeatherReport{
		Current:      current,
		Forecast:     forecast,
		GardeningTip: gardeningTip(current),
	}
}

func currentFor(location string) CurrentWeather {
	lower := strings.ToLower(location)
	for city, data := range knownCities {
		if strings.Contains(lower, city) {
			return CurrentWeather{
				Location:    location,
				Temperature: data.temperature,
				Description: data.description,
				Humidity:    data.humidity,
				WindSpeed:   data.windSpeed,
				Icon:        data.icon,
				LastUpdated: time.Now(),
			}
		}
	}
	return CurrentWeather{
		Location:    location,
		Temperature: 20,
		Description: "Temperate",
		Humidity:    60,
		WindSpeed:   7,
		Icon:        "partly_cloudy",
		LastUpdated: time.Now(),
	}
}

func forecastFor(location string) []ForecastDay {
	baseTemp := currentFor(location).Temperature

	forecast := make([]ForecastDay, 0, 7)
	for i := 0; i < 7; i++ {
		date := time.Now().AddDate(0, 0, i)
		pattern := forecastPatterns[i%len(forecastPatterns)]
		variation := dailyVariation[i]

		forecast = append(forecast, ForecastDay{
			Date:        date.Format("2006-01-02"),
			DayName:     date.Format("Monday"),
			MaxTemp:     baseTemp + variation + 3,
			MinTemp:     baseTemp + variation - 2,
			Description: pattern.description,
			Icon:        pattern.icon,
		})
	}
	return forecast
}

// gardeningTip derives a one-line tip from current conditions.
func gardeningTip(current CurrentWeather) string {
	description := strings.ToLower(current.Description)
	switch {
	case strings.Contains(description, "rain"):
		return "Perfect day for plants to hydrate naturally. Skip watering."
	case current.Temperature > 28:
		return "Hot day. Water early in the morning or at dusk."
	case current.Temperature < 10:
		return "Protect cold-sensitive plants. Consider reduced watering."
	case strings.Contains(description, "sunny"):
		return "Excellent day for outdoor gardening."
	default:
		return "Good day for general garden upkeep."
	}
}

// Ensure weatherService implements WeatherService at compile time.
var _ WeatherService = (*weatherService)(nil)
