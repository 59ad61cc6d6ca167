package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// RedirectDelay is the time to wait before redirecting the user after a successful action.
	RedirectDelay = 1 * time.Second

	TailwindCSSURL = "https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css"
	HTMXURL        = "https://unpkg.com/htmx.org@2.0.4"

	// DataSourceAPI reads listings from the remote REST API.
	DataSourceAPI = "api"
	// DataSourceLocal reads listings from the sqlite catalog.
	DataSourceLocal = "local"
)

var (
	ServerPort         string
	ServerUploadLimit  int
	ServerRateLimitMax int
	ServerRateLimitExp time.Duration

	SiteName string
	SiteURL  string

	DataSource  string
	DatabaseURL string

	APIBaseURL  string
	APITimeout  time.Duration
	APICacheTTL time.Duration

	RedisAddress  string
	RedisPassword string
	RedisCacheTTL time.Duration

	CarsPageSize       int
	DealersPageSize    int
	DealerCarsPageSize int
	FeaturedCarsCount  int

	SessionTTL time.Duration

	LogLevel  string
	LogFormat string
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_upload_limit", 4*1024*1024)
	v.SetDefault("rate_limit_max", 120)
	v.SetDefault("rate_limit_exp", time.Minute)

	v.SetDefault("site_name", "CarSawa")
	v.SetDefault("site_url", "https://carsawa.co.ke")

	v.SetDefault("data_source", DataSourceAPI)
	v.SetDefault("database_url", "carsawa.db")

	v.SetDefault("api_base_url", "https://api.yourcarsite.com")
	v.SetDefault("api_timeout", 10*time.Second)
	v.SetDefault("api_cache_ttl", 60*time.Second)

	// An empty address disables the shared response cache.
	v.SetDefault("redis_address", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_cache_ttl", 5*time.Minute)

	v.SetDefault("cars_page_size", 9)
	v.SetDefault("dealers_page_size", 6)
	v.SetDefault("dealer_cars_page_size", 9)
	v.SetDefault("featured_cars_count", 6)

	v.SetDefault("session_ttl", 30*time.Minute)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// Load reads settings from an optional .env file, an optional config.yaml and
// the environment, in increasing order of precedence.
func Load() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("error loading .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Accept the variable name used by the previous front-end deployment.
	if os.Getenv("API_BASE_URL") == "" && !v.InConfig("api_base_url") {
		if legacy := os.Getenv("NEXT_PUBLIC_API_BASE_URL"); legacy != "" {
			v.Set("api_base_url", legacy)
		}
	}

	ServerPort = v.GetString("server_port")
	ServerUploadLimit = v.GetInt("server_upload_limit")
	ServerRateLimitMax = v.GetInt("rate_limit_max")
	ServerRateLimitExp = v.GetDuration("rate_limit_exp")

	SiteName = v.GetString("site_name")
	SiteURL = strings.TrimRight(v.GetString("site_url"), "/")

	DataSource = strings.ToLower(v.GetString("data_source"))
	DatabaseURL = v.GetString("database_url")

	APIBaseURL = strings.TrimRight(v.GetString("api_base_url"), "/")
	APITimeout = v.GetDuration("api_timeout")
	APICacheTTL = v.GetDuration("api_cache_ttl")

	RedisAddress = v.GetString("redis_address")
	RedisPassword = v.GetString("redis_password")
	RedisCacheTTL = v.GetDuration("redis_cache_ttl")

	CarsPageSize = v.GetInt("cars_page_size")
	DealersPageSize = v.GetInt("dealers_page_size")
	DealerCarsPageSize = v.GetInt("dealer_cars_page_size")
	FeaturedCarsCount = v.GetInt("featured_cars_count")

	SessionTTL = v.GetDuration("session_ttl")

	LogLevel = v.GetString("log_level")
	LogFormat = v.GetString("log_format")

	return validate()
}

func validate() error {
	switch DataSource {
	case DataSourceAPI:
		if APIBaseURL == "" {
			return fmt.Errorf("api_base_url is required when data_source is %q", DataSourceAPI)
		}
	case DataSourceLocal:
		if DatabaseURL == "" {
			return fmt.Errorf("database_url is required when data_source is %q", DataSourceLocal)
		}
	default:
		return fmt.Errorf("unknown data_source %q", DataSource)
	}

	if CarsPageSize < 1 || DealersPageSize < 1 || DealerCarsPageSize < 1 {
		return fmt.Errorf("page sizes must be at least 1")
	}
	return nil
}
