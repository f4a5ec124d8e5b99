package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/resource-finder/internal/geo"
)

// EnvPrefix prefixes every environment override, e.g. FINDER_DATA_RESOURCES_URL.
const EnvPrefix = "FINDER"

// Config holds the full application configuration.
type Config struct {
	Data        DataConfig        `yaml:"data" mapstructure:"data"`
	Geolocation GeolocationConfig `yaml:"geolocation" mapstructure:"geolocation"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the two documents and configures how they are fetched.
type DataConfig struct {
	ResourcesURL      string   `yaml:"resources_url" mapstructure:"resources_url"`
	LocationsURL      string   `yaml:"locations_url" mapstructure:"locations_url"`
	TimeoutSecs       int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent         string   `yaml:"user_agent" mapstructure:"user_agent"`
	MaxRetries        int      `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSecond float64  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	S3                S3Config `yaml:"s3" mapstructure:"s3"`
}

// S3Config holds the S3-compatible endpoint used for s3:// documents.
type S3Config struct {
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Region    string `yaml:"region" mapstructure:"region"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
}

// GeolocationConfig configures how the user's position is acquired. Point
// ("lat,lon") wins over Address when both are set.
type GeolocationConfig struct {
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAgeSecs    int     `yaml:"max_age_secs" mapstructure:"max_age_secs"`
	Point         string  `yaml:"point" mapstructure:"point"`
	Address       string  `yaml:"address" mapstructure:"address"`
	CensusRPS     float64 `yaml:"census_rps" mapstructure:"census_rps"`
	CensusBaseURL string  `yaml:"census_base_url" mapstructure:"census_base_url"`
}

// SearchConfig holds the paging, list caps and input behavior.
type SearchConfig struct {
	PageStep        int    `yaml:"page_step" mapstructure:"page_step"`
	NearbyLocations int    `yaml:"nearby_locations" mapstructure:"nearby_locations"`
	DetailResources int    `yaml:"detail_resources" mapstructure:"detail_resources"`
	DebounceMS      int    `yaml:"debounce_ms" mapstructure:"debounce_ms"`
	Locale          string `yaml:"locale" mapstructure:"locale"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.resources_url", "resources.json")
	v.SetDefault("data.locations_url", "libraries.json")
	v.SetDefault("data.timeout_secs", 30)
	v.SetDefault("data.user_agent", "resource-finder/1.0")
	v.SetDefault("data.max_retries", 3)
	v.SetDefault("data.requests_per_second", 10)
	v.SetDefault("data.s3.endpoint", "")
	v.SetDefault("data.s3.access_key", "")
	v.SetDefault("data.s3.secret_key", "")
	v.SetDefault("data.s3.region", "us-east-1")
	v.SetDefault("data.s3.use_ssl", true)
	v.SetDefault("geolocation.timeout_secs", 10)
	v.SetDefault("geolocation.max_age_secs", 60)
	v.SetDefault("geolocation.point", "")
	v.SetDefault("geolocation.address", "")
	v.SetDefault("geolocation.census_rps", 5)
	v.SetDefault("geolocation.census_base_url", "https://geocoding.geo.census.gov")
	v.SetDefault("search.page_step", 10)
	v.SetDefault("search.nearby_locations", 5)
	v.SetDefault("search.detail_resources", 10)
	v.SetDefault("search.debounce_ms", 150)
	v.SetDefault("search.locale", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Data.ResourcesURL) == "" {
		errs = append(errs, "data.resources_url is required")
	}
	if strings.TrimSpace(c.Data.LocationsURL) == "" {
		errs = append(errs, "data.locations_url is required")
	}
	if c.Data.TimeoutSecs <= 0 {
		errs = append(errs, "data.timeout_secs must be > 0")
	}
	if c.Data.MaxRetries < 1 {
		errs = append(errs, "data.max_retries must be >= 1")
	}
	if c.Data.RequestsPerSecond <= 0 {
		errs = append(errs, "data.requests_per_second must be > 0")
	}
	if c.Geolocation.TimeoutSecs <= 0 {
		errs = append(errs, "geolocation.timeout_secs must be > 0")
	}
	if c.Geolocation.MaxAgeSecs <= 0 {
		errs = append(errs, "geolocation.max_age_secs must be > 0")
	}
	if c.Geolocation.CensusRPS <= 0 {
		errs = append(errs, "geolocation.census_rps must be > 0")
	}
	if c.Geolocation.Point != "" {
		if _, err := ParsePoint(c.Geolocation.Point); err != nil {
			errs = append(errs, "geolocation.point must be \"lat,lon\"")
		}
	}
	if c.Search.PageStep <= 0 {
		errs = append(errs, "search.page_step must be > 0")
	}
	if c.Search.NearbyLocations <= 0 {
		errs = append(errs, "search.nearby_locations must be > 0")
	}
	if c.Search.DetailResources <= 0 {
		errs = append(errs, "search.detail_resources must be > 0")
	}
	if c.Search.DebounceMS < 0 {
		errs = append(errs, "search.debounce_ms must be >= 0")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, "log.format must be json or console")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParsePoint parses "lat,lon" into a point within WGS 84 ranges.
func ParsePoint(s string) (geo.Point, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Point{}, eris.Errorf("config: point %q is not lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return geo.Point{}, eris.Wrapf(err, "config: parse latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return geo.Point{}, eris.Wrapf(err, "config: parse longitude %q", lonStr)
	}
	p := geo.Point{Lat: lat, Lon: lon}
	if !p.Valid() || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return geo.Point{}, eris.Errorf("config: point %q out of range", s)
	}
	return p, nil
}

// DataTimeout is the per-request timeout for document fetches.
func (c *Config) DataTimeout() time.Duration {
	return time.Duration(c.Data.TimeoutSecs) * time.Second
}

// GeoTimeout bounds one geolocation attempt.
func (c *Config) GeoTimeout() time.Duration {
	return time.Duration(c.Geolocation.TimeoutSecs) * time.Second
}

// GeoMaxAge is how long a position fix is reused.
func (c *Config) GeoMaxAge() time.Duration {
	return time.Duration(c.Geolocation.MaxAgeSecs) * time.Second
}

// Debounce is the quiet period before a typed query is applied.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
