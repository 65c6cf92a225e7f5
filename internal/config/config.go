package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	SerpAPI SerpAPIConfig `yaml:"serpapi" mapstructure:"serpapi"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SerpAPIConfig holds SerpAPI credentials and endpoint.
type SerpAPIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SearchConfig configures the collection run.
type SearchConfig struct {
	Region         string   `yaml:"region" mapstructure:"region"`
	CallingCode    string   `yaml:"calling_code" mapstructure:"calling_code"`
	Coordinates    string   `yaml:"coordinates" mapstructure:"coordinates"`
	Zoom           string   `yaml:"zoom" mapstructure:"zoom"`
	Categories     []string `yaml:"categories" mapstructure:"categories"`
	CategorySuffix string   `yaml:"category_suffix" mapstructure:"category_suffix"`
	PageSize       int      `yaml:"page_size" mapstructure:"page_size"`
	MaxPages       int      `yaml:"max_pages" mapstructure:"max_pages"`
	DelayMS        int      `yaml:"delay_ms" mapstructure:"delay_ms"`
}

// OutputConfig configures where artifacts are written.
type OutputConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`
	CityLabel string `yaml:"city_label" mapstructure:"city_label"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Location returns the maps location anchor, e.g. "@12.9716,77.5946,14z".
func (c SearchConfig) Location() string {
	return "@" + c.Coordinates + "," + c.Zoom
}

// Validate checks that required credentials are present. It is called
// before any work begins so a missing key fails immediately.
func (c *Config) Validate() error {
	if c.SerpAPI.Key == "" {
		return eris.New("config: serpapi key is required (set VENDOR_SERPAPI_KEY or serpapi.key in config.yaml)")
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VENDOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("serpapi.key", "")
	v.SetDefault("serpapi.base_url", "https://serpapi.com")
	v.SetDefault("search.region", "IN")
	v.SetDefault("search.calling_code", "91")
	v.SetDefault("search.coordinates", "12.9716,77.5946")
	v.SetDefault("search.zoom", "14z")
	v.SetDefault("search.categories", []string{
		"Event Caterers Bangalore",
		"Tent House Bangalore",
		"Sound System Vendors Bangalore",
		"Wedding Decorators Bangalore",
		"Event Photographers Bangalore",
		"Florists Bangalore",
		"Wedding Venues Bangalore",
		"DJ Services Bangalore",
		"Event Planners Bangalore",
		"Lighting Equipment Rental Bangalore",
	})
	v.SetDefault("search.category_suffix", " Bangalore")
	v.SetDefault("search.page_size", 20)
	v.SetDefault("search.max_pages", 3)
	v.SetDefault("search.delay_ms", 1500)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.city_label", "Bangalore")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
