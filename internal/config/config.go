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
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	News      NewsConfig      `yaml:"news" mapstructure:"news"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Research  ResearchConfig  `yaml:"research" mapstructure:"research"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Permit    PermitConfig    `yaml:"permit" mapstructure:"permit"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// NewsConfig holds news search API settings.
type NewsConfig struct {
	Token   string  `yaml:"token" mapstructure:"token"`
	BaseURL string  `yaml:"base_url" mapstructure:"base_url"`
	Locale  string  `yaml:"locale" mapstructure:"locale"`
	Limit   int     `yaml:"limit" mapstructure:"limit"`
	RPS     float64 `yaml:"rps" mapstructure:"rps"`
}

// AnthropicConfig holds Anthropic API settings for the optional regulatory
// narrative. Leave Key empty to disable narratives.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ResearchConfig configures the news research phase.
type ResearchConfig struct {
	MaxArticles    int `yaml:"max_articles" mapstructure:"max_articles"`
	SearchParallel int `yaml:"search_parallel" mapstructure:"search_parallel"`
	TimeoutSecs    int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ScoringConfig holds feasibility scoring weights and thresholds. The
// 0.6/0.4 split and the 70/50 risk cutoffs are tuning values rather than
// contracts, so they live in configuration.
type ScoringConfig struct {
	PermitWeight   float64 `yaml:"permit_weight" mapstructure:"permit_weight"`
	ResearchWeight float64 `yaml:"research_weight" mapstructure:"research_weight"`
	GoThreshold    float64 `yaml:"go_threshold" mapstructure:"go_threshold"`
	NoGoThreshold  float64 `yaml:"no_go_threshold" mapstructure:"no_go_threshold"`
	FeeDivisor     float64 `yaml:"fee_divisor" mapstructure:"fee_divisor"`
	WeekPenalty    float64 `yaml:"week_penalty" mapstructure:"week_penalty"`
	ResearchBase   float64 `yaml:"research_base" mapstructure:"research_base"`
	ArticlePenalty float64 `yaml:"article_penalty" mapstructure:"article_penalty"`
	ResearchFloor  float64 `yaml:"research_floor" mapstructure:"research_floor"`
	ResearchCeil   float64 `yaml:"research_ceiling" mapstructure:"research_ceiling"`
	MoratoriumCut  float64 `yaml:"moratorium_cut" mapstructure:"moratorium_cut"`
	IncentiveLift  float64 `yaml:"incentive_lift" mapstructure:"incentive_lift"`
}

// PermitConfig holds applicant defaults for generated permit forms.
type PermitConfig struct {
	ApplicantName       string `yaml:"applicant_name" mapstructure:"applicant_name"`
	InstallationCompany string `yaml:"installation_company" mapstructure:"installation_company"`
	ContractorLicense   string `yaml:"contractor_license" mapstructure:"contractor_license"`
	ProfilesPath        string `yaml:"profiles_path" mapstructure:"profiles_path"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentSites int `yaml:"max_concurrent_sites" mapstructure:"max_concurrent_sites"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("HELIOWATT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys without a meaningful default still need an entry so
	// AutomaticEnv can populate them during Unmarshal.
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.max_concurrent_sites", 4)
	v.SetDefault("news.token", "")
	v.SetDefault("news.base_url", "https://api.thenewsapi.com")
	v.SetDefault("news.locale", "us,ca")
	v.SetDefault("news.limit", 10)
	v.SetDefault("news.rps", 2)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("permit.applicant_name", "")
	v.SetDefault("permit.installation_company", "")
	v.SetDefault("permit.contractor_license", "")
	v.SetDefault("permit.profiles_path", "")
	v.SetDefault("research.max_articles", 10)
	v.SetDefault("research.search_parallel", 4)
	v.SetDefault("research.timeout_secs", 30)
	v.SetDefault("scoring.permit_weight", 0.6)
	v.SetDefault("scoring.research_weight", 0.4)
	v.SetDefault("scoring.go_threshold", 70)
	v.SetDefault("scoring.no_go_threshold", 50)
	v.SetDefault("scoring.fee_divisor", 10)
	v.SetDefault("scoring.week_penalty", 5)
	v.SetDefault("scoring.research_base", 70)
	v.SetDefault("scoring.article_penalty", 2)
	v.SetDefault("scoring.research_floor", 20)
	v.SetDefault("scoring.research_ceiling", 80)
	v.SetDefault("scoring.moratorium_cut", 15)
	v.SetDefault("scoring.incentive_lift", 10)

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
