// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Tiers     TiersConfig     `mapstructure:"tiers"`
	Shortlist ShortlistConfig `mapstructure:"shortlist"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Server    ServerConfig    `mapstructure:"server"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
	Enabled   bool     `mapstructure:"enabled"`
}

// EmbeddingConfig holds settings for the external text-embedding provider.
type EmbeddingConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	Version       string `mapstructure:"version"`         // generator version tag stored with vectors
	Timeout       int    `mapstructure:"timeout"`         // milliseconds
	MaxInputChars int    `mapstructure:"max_input_chars"` // truncation budget, ~8000 tokens
	StalenessDays int    `mapstructure:"staleness_days"`
}

// MatchingConfig holds the scoring weight tables and cascade limits.
// All of these are injected so tests can substitute alternate tables.
type MatchingConfig struct {
	SearchWithVectors    BlendWeights `mapstructure:"search_with_vectors"`
	SearchNoVectors      BlendWeights `mapstructure:"search_no_vectors"`
	ShortlistWithVectors BlendWeights `mapstructure:"shortlist_with_vectors"`
	ShortlistNoVectors   BlendWeights `mapstructure:"shortlist_no_vectors"`

	RelevanceFirst RelevanceFirstConfig `mapstructure:"relevance_first"`

	Pool PoolConfig `mapstructure:"pool"`

	ScoringConcurrency int `mapstructure:"scoring_concurrency"`
}

// BlendWeights is one row of the mode-dependent blending table.
type BlendWeights struct {
	Vector      float64 `mapstructure:"vector"`
	Profile     float64 `mapstructure:"profile"`
	Skills      float64 `mapstructure:"skills"`
	Project     float64 `mapstructure:"project"`
	Application float64 `mapstructure:"application"`
}

// RelevanceFirstConfig drives the rule-based-only talent matcher blend.
type RelevanceFirstConfig struct {
	RelevanceWeight float64 `mapstructure:"relevance_weight"`
	ProxyWeight     float64 `mapstructure:"proxy_weight"`
	ActivityWeight  float64 `mapstructure:"activity_weight"`
	MinOverallScore float64 `mapstructure:"min_overall_score"`
	DominanceMargin float64 `mapstructure:"dominance_margin"`
}

// PoolConfig holds cascade caps and recency windows. The legacy values are
// preserved as defaults rather than hardcoded at the call sites.
type PoolConfig struct {
	StrictLimit        int `mapstructure:"strict_limit"`
	RelaxedLimit       int `mapstructure:"relaxed_limit"`
	KeywordLimit       int `mapstructure:"keyword_limit"`
	EmergencyLimit     int `mapstructure:"emergency_limit"`
	ActiveWindowDays   int `mapstructure:"active_window_days"`
	UpdatedWindowDays  int `mapstructure:"updated_window_days"`
	CreatedWindowDays  int `mapstructure:"created_window_days"`
}

// TiersConfig holds subscription tier visibility and credit tables.
type TiersConfig struct {
	Limits  map[string]TierLimit `mapstructure:"limits"`
	Credits CreditConfig         `mapstructure:"credits"`
}

type TierLimit struct {
	MaxResults int    `mapstructure:"max_results"`
	Visibility string `mapstructure:"visibility"` // shortlisted_only | full_pool | complete_transparency
}

// CreditConfig prices contact reveals by candidate quality quintile,
// top quintile first.
type CreditConfig struct {
	QuintileCosts []int `mapstructure:"quintile_costs"`
}

// ShortlistConfig holds auto-shortlist thresholds.
type ShortlistConfig struct {
	MinApplications int `mapstructure:"min_applications"`
	TopN            int `mapstructure:"top_n"`
	DefaultScore    int `mapstructure:"default_score"` // assigned when scoring an application fails
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
