// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like EMBEDDING_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not found.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.Embedding.APIKey == "" {
		if val := os.Getenv("EMBEDDING_API_KEY"); val != "" {
			cfg.Embedding.APIKey = val
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// applyDefaults fills in the legacy tuning values for anything the config
// file leaves unset.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "talent-match"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 20
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "candidates"
	}

	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Version == "" {
		cfg.Embedding.Version = "v1"
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = 8000
	}
	if cfg.Embedding.MaxInputChars == 0 {
		cfg.Embedding.MaxInputChars = 32000
	}
	if cfg.Embedding.StalenessDays == 0 {
		cfg.Embedding.StalenessDays = 30
	}

	if cfg.Matching.SearchWithVectors == (BlendWeights{}) {
		cfg.Matching.SearchWithVectors = BlendWeights{Vector: 0.50, Profile: 0.25, Skills: 0.25}
	}
	if cfg.Matching.SearchNoVectors == (BlendWeights{}) {
		cfg.Matching.SearchNoVectors = BlendWeights{Profile: 0.40, Skills: 0.40, Project: 0.20}
	}
	if cfg.Matching.ShortlistWithVectors == (BlendWeights{}) {
		cfg.Matching.ShortlistWithVectors = BlendWeights{Vector: 0.35, Profile: 0.20, Skills: 0.20, Project: 0.15, Application: 0.10}
	}
	if cfg.Matching.ShortlistNoVectors == (BlendWeights{}) {
		cfg.Matching.ShortlistNoVectors = BlendWeights{Profile: 0.30, Skills: 0.30, Project: 0.25, Application: 0.15}
	}

	if cfg.Matching.RelevanceFirst == (RelevanceFirstConfig{}) {
		cfg.Matching.RelevanceFirst = RelevanceFirstConfig{
			RelevanceWeight: 0.60,
			ProxyWeight:     0.25,
			ActivityWeight:  0.15,
			MinOverallScore: 40,
			DominanceMargin: 10,
		}
	}

	if cfg.Matching.Pool.StrictLimit == 0 {
		cfg.Matching.Pool.StrictLimit = 20
	}
	if cfg.Matching.Pool.RelaxedLimit == 0 {
		cfg.Matching.Pool.RelaxedLimit = 40
	}
	if cfg.Matching.Pool.KeywordLimit == 0 {
		cfg.Matching.Pool.KeywordLimit = 30
	}
	if cfg.Matching.Pool.EmergencyLimit == 0 {
		cfg.Matching.Pool.EmergencyLimit = 50
	}
	if cfg.Matching.Pool.ActiveWindowDays == 0 {
		cfg.Matching.Pool.ActiveWindowDays = 90
	}
	if cfg.Matching.Pool.UpdatedWindowDays == 0 {
		cfg.Matching.Pool.UpdatedWindowDays = 180
	}
	if cfg.Matching.Pool.CreatedWindowDays == 0 {
		cfg.Matching.Pool.CreatedWindowDays = 365
	}
	if cfg.Matching.ScoringConcurrency == 0 {
		cfg.Matching.ScoringConcurrency = 10
	}

	if len(cfg.Tiers.Limits) == 0 {
		cfg.Tiers.Limits = map[string]TierLimit{
			"free":         {MaxResults: 5, Visibility: "shortlisted_only"},
			"professional": {MaxResults: 20, Visibility: "full_pool"},
			"enterprise":   {MaxResults: 50, Visibility: "complete_transparency"},
		}
	}
	if len(cfg.Tiers.Credits.QuintileCosts) == 0 {
		cfg.Tiers.Credits.QuintileCosts = []int{5, 4, 3, 2, 1}
	}

	if cfg.Shortlist.MinApplications == 0 {
		cfg.Shortlist.MinApplications = 30
	}
	if cfg.Shortlist.TopN == 0 {
		cfg.Shortlist.TopN = 10
	}
	if cfg.Shortlist.DefaultScore == 0 {
		cfg.Shortlist.DefaultScore = 50
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if len(cfg.Tiers.Credits.QuintileCosts) != 5 {
		return fmt.Errorf("tiers.credits.quintile_costs must have exactly 5 entries")
	}
	for name, tier := range cfg.Tiers.Limits {
		switch tier.Visibility {
		case "shortlisted_only", "full_pool", "complete_transparency":
		default:
			return fmt.Errorf("tiers.limits.%s.visibility %q is not a known visibility level", name, tier.Visibility)
		}
	}
	return nil
}
