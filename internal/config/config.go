package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the services need. It is built once in main and
// passed into constructors; no component reads the environment on its own.
type Config struct {
	// GitHub API access
	Token      string
	Owner      string
	APIBaseURL string
	GraphQLURL string

	// Listing
	PageSize int

	// Secondary rate limit retry
	RetryInitialWait  time.Duration
	RetryWaitIncrease time.Duration
	RetryMaxAttempts  int // 0 = unbounded

	// File paths
	UpdateFile  string
	ParentsFile string
	LedgerPath  string
}

// Load reads .env (if present) and the BOARDSYNC_* environment. A missing
// GITHUB_TOKEN is a fatal configuration error: nothing downstream can work
// without it, so we refuse to start.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("boardsync")
	v.AutomaticEnv()

	v.SetDefault("owner", "Kin230k")
	v.SetDefault("api_base_url", "https://api.github.com")
	v.SetDefault("graphql_url", "https://api.github.com/graphql")
	v.SetDefault("page_size", 100)
	v.SetDefault("retry_initial_wait", "60s")
	v.SetDefault("retry_wait_increase", "60s")
	v.SetDefault("retry_max_attempts", 0)
	v.SetDefault("update_file", "update.tsv")
	v.SetDefault("parents_file", "parents.tsv")
	v.SetDefault("ledger_path", "./boardsync.db")

	// The token keeps its historical name, so it is read outside the prefix.
	v.BindEnv("token", "GITHUB_TOKEN")

	token := v.GetString("token")
	if token == "" {
		return nil, fmt.Errorf("missing GITHUB_TOKEN in environment or .env")
	}

	cfg := &Config{
		Token:             token,
		Owner:             v.GetString("owner"),
		APIBaseURL:        v.GetString("api_base_url"),
		GraphQLURL:        v.GetString("graphql_url"),
		PageSize:          v.GetInt("page_size"),
		RetryInitialWait:  v.GetDuration("retry_initial_wait"),
		RetryWaitIncrease: v.GetDuration("retry_wait_increase"),
		RetryMaxAttempts:  v.GetInt("retry_max_attempts"),
		UpdateFile:        v.GetString("update_file"),
		ParentsFile:       v.GetString("parents_file"),
		LedgerPath:        v.GetString("ledger_path"),
	}

	return cfg, nil
}
