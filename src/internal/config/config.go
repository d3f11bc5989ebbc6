package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=savings_core_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultChargeScanSchedule = "0 1 * * *"

// Config holds the service settings, loaded from environment variables with
// an optional .env override. It also implements the tenant configuration
// collaborator the interest engine consults.
type Config struct {
	DatabaseDSN                string `mapstructure:"DATABASE_DSN"`
	MigrationsDir              string `mapstructure:"MIGRATIONS_DIR"`
	InterestPostingAtPeriodEnd bool   `mapstructure:"INTEREST_POSTING_AT_PERIOD_END"`
	FinancialYearStartMonthNum int    `mapstructure:"FINANCIAL_YEAR_START_MONTH"`
	ChargeScanSchedule         string `mapstructure:"CHARGE_SCAN_SCHEDULE"`
}

func Load(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("DATABASE_DSN", defaultConnectionString)
	viper.SetDefault("MIGRATIONS_DIR", filepath.Join("src", "migrations"))
	viper.SetDefault("INTEREST_POSTING_AT_PERIOD_END", true)
	viper.SetDefault("FINANCIAL_YEAR_START_MONTH", 1)
	viper.SetDefault("CHARGE_SCAN_SCHEDULE", defaultChargeScanSchedule)

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; the environment still applies.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.DatabaseDSN = normalizeConnectionString(strings.TrimSpace(cfg.DatabaseDSN))
	if cfg.FinancialYearStartMonthNum < 1 || cfg.FinancialYearStartMonthNum > 12 {
		return Config{}, fmt.Errorf("FINANCIAL_YEAR_START_MONTH must be between 1 and 12, got %d", cfg.FinancialYearStartMonthNum)
	}

	return cfg, nil
}

// IsInterestPostingAtPeriodEnd reports whether interest postings snap to the
// end of the current posting period.
func (c Config) IsInterestPostingAtPeriodEnd() bool {
	return c.InterestPostingAtPeriodEnd
}

// FinancialYearStartMonth returns the month (1-12) the tenant's financial
// year begins.
func (c Config) FinancialYearStartMonth() int {
	return c.FinancialYearStartMonthNum
}

// normalizeConnectionString converts a semicolon key=value connection string
// into the keyword form lib/pq expects, defaulting sslmode to disable.
func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
