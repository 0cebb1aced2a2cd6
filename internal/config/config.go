package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string // SQLite path or ":memory:"; a postgres:// URL selects Postgres
	RedisURL       string // optional; enables request counters on /health/json
	HealthAdminKey string
	AllowedOrigins []string // besides localhost and the file:// "null" origin
	LogLevel       string
	LogPretty      bool

	// Business switches
	AnnualInstallments      bool
	MaintenanceInstallment  bool
	ReverseOnContractDelete bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_URL", "data.db")
	viper.SetDefault("LOG_LEVEL", "info")

	env := viper.GetString("APP_ENV")
	viper.SetDefault("LOG_PRETTY", env == "development")
	return &Config{
		Env:                     env,
		Port:                    viper.GetString("PORT"),
		DatabaseURL:             viper.GetString("DATABASE_URL"),
		RedisURL:                viper.GetString("REDIS_URL"),
		HealthAdminKey:          viper.GetString("HEALTH_ADMIN_KEY"),
		AllowedOrigins:          splitList(viper.GetString("ALLOWED_ORIGINS")),
		LogLevel:                viper.GetString("LOG_LEVEL"),
		LogPretty:               viper.GetBool("LOG_PRETTY"),
		AnnualInstallments:      viper.GetBool("SCHEDULE_ANNUAL_INSTALLMENTS"),
		MaintenanceInstallment:  viper.GetBool("SCHEDULE_MAINTENANCE_INSTALLMENT"),
		ReverseOnContractDelete: viper.GetBool("LEDGER_REVERSE_ON_CONTRACT_DELETE"),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
