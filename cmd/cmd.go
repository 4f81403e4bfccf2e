package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dtalent/hr-client/internal"
	"github.com/dtalent/hr-client/internal/gateway"
	"github.com/dtalent/hr-client/internal/session"
	"github.com/dtalent/hr-client/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "hr-client",
	Short: "DTalent HR client",
	Long:  `Client for the DTalent HR backend: session, employee directory, payroll receipts and dashboard summary.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// Environment-only configuration for packaged installs
	if os.Getenv("APP_ENV") == "production" || os.Getenv("HR_ENV_ONLY") == "true" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("HR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.page_size", internal.DefaultPageSize)
	v.SetDefault("api.fallback_file_url", internal.DefaultFallbackFileURL)
	v.SetDefault("api.request_timeout", "15s")
	v.SetDefault("session.db_path", internal.DefaultSessionDBPath)
	v.SetDefault("logging.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

type Dependencies struct {
	Config   *internal.Config
	Logger   *slog.Logger
	Sessions *session.Store
	Gateway  *gateway.Client
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Env, cfg.Logging.Level)
	log := logger.LoggerWrapper()

	sessions, err := session.Open(cfg.Session.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	gw := gateway.NewClient(gateway.Config{
		BaseURL:         cfg.API.NormalizedBaseURL(),
		FallbackFileURL: cfg.API.FallbackFileURL,
		RequestTimeout:  cfg.API.RequestTimeout,
	}, sessions, sessions, log)

	return &Dependencies{
		Config:   cfg,
		Logger:   log,
		Sessions: sessions,
		Gateway:  gw,
	}, nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(employeesCmd)
	rootCmd.AddCommand(receiptsCmd)
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(dashboardCmd)
}
