package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zlang-app/zlang/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `Manage configuration settings for zlang.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [API_KEY]",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file, optionally storing an OpenRouter API key.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var apiKey string
		if len(args) > 0 {
			apiKey = args[0]
		}

		if err := config.InitConfig(apiKey); err != nil {
			return err
		}

		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		cmd.Printf("Created configuration file: %s\n", configPath)
		if apiKey == "" {
			cmd.Println("Set api_key in this file or export ZLANG_API_KEY before translating.")
		}

		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration file path and settings. The API key is masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		cmd.Printf("Configuration file: %s\n\n", configPath)

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		cmd.Printf("API key:      %s\n", cfg.MaskedAPIKey())
		cmd.Printf("Model:        %s\n", cfg.Model)
		cmd.Printf("Endpoint:     %s\n", cfg.Endpoint)
		cmd.Printf("Timeout:      %s\n", cfg.Timeout)
		cmd.Printf("Language:     %s\n", cfg.Settings.Language)
		cmd.Printf("History:      %s\n", cfg.History.Driver)
		switch cfg.History.Driver {
		case config.DriverSQLite:
			cmd.Printf("SQLite path:  %s\n", cfg.History.SQLitePath)
		case config.DriverPostgres:
			cmd.Printf("Database:     %s\n", maskDatabaseURL(cfg.History.DatabaseURL))
		}
		cmd.Printf("Max entries:  %d\n", cfg.History.MaxEntries)

		return nil
	},
}

// maskDatabaseURL hides the password of a postgres URL
func maskDatabaseURL(raw string) string {
	dbConfig, err := (&config.Config{History: config.HistoryConfig{DatabaseURL: raw}}).ParseDatabaseConfig()
	if err != nil {
		return "(invalid)"
	}
	return fmt.Sprintf("postgres://%s@%s:%d/%s", dbConfig.User, dbConfig.Host, dbConfig.Port, dbConfig.DBName)
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
