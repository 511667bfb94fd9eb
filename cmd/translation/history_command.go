package translation

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zlang-app/zlang/internal/config"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/repository/history"
	"github.com/zlang-app/zlang/internal/service/translation"
)

// NewHistoryCommand creates the history command and its subcommands
func NewHistoryCommand(service translation.TranslationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage translation history",
		Long:  `List, clear and migrate the history of completed translations.`,
	}

	cmd.AddCommand(NewHistoryListCommand(service))
	cmd.AddCommand(NewHistoryClearCommand(service))
	cmd.AddCommand(NewHistoryMigrateCommand())

	return cmd
}

// NewHistoryListCommand creates the history list command
func NewHistoryListCommand(service translation.TranslationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent translations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			directionFlag, _ := cmd.Flags().GetString("direction")
			limit, _ := cmd.Flags().GetInt("limit")

			opts := history.ListOptions{Limit: limit}
			if directionFlag != "" {
				direction, err := model.ParseDirection(directionFlag)
				if err != nil {
					return err
				}
				opts.Direction = direction
			}

			sess, err := openSession(commandContext(cmd), service, ServiceOptions{HistoryOnly: true})
			if err != nil {
				return err
			}
			defer sess.cleanup()

			entries, err := sess.service.History(commandContext(cmd), opts)
			if err != nil {
				return err
			}
			return writeFormatted(cmd, func(f Formatter) (string, error) { return f.FormatHistory(entries) })
		},
	}

	cmd.Flags().String("direction", "", "Only show one direction (normal-to-genz, genz-to-normal)")
	cmd.Flags().Int("limit", 20, "Maximum number of entries to list")
	cmd.Flags().String("format", "text", "Output format (text, json)")

	return cmd
}

// NewHistoryClearCommand creates the history clear command
func NewHistoryClearCommand(service translation.TranslationService) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(commandContext(cmd), service, ServiceOptions{HistoryOnly: true})
			if err != nil {
				return err
			}
			defer sess.cleanup()

			if err := sess.service.ClearHistory(commandContext(cmd)); err != nil {
				return err
			}
			cmd.Println("History cleared")
			return nil
		},
	}
}

// NewHistoryMigrateCommand creates the command applying postgres migrations
func NewHistoryMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the postgres history driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.History.DatabaseURL == "" {
				return errors.New("history.database_url or DATABASE_URL must be set to run migrations")
			}
			if err := history.RunMigrations(cfg.History.DatabaseURL); err != nil {
				return err
			}
			cmd.Println("Migrations applied")
			return nil
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
