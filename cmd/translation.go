package cmd

import (
	"github.com/zlang-app/zlang/cmd/translation"
)

func init() {
	// nil services are built from the configuration when a command runs
	rootCmd.AddCommand(translation.NewTranslateCommand(nil))
	rootCmd.AddCommand(translation.NewHistoryCommand(nil))
}
