package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zlang-app/zlang/internal/model"
)

// languagesCmd lists the languages a translation can be answered in
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, lang := range model.Languages() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s\n", lang, lang.DisplayName())
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
