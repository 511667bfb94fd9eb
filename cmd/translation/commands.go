package translation

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zlang-app/zlang/internal/config"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/service/translation"
)

// session is the service a command runs against plus the user's defaults
type session struct {
	service  translation.TranslationService
	language model.Language
	cleanup  func()
}

// openSession returns the injected service, or builds one from the configuration
func openSession(ctx context.Context, service translation.TranslationService, opts ServiceOptions) (*session, error) {
	if service != nil {
		return &session{service: service, language: model.DefaultSettings().Language, cleanup: func() {}}, nil
	}

	svc, cfg, cleanup, err := NewServiceFactory().CreateService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation service: %w", err)
	}
	return &session{service: svc, language: defaultLanguage(cfg), cleanup: cleanup}, nil
}

func defaultLanguage(cfg *config.Config) model.Language {
	if cfg != nil && cfg.Settings.Language.Valid() {
		return cfg.Settings.Language
	}
	return model.LanguageEnglish
}

// writeFormatted renders with the formatter named by the --format flag
func writeFormatted(cmd *cobra.Command, render func(Formatter) (string, error)) error {
	format, _ := cmd.Flags().GetString("format")
	formatter, err := GetFormatter(format)
	if err != nil {
		return err
	}
	out, err := render(formatter)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
