package translation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/zlang-app/zlang/internal/errors"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/service/translation"
)

// NewTranslateCommand creates the translate command.
// A nil service is built from the configuration at run time.
func NewTranslateCommand(service translation.TranslationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [TEXT...]",
		Short: "Translate text to or from Gen Z slang",
		Long: `Translate standard text into Gen Z slang, or back with --reverse.
Text is taken from the arguments, from --file (one text per line) or from stdin.`,
		Example: `  zlang translate "This presentation was really impressive"
  zlang translate --reverse "no cap that fit is bussin"
  zlang translate --lang es --file phrases.txt --format json
  echo "I am very tired" | zlang translate --roundtrip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reverse, _ := cmd.Flags().GetBool("reverse")
			roundTrip, _ := cmd.Flags().GetBool("roundtrip")
			langFlag, _ := cmd.Flags().GetString("lang")
			file, _ := cmd.Flags().GetString("file")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			noHistory, _ := cmd.Flags().GetBool("no-history")

			if roundTrip && reverse {
				return errors.New("--roundtrip and --reverse cannot be combined")
			}
			if file != "" && len(args) > 0 {
				return errors.New("pass text either as arguments or with --file, not both")
			}
			if file != "" && roundTrip {
				return errors.New("--roundtrip cannot be used with --file")
			}

			direction := model.DirectionToGenZ
			if reverse {
				direction = model.DirectionToNormal
			}

			// Reject bad input before any configuration or network work
			var texts []string
			var text string
			var err error
			if file != "" {
				if texts, err = readLines(cmd, file); err != nil {
					return err
				}
				if len(texts) == 0 {
					return apperrors.New(apperrors.CodeInvalidArg, "no text found in "+file)
				}
			} else {
				if text, err = readText(cmd, args); err != nil {
					return err
				}
				if strings.TrimSpace(text) == "" {
					return apperrors.New(apperrors.CodeInvalidArg, "text cannot be empty")
				}
			}

			ctx := commandContext(cmd)

			sess, err := openSession(ctx, service, ServiceOptions{NoHistory: noHistory})
			if err != nil {
				return err
			}
			defer sess.cleanup()

			language := sess.language
			if langFlag != "" {
				if language, err = model.ParseLanguage(langFlag); err != nil {
					return err
				}
			}

			switch {
			case texts != nil:
				return runBatch(ctx, cmd, sess.service, texts, direction, language, concurrency)
			case roundTrip:
				result, err := sess.service.RoundTrip(ctx, text, language)
				if err != nil {
					return err
				}
				return writeFormatted(cmd, func(f Formatter) (string, error) { return f.FormatRoundTrip(result) })
			default:
				req, err := model.NewTranslationRequest(text, direction, language)
				if err != nil {
					return err
				}
				output, err := sess.service.Translate(ctx, req)
				if err != nil {
					return err
				}
				return writeFormatted(cmd, func(f Formatter) (string, error) { return f.FormatTranslation(req, output) })
			}
		},
	}

	cmd.Flags().BoolP("reverse", "r", false, "Translate Gen Z slang into standard text")
	cmd.Flags().StringP("lang", "l", "", "Response language (en, bn, hi, es); defaults to settings.language")
	cmd.Flags().StringP("file", "f", "", "Read one text per line from a file ('-' for stdin)")
	cmd.Flags().IntP("concurrency", "c", 4, "Maximum concurrent requests when translating a file")
	cmd.Flags().Bool("roundtrip", false, "Translate to Gen Z and back again")
	cmd.Flags().Bool("no-history", false, "Do not record this translation in history")
	cmd.Flags().String("format", "text", "Output format (text, json)")

	return cmd
}

// runBatch translates every line and reports how many failed
func runBatch(ctx context.Context, cmd *cobra.Command, service translation.TranslationService, texts []string, direction model.Direction, language model.Language, concurrency int) error {
	results := service.Batch(ctx, texts, direction, language, concurrency)
	if err := writeFormatted(cmd, func(f Formatter) (string, error) { return f.FormatBatch(results) }); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d translations failed", failed, len(results))
	}
	return nil
}

// readText joins the arguments, or reads stdin when there are none
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// readLines returns the non-blank lines of path, or of stdin for "-"
func readLines(cmd *cobra.Command, path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return translation.SplitLines(string(data)), nil
}
