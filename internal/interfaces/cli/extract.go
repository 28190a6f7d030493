package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/internal/intelligence/extraction"
	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

// newExtractCommand runs one extraction from the terminal.  Useful for rule
// tuning and for triaging transcripts that produced odd results in
// production.
func newExtractCommand(flags *rootFlags) *cobra.Command {
	var (
		hint      string
		rulesPath string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "extract [transcript]",
		Short: "Extract case fields from a transcript",
		Long: `Extract runs the intake engine over one transcript and prints the
resulting fields.  The transcript is read from the argument, or from stdin
when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := readTranscript(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var rules *extraction.RuleSet
			if rulesPath != "" {
				rules, err = extraction.LoadRulesFile(rulesPath)
				if err != nil {
					return err
				}
			}
			engine, err := extraction.NewEngine(extraction.Options{
				Rules:  rules,
				Logger: logging.NewNopLogger(),
			})
			if err != nil {
				return err
			}

			categoryHint := intake.CategoryLabel(hint)
			if hint != "" && !categoryHint.IsValid() {
				return errors.New(errors.ErrCodeValidation, "unknown category hint").
					WithDetail(hint)
			}

			result := engine.ExtractWithHint(transcript, categoryHint)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&hint, "hint", "", "category hint (e.g. HOUSING)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "rules overlay YAML file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	return cmd
}

func readTranscript(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", errors.New(errors.ErrCodeBadRequest,
				"no transcript given: pass it as an argument or pipe it on stdin")
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read stdin")
	}
	return string(data), nil
}

func printResult(w io.Writer, res *intake.ExtractionResult) {
	printField := func(label string, value string, conf float64, source intake.Source) {
		if value == "" {
			fmt.Fprintf(w, "%-14s (not found)\n", label+":")
			return
		}
		fmt.Fprintf(w, "%-14s %s  (confidence %.2f, %s)\n", label+":", value, conf, source)
	}

	name, _ := res.ContactName.Get()
	printField("Name", name, res.ContactName.Confidence, res.ContactName.Source)

	if amount, ok := res.GoalAmount.Get(); ok {
		printField("Goal", fmt.Sprintf("$%d", amount), res.GoalAmount.Confidence, res.GoalAmount.Source)
	} else {
		printField("Goal", "", 0, "")
	}

	if category, ok := res.Category.Get(); ok {
		printField("Category", string(category), res.Category.Confidence, res.Category.Source)
	}

	relation, _ := res.Relationship.Get()
	printField("Beneficiary", relation, res.Relationship.Confidence, res.Relationship.Source)

	fmt.Fprintf(w, "%-14s %s  (confidence %.2f, score %.3f)\n",
		"Urgency:", res.Urgency.Level, res.Urgency.Confidence, res.Urgency.Score)

	if len(res.MissingFields) > 0 {
		names := make([]string, len(res.MissingFields))
		for i, f := range res.MissingFields {
			names[i] = string(f)
		}
		fmt.Fprintf(w, "%-14s %s\n", "Missing:", strings.Join(names, ", "))
	}
	for i, q := range res.FollowUpQuestions {
		fmt.Fprintf(w, "  ask %d: %s\n", i+1, q)
	}
}
