package cmd

import (
	"errors"
	"fmt"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/rpgo/nestegg/internal/prompt"
	"github.com/rpgo/nestegg/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	promptAccessible bool
	promptBirthDate  string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill in the calculator form interactively, then save and calculate",
	Long: "Opens a form pre-filled with the stored inputs. Valid answers are saved to the\n" +
		"input store and both calculators run on them.",
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().BoolVar(&promptAccessible, "accessible", false, "Use plain line prompts (screen readers, dumb terminals)")
	promptCmd.Flags().StringVar(&promptBirthDate, flagBirthDate, "", "Birth date (YYYY-MM-DD) used to pre-fill the current age")
	rootCmd.AddCommand(promptCmd)
}

// defaultAllocation pre-fills the stocks/bonds split, which is not stored.
var defaultAllocation = [2]decimal.Decimal{decimal.NewFromInt(60), decimal.NewFromInt(40)}

func runPrompt(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.Load(ctx)
	if err != nil {
		return err
	}

	initial := domain.FormFromInputs(stored, decimal.Zero, defaultAllocation[0], defaultAllocation[1])
	initial.CurrentAge = ""
	if promptBirthDate != "" {
		birth, err := dateutil.ParseDate(promptBirthDate)
		if err != nil {
			return err
		}
		initial.CurrentAge = domain.RawValue(fmt.Sprint(dateutil.Age(birth, nowFunc())))
	}

	form, result, err := prompt.Run(ctx, initial, prompt.Options{
		Accessible: promptAccessible,
		Input:      cmd.InOrStdin(),
		Output:     cmd.OutOrStdout(),
	})
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "  Cancelled, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !result.IsValid {
		fmt.Fprintln(w, "  The form has errors:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "    - %s\n", e)
		}
		return fmt.Errorf("inputs were not saved")
	}

	in, err := form.Inputs()
	if err != nil {
		return err
	}
	if err := store.Save(ctx, in); err != nil {
		return err
	}

	results, err := newEngine().RunScenarios(ctx, &domain.Configuration{
		Scenarios: []domain.Scenario{{Name: "Your plan", Form: form}},
	})
	if err != nil {
		return err
	}
	return output.GenerateReport(w, results, outputFormat())
}
