package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/spf13/cobra"
)

var (
	projectFlags  *inputFlags
	projectStored bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project the future value of savings with compound interest",
	Example: "  nestegg project --initial-savings 10000 --contribution 500 --rate 5 --years 20\n" +
		"  nestegg project --stored --years 30",
	RunE: runProject,
}

func init() {
	projectFlags = newInputFlags(projectCmd, flagInitialSavings, flagContribution, flagFrequency, flagRate, flagYears)
	projectCmd.Flags().BoolVar(&projectStored, "stored", false, "Start from the stored inputs")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	base := domain.DefaultInputs()
	if projectStored {
		stored, err := loadStoredInputs(cmd)
		if err != nil {
			return err
		}
		base = stored
	}
	in, err := projectFlags.apply(cmd, base)
	if err != nil {
		return err
	}

	res, err := newEngine().Project(in.ProjectionInput())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output.NormalizeFormatName(outputFormat()) == "json" {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	fmt.Fprintf(w, "  Future value: %s\n", output.FormatCurrency(res.FutureValue))
	fmt.Fprintf(w, "  %s initial, %s %s at %s for %s years\n",
		output.FormatCurrency(in.InitialSavings),
		output.FormatCurrency(in.Contribution),
		in.ContributionFrequency,
		output.FormatPercentage(in.AnnualInterestRate),
		in.Years.String())
	return nil
}

func loadStoredInputs(cmd *cobra.Command) (domain.Inputs, error) {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return domain.Inputs{}, err
	}
	defer store.Close()
	return store.Load(ctx)
}
