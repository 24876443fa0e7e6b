package cmd

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/spf13/cobra"
)

var saveFlags *inputFlags

var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "Manage the stored last-used inputs",
}

var inputsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Update the stored inputs; unset flags keep their stored values",
	RunE:  runInputsSave,
}

var inputsLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Show the stored inputs",
	RunE:  runInputsLoad,
}

var inputsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored inputs",
	RunE:  runInputsReset,
}

func init() {
	saveFlags = newInputFlags(inputsSaveCmd,
		flagInitialSavings, flagContribution, flagFrequency, flagRate, flagYears,
		flagExpenses, flagInflation, flagRetirementAge, flagBirthDate)
	inputsCmd.AddCommand(inputsSaveCmd, inputsLoadCmd, inputsResetCmd)
	rootCmd.AddCommand(inputsCmd)
}

func runInputsSave(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	current, err := store.Load(ctx)
	if err != nil {
		return err
	}
	in, err := saveFlags.apply(cmd, current)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, in); err != nil {
		return err
	}
	return printInputs(cmd.OutOrStdout(), in)
}

func runInputsLoad(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	in, err := store.Load(ctx)
	if err != nil {
		return err
	}
	return printInputs(cmd.OutOrStdout(), in)
}

func runInputsReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	in, err := store.Reset(ctx)
	if err != nil {
		return err
	}
	return printInputs(cmd.OutOrStdout(), in)
}

func printInputs(w io.Writer, in domain.Inputs) error {
	if output.NormalizeFormatName(outputFormat()) == "json" {
		b, err := json.MarshalIndent(in, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	rows := []struct{ label, value string }{
		{"Initial savings", output.FormatCurrency(in.InitialSavings)},
		{"Contribution", output.FormatCurrency(in.Contribution) + " " + string(in.ContributionFrequency)},
		{"Interest rate", output.FormatPercentage(in.AnnualInterestRate)},
		{"Years", in.Years.String()},
		{"Annual expenses", output.FormatCurrency(in.AnnualExpenses)},
		{"Inflation rate", output.FormatPercentage(in.InflationRate)},
		{"Retirement age", in.RetirementAge.String()},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-17s %s\n", r.label+":", r.value)
	}
	return nil
}
