package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/spf13/cobra"
)

var (
	retireFlags    *inputFlags
	retireStored   bool
	retireSchedule bool
)

var retireCmd = &cobra.Command{
	Use:   "retire",
	Short: "Simulate how long savings last in retirement",
	Example: "  nestegg retire --initial-savings 100000 --expenses 30000 --rate 5 --inflation 2 --retirement-age 65 --years 10\n" +
		"  nestegg retire --stored --schedule",
	RunE: runRetire,
}

func init() {
	retireFlags = newInputFlags(retireCmd, flagInitialSavings, flagExpenses, flagRate, flagInflation, flagRetirementAge, flagYears)
	retireCmd.Flags().BoolVar(&retireStored, "stored", false, "Start from the stored inputs")
	retireCmd.Flags().BoolVar(&retireSchedule, "schedule", false, "Print the year by year drawdown")
	rootCmd.AddCommand(retireCmd)
}

func runRetire(cmd *cobra.Command, _ []string) error {
	base := domain.DefaultInputs()
	if retireStored {
		stored, err := loadStoredInputs(cmd)
		if err != nil {
			return err
		}
		base = stored
	}
	in, err := retireFlags.apply(cmd, base)
	if err != nil {
		return err
	}
	rin, err := in.RetirementInput()
	if err != nil {
		return err
	}

	res, err := newEngine().Retire(rin)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output.NormalizeFormatName(outputFormat()) == "json" {
		if !retireSchedule {
			res.Schedule = nil
		}
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	if res.CanSustain {
		fmt.Fprintf(w, "  Savings last the full %d years (to age %s)\n", res.SustainableYears, res.DepletionAge)
	} else {
		fmt.Fprintf(w, "  Savings run out after %d years, at age %s\n", res.SustainableYears, res.DepletionAge)
	}

	if retireSchedule && len(res.Schedule) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %4s  %5s  %16s  %18s\n", "Year", "Age", "Expenses", "End balance")
		for _, yr := range res.Schedule {
			fmt.Fprintf(w, "  %4d  %5s  %16s  %18s\n",
				yr.Period, yr.Age, output.FormatCurrency(yr.Expenses), output.FormatCurrency(yr.EndBalance))
		}
	}
	return nil
}
