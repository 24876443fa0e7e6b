package cmd

import (
	"fmt"
	"io"

	"github.com/rpgo/nestegg/internal/config"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/logging"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/rpgo/nestegg/internal/validation"
	"github.com/spf13/cobra"
)

var flagOutputDir string

var runCmd = &cobra.Command{
	Use:   "run <scenarios.yaml>",
	Short: "Validate and calculate every scenario in a file and report the results",
	Long: "Runs both calculators for each scenario in a YAML (or JSON) scenario file.\n" +
		"Use - to read the file from stdin. Scenarios that fail validation are reported\n" +
		"with their errors and skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runScenarios,
}

var validateCmd = &cobra.Command{
	Use:   "validate <scenarios.yaml>",
	Short: "Check every scenario form in a file without calculating",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	runCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Write the report to a timestamped file in this directory (format \"all\" writes every format)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

func loadScenarios(cmd *cobra.Command, path string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	if path != "-" {
		return parser.LoadFromFile(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return parser.Parse(data)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenarios(cmd, args[0])
	if err != nil {
		return err
	}

	results, err := newEngine().RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	logging.L().Info("scenarios.run", "file", args[0], "scenarios", len(results.Scenarios))

	if flagOutputDir == "" {
		return output.GenerateReport(cmd.OutOrStdout(), results, outputFormat())
	}
	files, err := output.GenerateReportFile(flagOutputDir, results, outputFormat())
	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "  Wrote %s\n", f)
	}
	return err
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenarios(cmd, args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	failed := 0
	for _, sc := range cfg.Scenarios {
		res := checkScenario(sc)
		if res.IsValid {
			fmt.Fprintf(w, "  ok    %s\n", sc.Name)
			continue
		}
		failed++
		fmt.Fprintf(w, "  FAIL  %s\n", sc.Name)
		for _, e := range res.Errors {
			fmt.Fprintf(w, "        - %s\n", e)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed validation", failed, len(cfg.Scenarios))
	}
	return nil
}

// checkScenario validates the form and, for a valid form, the retirement
// horizon that run would reject.
func checkScenario(sc domain.Scenario) domain.ValidationResult {
	res := validation.Validate(sc.Form)
	if !res.IsValid {
		return res
	}
	in, err := sc.Form.Inputs()
	if err == nil {
		err = in.CheckHorizon()
	}
	if err != nil {
		res.IsValid = false
		res.Errors = append(res.Errors, err.Error())
	}
	return res
}
