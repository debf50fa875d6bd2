package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfassina/grimdark/internal/scenario"
)

var validateScenarioCmd = &cobra.Command{
	Use:   "validate-scenario <file.yaml>",
	Short: "Parse a scenario document and report load errors without starting a battle",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateScenario,
}

func init() {
	rootCmd.AddCommand(validateScenarioCmd)
}

func runValidateScenario(cmd *cobra.Command, args []string) error {
	plan, err := scenario.Load(args[0])
	if err != nil {
		return fmt.Errorf("scenario invalid: %w", err)
	}
	fmt.Printf("%s: OK (%d unit defs, %d placements, %d victory / %d defeat objectives)\n",
		plan.Name, len(plan.UnitDefs), len(plan.Placements), len(plan.Objectives.Victory), len(plan.Objectives.Defeat))
	return nil
}
