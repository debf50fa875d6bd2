package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfassina/grimdark/internal/action"
	"github.com/pfassina/grimdark/internal/persistence"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file.replay.json>",
	Short: "Print a recorded battle's action log (the battle is not re-simulated)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	session, err := persistence.LoadReplay(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario=%s seed=%d recorded_at=%d actions=%d\n",
		session.ScenarioID, session.Seed, session.Timestamp, len(session.Actions))

	for _, rec := range session.Actions {
		target, err := persistence.DecodeTarget(rec.Payload)
		if err != nil {
			return fmt.Errorf("replay: decode action at tick %d: %w", rec.Tick, err)
		}
		fmt.Printf("tick=%-5d actor=%-12s action=%-14s target=%s\n",
			rec.Tick, rec.Actor, rec.Action, describeTarget(target))
	}
	return nil
}

func describeTarget(t action.Target) string {
	switch {
	case t.HasPos:
		return fmt.Sprintf("pos(%d,%d)", t.Pos.X, t.Pos.Y)
	case t.HasEntity:
		return fmt.Sprintf("entity(%s)", t.Entity)
	default:
		return "-"
	}
}
