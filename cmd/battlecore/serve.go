package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pfassina/grimdark/internal/ai"
	"github.com/pfassina/grimdark/internal/ai/script"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/engine"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/obs"
	"github.com/pfassina/grimdark/internal/persistence/archive"
	"github.com/pfassina/grimdark/internal/scenario"
	"github.com/pfassina/grimdark/internal/transport"
)

var serveCmd = &cobra.Command{
	Use:   "serve <scenario.yaml>",
	Short: "Host a battle and stream its render state to spectators",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("spectate", true, "Start the spectator websocket listener")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	seed := cfg.Seed()

	plan, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	log := obs.Log.WithField("scenario", plan.Name)
	log.WithField("seed", seed).Info("battle starting")

	state, err := engine.Materialize(plan, seed, cfg.Tuning())
	if err != nil {
		return err
	}

	var instOpts []engine.InstanceOption
	if cfg.AI.ScriptDir != "" {
		scriptEngine, err := script.NewEngine(cfg.AI.ScriptDir, log.WithField("component", "ai_script"))
		if err != nil {
			return err
		}
		defer scriptEngine.Close()
		instOpts = append(instOpts, engine.WithScorer(ai.NewScriptScorer(scriptEngine)))
		log.WithField("script_dir", cfg.AI.ScriptDir).Info("loaded AI scoring scripts")
	}
	inst := engine.NewInstance(state, plan.Name, seed, instOpts...)

	spectate, _ := cmd.Flags().GetBool("spectate")
	var hub *transport.Hub
	if spectate {
		hub = transport.NewHub()
		srv := transport.NewServer(hub, cfg.Server.BindAddress, log)
		go func() {
			if err := srv.Run(); err != nil {
				log.WithError(err).Error("spectator server stopped")
			}
		}()
		log.WithField("addr", cfg.Server.BindAddress).Info("spectator websocket listening")

		state.Bus().Subscribe(domain.EventTurnEnded, 0, events.Typed(func(events.TurnEnded) {
			hub.Broadcast(state.RenderContext())
		}))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = inst.Run(ctx)
	if fatal, ok := err.(interface{ Diagnostic() string }); ok {
		log.WithField("diagnostic", fatal.Diagnostic()).Fatal("battle aborted on a broken invariant")
	}
	if err != nil && ctx.Err() == nil {
		return err
	}

	if saveErr := inst.Recorder().Save(replayPathFor(plan.Name, seed)); saveErr != nil {
		log.WithError(saveErr).Warn("failed to save replay")
	}

	if cfg.Persistence.ArchiveDSN != "" {
		if archiveErr := archiveRecording(inst.Recorder().Session(), cfg.Persistence.ArchiveDSN, log); archiveErr != nil {
			log.WithError(archiveErr).Warn("failed to archive replay")
		}
	}
	return nil
}

// archiveRecording durably stores a completed battle's replay session
// via the optional pgx+goose backend (spec §6.4), used alongside the
// JSON replay file rather than instead of it.
func archiveRecording(session domain.ReplaySession, dsn string, log *logrus.Entry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := archive.NewDB(ctx, archive.Config{DSN: dsn}, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := archive.RunMigrations(ctx, db.Pool); err != nil {
		return err
	}

	id, err := archive.NewRepo(db).Save(ctx, session, time.Now())
	if err != nil {
		return err
	}
	log.WithField("archive_id", id).Info("battle archived")
	return nil
}

func replayPathFor(name string, seed int64) string {
	cfg := currentConfig()
	_ = os.MkdirAll(cfg.Persistence.ReplayDir, 0o755)
	return cfg.Persistence.ReplayDir + "/" + name + ".replay.json"
}
