package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/pfassina/grimdark/internal/domain"
)

func testLogger() *logrus.Entry {
	return logrus.NewEntry(logrus.New())
}

func TestNewEngineTreatsMissingDirAsEmpty(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "does-not-exist"), testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if e.HasFunction(domain.AIAggressive) {
		t.Fatal("expected no score function defined when directory is absent")
	}
}

func TestScoreCallsLoadedFunction(t *testing.T) {
	dir := t.TempDir()
	script := `
function score_opportunistic(ctx)
  if ctx.will_kill then
    return 100
  end
  return ctx.damage_max
end
`
	if err := os.WriteFile(filepath.Join(dir, "opportunistic.lua"), []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	e, err := NewEngine(dir, testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if !e.HasFunction(domain.AIOpportunistic) {
		t.Fatal("expected score_opportunistic to be loaded")
	}
	got := e.Score(domain.AIOpportunistic, CandidateContext{WillKill: true})
	if got != 100 {
		t.Fatalf("expected 100 for a kill shot, got %v", got)
	}
}
