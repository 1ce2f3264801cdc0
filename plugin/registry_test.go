package plugin

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/xraph/dbmanager/condition"
)

// testPlugin implements Plugin + ConditionSaved + BackendProbed.
type testPlugin struct {
	conditionSavedCalled bool
	probed               map[string]error
}

func (t *testPlugin) Name() string { return "test-plugin" }

func (t *testPlugin) OnConditionSaved(_ context.Context, _ *condition.Condition) error {
	t.conditionSavedCalled = true
	return nil
}

func (t *testPlugin) OnBackendProbed(_ context.Context, backend string, err error) error {
	if t.probed == nil {
		t.probed = make(map[string]error)
	}
	t.probed[backend] = err
	return nil
}

// minimalPlugin only implements Plugin (no hooks).
type minimalPlugin struct{}

func (m *minimalPlugin) Name() string { return "minimal" }

// failingPlugin returns an error from its shutdown hook.
type failingPlugin struct{}

func (f *failingPlugin) Name() string                     { return "failing" }
func (f *failingPlugin) OnShutdown(context.Context) error { return errors.New("boom") }

func TestRegistryDispatch(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(slog.Default())

	tp := &testPlugin{}
	reg.Register(tp)
	reg.Register(&minimalPlugin{})

	if len(reg.Plugins()) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(reg.Plugins()))
	}

	reg.EmitConditionSaved(ctx, &condition.Condition{ID: "cond_1"})
	if !tp.conditionSavedCalled {
		t.Fatal("OnConditionSaved was not called")
	}

	probeErr := errors.New("refused")
	reg.EmitBackendProbed(ctx, "Redis", nil)
	reg.EmitBackendProbed(ctx, "ConfigurationDB", probeErr)
	if tp.probed["Redis"] != nil || !errors.Is(tp.probed["ConfigurationDB"], probeErr) {
		t.Fatalf("unexpected probe notifications: %v", tp.probed)
	}

	// Should not panic on hooks with no listeners.
	reg.EmitEdgeSaved(ctx, &condition.Edge{})
	reg.EmitEdgeExpiryUpdated(ctx, condition.GovernedAsDebtorBy, "edge_1", time.Now())
	reg.EmitConditionExpiryUpdated(ctx, "cond_1", time.Now())
	reg.EmitShutdown(ctx)
}

func TestRegistryLogsHookErrors(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry(slog.New(slog.NewTextHandler(&buf, nil)))
	reg.Register(&failingPlugin{})

	reg.EmitShutdown(context.Background())

	out := buf.String()
	if !strings.Contains(out, "plugin hook error") || !strings.Contains(out, "plugin=failing") {
		t.Fatalf("expected hook error to be logged, got %q", out)
	}
}
