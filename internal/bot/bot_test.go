package bot

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestCalculator_ChooseMove_RecordsSearchMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	c := NewCalculator(NewDefaultEngine())
	b := board(t, "----X----")

	cell, err := c.ChooseMove(context.Background(), &b)
	if err != nil {
		t.Fatalf("ChooseMove failed: %v", err)
	}
	if cell != 0 {
		t.Errorf("expected corner 0, got %d", cell)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
		}
	}
	for _, name := range []string{"bot.search.nodes", "bot.search.duration"} {
		if !found[name] {
			t.Errorf("expected metric %s to be recorded, got %v", name, found)
		}
	}
}

func TestCalculator_ChooseMove_RejectsDecidedBoard(t *testing.T) {
	c := NewCalculator(NewDefaultEngine())
	b := board(t, "XXXOO----")

	cell, err := c.ChooseMove(context.Background(), &b)
	if err != ErrInvalidCallerState {
		t.Fatalf("expected ErrInvalidCallerState, got %v", err)
	}
	if cell != -1 {
		t.Errorf("expected -1, got %d", cell)
	}
}

func TestCalculator_MatchesEngine(t *testing.T) {
	e := NewDefaultEngine()
	c := NewCalculator(e)
	for _, s := range []string{"X--------", "XX--O----", "X-X-O----"} {
		b1 := board(t, s)
		b2 := b1
		want, _ := e.ChooseMove(&b1)
		got, err := c.ChooseMove(context.Background(), &b2)
		if err != nil || got != want {
			t.Errorf("Calculator.ChooseMove(%s) = %d, %v; engine chose %d", s, got, err, want)
		}
	}
}
