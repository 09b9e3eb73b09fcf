package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestSimulationService_Run_Deterministic(t *testing.T) {
	t.Parallel()

	svc := NewSimulationService(nil)
	input := SimulationInput{Seasons: 2, UsersPerSeason: 20, EventsPer: 6, Seed: 42}

	first, err := svc.Run(context.Background(), input)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.Run(context.Background(), input)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.RollupsRun != second.RollupsRun || first.Anomalies != second.Anomalies || first.IntegrityScore != second.IntegrityScore {
		t.Fatalf("same seed must reproduce the report: %+v vs %+v", first, second)
	}
	if first.RollupsRun != 40 {
		t.Fatalf("expected one rollup per user per season, got %d", first.RollupsRun)
	}
}

func TestSimulationService_Run_CleanEngineScoresFull(t *testing.T) {
	t.Parallel()

	svc := NewSimulationService(nil)
	report, err := svc.Run(context.Background(), SimulationInput{Seasons: 1, UsersPerSeason: 10, EventsPer: 4, Seed: 7})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Anomalies != 0 || report.IntegrityScore != 100 {
		t.Fatalf("synthetic seasons must pass every sanity check, got %+v", report)
	}
}

func TestSimulationService_Run_AppliesDefaults(t *testing.T) {
	t.Parallel()

	svc := NewSimulationService(nil)
	report, err := svc.Run(context.Background(), SimulationInput{Seed: 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Seasons != 3 || report.UsersPerSeason != 50 || report.EventsPer != 24 {
		t.Fatalf("expected default dimensions, got %+v", report)
	}
}

func TestSimulationService_Run_RejectsOversizedInput(t *testing.T) {
	t.Parallel()

	svc := NewSimulationService(nil)
	if _, err := svc.Run(context.Background(), SimulationInput{Seasons: 101}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Run(context.Background(), SimulationInput{UsersPerSeason: 5001}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
