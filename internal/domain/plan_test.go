package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewPlan(t *testing.T) {
	t.Parallel() // Enable parallel execution
	weekStart := NewDate(2025, time.June, 2)
	occ := validOccurrence()
	report := FairnessReport{Score: 90, Band: FairnessBandGood}

	plan, err := NewPlan(weekStart, "key-1", false, []Occurrence{occ}, report)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if plan.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if plan.WeekStart != weekStart {
		t.Errorf("Expected week start %s, got %s", weekStart, plan.WeekStart)
	}
	if plan.IdempotencyKey != "key-1" {
		t.Errorf("Expected idempotency key %q, got %q", "key-1", plan.IdempotencyKey)
	}
	if plan.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test zero week start
	_, err = NewPlan(Date{}, "key-1", false, nil, report)
	if err != ErrPlanWeekStartZero {
		t.Errorf("Expected error %v, got %v", ErrPlanWeekStartZero, err)
	}

	// Test invalid contained occurrence
	bad := occ
	bad.ID = ""
	_, err = NewPlan(weekStart, "key-1", false, []Occurrence{bad}, report)
	if err != ErrOccurrenceIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrOccurrenceIDEmpty, err)
	}
}

func TestPlanValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validPlan := Plan{
		ID:        uuid.New(),
		WeekStart: NewDate(2025, time.June, 2),
	}

	if err := validPlan.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidPlan := validPlan
	invalidPlan.ID = uuid.Nil
	if err := invalidPlan.Validate(); err != ErrPlanIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrPlanIDEmpty, err)
	}

	invalidPlan = validPlan
	invalidPlan.WeekStart = Date{}
	if err := invalidPlan.Validate(); err != ErrPlanWeekStartZero {
		t.Errorf("Expected error %v, got %v", ErrPlanWeekStartZero, err)
	}
}
