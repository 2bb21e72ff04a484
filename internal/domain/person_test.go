package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewPerson(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid person creation
	person, err := NewPerson("Alex", 300)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if person.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if person.DisplayName != "Alex" {
		t.Errorf("Expected display name %q, got %q", "Alex", person.DisplayName)
	}

	if person.WeeklyBudgetMinutes != 300 {
		t.Errorf("Expected budget 300, got %d", person.WeeklyBudgetMinutes)
	}

	if person.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test empty display name
	_, err = NewPerson("", 300)
	if err != ErrPersonNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrPersonNameEmpty, err)
	}

	// Test non-positive budget
	_, err = NewPerson("Alex", 0)
	if err != ErrPersonBudgetInvalid {
		t.Errorf("Expected error %v, got %v", ErrPersonBudgetInvalid, err)
	}
}

func TestPersonValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validPerson := Person{
		ID:                  uuid.New(),
		DisplayName:         "Alex",
		WeeklyBudgetMinutes: 300,
		Unavailability: []UnavailabilityWindow{
			{Weekday: time.Monday, StartMinute: 18 * 60, EndMinute: 20 * 60},
		},
	}

	// Test valid person
	if err := validPerson.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidPerson := validPerson
	invalidPerson.ID = uuid.Nil
	if err := invalidPerson.Validate(); err != ErrPersonIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrPersonIDEmpty, err)
	}

	// Test negative budget
	invalidPerson = validPerson
	invalidPerson.WeeklyBudgetMinutes = -60
	if err := invalidPerson.Validate(); err != ErrPersonBudgetInvalid {
		t.Errorf("Expected error %v, got %v", ErrPersonBudgetInvalid, err)
	}

	// Test malformed unavailability window
	invalidPerson = validPerson
	invalidPerson.Unavailability = []UnavailabilityWindow{
		{Weekday: time.Monday, StartMinute: 20 * 60, EndMinute: 18 * 60},
	}
	if err := invalidPerson.Validate(); err != ErrUnavailabilityInvalid {
		t.Errorf("Expected error %v, got %v", ErrUnavailabilityInvalid, err)
	}
}

func TestUnavailabilityWindowValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name    string
		window  UnavailabilityWindow
		wantErr bool
	}{
		{
			name:   "evening block",
			window: UnavailabilityWindow{Weekday: time.Tuesday, StartMinute: 18 * 60, EndMinute: 21 * 60},
		},
		{
			name:   "full day",
			window: UnavailabilityWindow{Weekday: time.Saturday, StartMinute: 0, EndMinute: 24 * 60},
		},
		{
			name:    "negative start",
			window:  UnavailabilityWindow{Weekday: time.Monday, StartMinute: -1, EndMinute: 60},
			wantErr: true,
		},
		{
			name:    "end past midnight",
			window:  UnavailabilityWindow{Weekday: time.Monday, StartMinute: 23 * 60, EndMinute: 25 * 60},
			wantErr: true,
		},
		{
			name:    "empty window",
			window:  UnavailabilityWindow{Weekday: time.Monday, StartMinute: 600, EndMinute: 600},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.window.Validate()
			if tc.wantErr && err != ErrUnavailabilityInvalid {
				t.Errorf("Expected error %v, got %v", ErrUnavailabilityInvalid, err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
