package planner

import (
	"fmt"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"

	"github.com/google/uuid"
)

// Fixed IDs keep orderings and assignments reproducible across test runs.
func testUUID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

// monday is a week start used throughout the tests (Monday 2025-06-02).
var monday = domain.NewDate(2025, time.June, 2)

func testTask(n int, name string, category domain.Category, duration, difficulty int, frequency domain.Frequency) domain.TaskDefinition {
	return domain.TaskDefinition{
		ID:              testUUID(n),
		Name:            name,
		Category:        category,
		DurationMinutes: duration,
		Difficulty:      difficulty,
		Frequency:       frequency,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
}

func testPerson(n int, name string, budget int) domain.Person {
	return domain.Person{
		ID:                  testUUID(100 + n),
		DisplayName:         name,
		WeeklyBudgetMinutes: budget,
		CreatedAt:           time.Now().UTC(),
		UpdatedAt:           time.Now().UTC(),
	}
}

// blockedAllWeek returns unavailability windows covering every minute of
// every day.
func blockedAllWeek() []domain.UnavailabilityWindow {
	windows := make([]domain.UnavailabilityWindow, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		windows = append(windows, domain.UnavailabilityWindow{
			Weekday:     wd,
			StartMinute: 0,
			EndMinute:   24 * 60,
		})
	}
	return windows
}

// countByAssignee tallies assigned occurrences per person ID string.
func countByAssignee(occurrences []domain.Occurrence) map[string]int {
	counts := make(map[string]int)
	for i := range occurrences {
		if occurrences[i].Status == domain.OccurrenceStatusAssigned {
			counts[occurrences[i].AssigneeID.String()]++
		}
	}
	return counts
}
