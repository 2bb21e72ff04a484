package planner

import (
	"sort"
	"time"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
)

// daySlot is a default start time for a task occurrence, in minutes
// after local midnight.
type daySlot struct {
	startMinute int
}

// weekSlot pins a weekly task to a day of the week and a start time.
type weekSlot struct {
	weekday     time.Weekday
	startMinute int
}

// Slot policy tables. The mapping from category to time window is an
// explicit, exhaustively testable table rather than keyword matching on
// task names.
var (
	// dailySlots places each daily occurrence within its day.
	dailySlots = map[domain.Category]daySlot{
		domain.CategoryKitchen:   {startMinute: 7 * 60},         // early morning
		domain.CategoryPets:      {startMinute: 8 * 60},         // after breakfast
		domain.CategoryChildcare: {startMinute: 16*60 + 30},     // late afternoon pickup
		domain.CategoryOutdoor:   {startMinute: 17 * 60},        // before dinner
		domain.CategoryOther:     {startMinute: defaultEvening}, // evening slot
	}

	// weeklySlots places each weekly occurrence on a day of the week.
	weeklySlots = map[domain.Category]weekSlot{
		domain.CategoryLaundry: {weekday: time.Saturday, startMinute: 10 * 60}, // weekend morning
		domain.CategoryErrands: {weekday: time.Saturday, startMinute: 11 * 60},
		domain.CategoryAdmin:   {weekday: time.Sunday, startMinute: 20 * 60}, // sunday evening
	}

	// defaultWeekly is the midweek evening fallback for weekly tasks
	// whose category has no dedicated slot.
	defaultWeekly = weekSlot{weekday: time.Wednesday, startMinute: 19 * 60}
)

// defaultEvening is the fallback start for daily tasks without a
// dedicated slot.
const defaultEvening = 18*60 + 30

// monthlyStartMinute is where monthly occurrences land within their day.
const monthlyStartMinute = 10 * 60

// ExpandWeek turns recurring task definitions into concrete, dated,
// time-boxed occurrences for the 7-day window starting at weekStart.
//
// Malformed task records are skipped rather than aborting the run, and
// unrecognized frequencies produce no occurrences. The output is sorted
// by (date, start time, task ID) and then capped at
// params.MaxOccurrences, so the cap drops the latest occurrences; that
// ordering is a precondition for idempotent scheduling, not a cosmetic
// choice.
func ExpandWeek(
	tasks []domain.TaskDefinition,
	weekStart domain.Date,
	params *Params,
) []domain.Occurrence {
	occurrences := make([]domain.Occurrence, 0, len(tasks))

	for i := range tasks {
		task := &tasks[i]
		if err := task.Validate(); err != nil {
			// Input errors skip the record, never the run.
			continue
		}

		switch task.Frequency {
		case domain.FrequencyDaily:
			for day := 0; day < 7; day++ {
				date := weekStart.AddDays(day)
				occurrences = append(occurrences, newOccurrence(task, date, dailyStart(task.Category)))
			}

		case domain.FrequencyWeekly:
			slot, ok := weeklySlots[task.Category]
			if !ok {
				slot = defaultWeekly
			}
			date := dateOfWeekday(weekStart, slot.weekday)
			occurrences = append(occurrences, newOccurrence(task, date, slot.startMinute))

		case domain.FrequencyMonthly:
			date, ok := monthlyDate(weekStart)
			if !ok {
				continue
			}
			occurrences = append(occurrences, newOccurrence(task, date, monthlyStartMinute))

		default:
			// Unrecognized frequencies are silently skipped.
		}
	}

	// Sort before capping so the cap keeps the earliest occurrences in
	// the documented ordering, not whichever tasks came first in the
	// input slice.
	sortOccurrences(occurrences)
	if len(occurrences) > params.MaxOccurrences {
		occurrences = occurrences[:params.MaxOccurrences]
	}

	return occurrences
}

// newOccurrence builds an unassigned occurrence for a task on a date.
// The occurrence ID is derived from the task ID and date so identical
// inputs always yield identical IDs.
func newOccurrence(task *domain.TaskDefinition, date domain.Date, startMinute int) domain.Occurrence {
	end := startMinute + task.DurationMinutes
	if end > 24*60 {
		end = 24 * 60
		startMinute = end - task.DurationMinutes
		if startMinute < 0 {
			// A duration longer than a full day fills the day; the
			// window must stay within [0, 1440).
			startMinute = 0
		}
	}

	return domain.Occurrence{
		ID:              task.ID.String() + ":" + date.String(),
		TaskID:          task.ID,
		TaskName:        task.Name,
		Category:        task.Category,
		Date:            date,
		StartMinute:     startMinute,
		EndMinute:       end,
		DurationMinutes: task.DurationMinutes,
		Difficulty:      task.Difficulty,
		Tags:            task.Tags,
		PairGroup:       task.PairGroup,
		Status:          domain.OccurrenceStatusUnassigned,
	}
}

// dailyStart returns the slot-policy start minute for a daily task.
func dailyStart(category domain.Category) int {
	if slot, ok := dailySlots[category]; ok {
		return slot.startMinute
	}
	return defaultEvening
}

// dateOfWeekday returns the unique date within the 7-day window starting
// at weekStart that falls on the given weekday.
func dateOfWeekday(weekStart domain.Date, weekday time.Weekday) domain.Date {
	offset := (int(weekday) - int(weekStart.Weekday()) + 7) % 7
	return weekStart.AddDays(offset)
}

// monthlyDate decides whether and where a monthly task lands in the
// window. Monthly tasks only run in the week containing the 1st-7th of
// the month and are placed as close to day 7 as the window allows.
func monthlyDate(weekStart domain.Date) (domain.Date, bool) {
	best := domain.Date{}
	found := false

	for day := 0; day < 7; day++ {
		date := weekStart.AddDays(day)
		if date.Day >= 1 && date.Day <= 7 {
			if !found || date.Day > best.Day {
				best = date
				found = true
			}
		}
	}

	return best, found
}

// sortOccurrences orders occurrences by (date, start time, task ID) for
// deterministic scheduling input.
func sortOccurrences(occurrences []domain.Occurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := &occurrences[i], &occurrences[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		return a.TaskID.String() < b.TaskID.String()
	})
}
