package availability

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/medagenda/internal/models"
)

type Slot struct {
	Start    time.Time `json:"inicio"`
	End      time.Time `json:"fim"`
	Location string    `json:"local"`
	WindowID uint      `json:"horario_id"`
}

func WeekdayName(d time.Weekday) string {
	return weekdays[int(d)]
}

func parseHM(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}

// ExpandSlots turns the windows that apply to date into concrete slots.
// A slot is dropped when it overlaps an active appointment, which occupies
// the session duration plus the buffer of the window it falls in.
func ExpandSlots(
	windows []models.AvailabilityWindow,
	date time.Time,
	booked []models.Appointment,
) []Slot {

	day := WeekdayName(date.Weekday())
	slots := []Slot{}

	for _, w := range windows {
		if w.Unavailable || w.Weekday != day {
			continue
		}

		duration := time.Duration(w.DurationMinutes) * time.Minute
		occupied := duration + time.Duration(w.BufferMinutes)*time.Minute

		for _, hm := range w.StartTimes {
			start, ok := parseHM(date, hm)
			if !ok {
				continue
			}
			end := start.Add(duration)

			conflict := false
			for _, ap := range booked {
				apStart := ap.ScheduledAt
				apEnd := apStart.Add(occupied)
				if start.Before(apEnd) && end.After(apStart) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, Slot{
					Start:    start,
					End:      end,
					Location: w.Location,
					WindowID: w.ID,
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}

// LongestOccupancy is the largest duration plus buffer among the bookable
// windows. An appointment starting that long before a day can still reach
// into it.
func LongestOccupancy(windows []models.AvailabilityWindow) time.Duration {
	var longest time.Duration
	for _, w := range windows {
		if w.Unavailable {
			continue
		}
		d := time.Duration(w.DurationMinutes+w.BufferMinutes) * time.Minute
		if d > longest {
			longest = d
		}
	}
	return longest
}

// MatchesWindow reports whether at is one of the published start times of an
// active window.
func MatchesWindow(windows []models.AvailabilityWindow, at time.Time) bool {
	day := WeekdayName(at.Weekday())
	hm := at.Format("15:04")

	for _, w := range windows {
		if w.Unavailable || w.Weekday != day {
			continue
		}
		for _, t := range w.StartTimes {
			if t == hm {
				return true
			}
		}
	}
	return false
}
