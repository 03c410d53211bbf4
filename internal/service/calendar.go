package service

import (
	"context"
	"fmt"
	"time"

	"heatplan/internal/models"
	"heatplan/internal/repository"
)

// CalendarService builds the month overview. A day counts as "different"
// when its set of pattern hashes does not match the same weekday one week
// earlier, so a glance at the grid shows where the routine was broken.
type CalendarService struct {
	plans repository.PlanRepo
}

func NewCalendarService(plans repository.PlanRepo) *CalendarService {
	return &CalendarService{plans: plans}
}

// Month returns a Monday-first grid padded to full weeks around the
// requested month.
func (s *CalendarService) Month(ctx context.Context, year, month int) (models.HeatingCalendar, error) {
	if month < 1 || month > 12 {
		return models.HeatingCalendar{}, fmt.Errorf("month out of range: %d", month)
	}
	if year < 1 {
		return models.HeatingCalendar{}, fmt.Errorf("year out of range: %d", year)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	gridStart := first
	for gridStart.Weekday() != time.Monday {
		gridStart = gridStart.AddDate(0, 0, -1)
	}
	gridEnd := first.AddDate(0, 1, -1)
	for gridEnd.Weekday() != time.Sunday {
		gridEnd = gridEnd.AddDate(0, 0, 1)
	}

	// one extra week back so the first grid row has something to compare to
	hashes, err := s.plans.HashesByDateRange(ctx,
		gridStart.AddDate(0, 0, -7).Format(dateLayout), gridEnd.Format(dateLayout))
	if err != nil {
		return models.HeatingCalendar{}, fmt.Errorf("load plan hashes: %w", err)
	}
	byDate := map[string]map[string]bool{}
	for _, dh := range hashes {
		set, ok := byDate[dh.Date]
		if !ok {
			set = map[string]bool{}
			byDate[dh.Date] = set
		}
		set[dh.Hash] = true
	}

	cal := models.HeatingCalendar{
		Year:  year,
		Month: month,
		Today: time.Now().Format(dateLayout),
	}
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		status := models.DayEmpty
		if set, ok := byDate[date]; ok {
			if hashSetsEqual(set, byDate[d.AddDate(0, 0, -7).Format(dateLayout)]) {
				status = models.DayNormal
			} else {
				status = models.DayDifferent
			}
		}
		cal.Days = append(cal.Days, models.CalendarDay{Date: date, Status: status})
	}
	return cal, nil
}

func hashSetsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for h := range a {
		if !b[h] {
			return false
		}
	}
	return true
}
