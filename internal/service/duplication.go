package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heatplan/internal/models"
	"heatplan/internal/repository"
)

const (
	DuplicateDays  = "day"
	DuplicateWeeks = "week"

	maxDuplicationDays = 365
)

var (
	ErrBadDuplicationType = errors.New(`duplication type must be "day" or "week"`)
	ErrNoRooms            = errors.New("at least one room is required")
	ErrNoWeekdays         = errors.New("at least one weekday is required")
	ErrUnknownWeekday     = errors.New("unknown weekday")
	ErrWindowOrder        = errors.New("the source date must come before the end of the repetition window")
	ErrWindowTooLong      = errors.New("the repetition window is limited to 365 days")
	ErrWindowTooShort     = errors.New("week duplication needs a window of at least 7 days")
)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// DuplicationService copies stored day plans onto future dates. Patterns are
// shared by id, so a duplication never rewrites slot payloads. Target dates
// that already have a plan are overwritten.
type DuplicationService struct {
	rooms    repository.RoomRepo
	patterns repository.PatternRepo
	plans    repository.PlanRepo
	events   repository.EventRepo
}

func NewDuplicationService(rooms repository.RoomRepo, patterns repository.PatternRepo, plans repository.PlanRepo, events repository.EventRepo) *DuplicationService {
	return &DuplicationService{rooms: rooms, patterns: patterns, plans: plans, events: events}
}

// Duplicate applies the source day to every generated target date and returns
// the number of day plans written.
func (s *DuplicationService) Duplicate(ctx context.Context, p DuplicationParams) (int, error) {
	source, err := parseDate(p.SourceDate)
	if err != nil {
		return 0, err
	}
	since, err := parseDate(p.RepeatSince)
	if err != nil {
		return 0, err
	}
	until, err := parseDate(p.RepeatUntil)
	if err != nil {
		return 0, err
	}
	if err := checkWindow(p.Type, source, until); err != nil {
		return 0, err
	}
	if len(p.RoomIDs) == 0 {
		return 0, ErrNoRooms
	}
	existing, err := s.rooms.ExistingIDs(ctx, p.RoomIDs)
	if err != nil {
		return 0, fmt.Errorf("check rooms: %w", err)
	}
	for _, id := range p.RoomIDs {
		if !existing[id] {
			return 0, fmt.Errorf("%w: id %d", ErrUnknownRoom, id)
		}
	}

	var dates []time.Time
	switch p.Type {
	case DuplicateDays:
		weekdays, err := parseWeekdays(p.Weekdays)
		if err != nil {
			return 0, err
		}
		dates = weekdayDates(since, until, weekdays)
	case DuplicateWeeks:
		dates = weeklyDates(source, since, until)
	default:
		return 0, ErrBadDuplicationType
	}

	written, err := s.copyDay(ctx, p.SourceDate, dates, p.RoomIDs)
	if err != nil {
		return written, err
	}
	if written > 0 {
		_ = s.events.Append(ctx, models.PlanEvent{
			Type:        models.EventPlanDuplicated,
			Description: fmt.Sprintf("plans of %s duplicated onto %d day(s)", p.SourceDate, len(dates)),
			Metadata: map[string]any{
				"source_date": p.SourceDate,
				"mode":        p.Type,
				"rooms":       len(p.RoomIDs),
				"written":     written,
			},
		})
	}
	return written, nil
}

func checkWindow(mode string, source, until time.Time) error {
	span := int(until.Sub(source).Hours() / 24)
	if span <= 0 {
		return ErrWindowOrder
	}
	if span > maxDuplicationDays {
		return ErrWindowTooLong
	}
	if mode == DuplicateWeeks && span < 7 {
		return ErrWindowTooShort
	}
	return nil
}

// parseWeekdays resolves and deduplicates weekday names; a name repeated in
// the request must not produce its target dates twice.
func parseWeekdays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return nil, ErrNoWeekdays
	}
	seen := make(map[time.Weekday]bool, len(names))
	out := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		wd, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, wd)
	}
	return out, nil
}

// weekdayDates lists every occurrence of the requested weekdays strictly
// after since, up to and including until.
func weekdayDates(since, until time.Time, weekdays []time.Weekday) []time.Time {
	var dates []time.Time
	first := since.AddDate(0, 0, 1)
	for _, wd := range weekdays {
		ahead := (int(wd) - int(first.Weekday()) + 7) % 7
		for d := first.AddDate(0, 0, ahead); !d.After(until); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}
	}
	return dates
}

// weeklyDates repeats the weekday of the source date week after week. The
// first target is the earliest same-weekday date after both source and since.
func weeklyDates(source, since, until time.Time) []time.Time {
	var dates []time.Time
	for d := source.AddDate(0, 0, 7); !d.After(until); d = d.AddDate(0, 0, 7) {
		if d.Before(since) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func (s *DuplicationService) copyDay(ctx context.Context, sourceDate string, dates []time.Time, roomIDs []int64) (int, error) {
	sourcePlans, err := s.plans.ListByDate(ctx, sourceDate)
	if err != nil {
		return 0, fmt.Errorf("load source plans: %w", err)
	}

	// rooms without a plan on the source day get the empty pattern, so
	// duplicating an unplanned room clears its targets too
	patternByRoom := make(map[int64]int64, len(roomIDs))
	var emptyID int64 = -1
	for _, id := range roomIDs {
		if pid, ok := sourcePlans[id]; ok {
			patternByRoom[id] = pid
			continue
		}
		if emptyID < 0 {
			empty, _, err := s.patterns.GetOrCreate(ctx, []models.Slot{})
			if err != nil {
				return 0, fmt.Errorf("store empty pattern: %w", err)
			}
			emptyID = empty.ID
		}
		patternByRoom[id] = emptyID
	}

	written := 0
	for _, d := range dates {
		date := d.Format(dateLayout)
		for _, id := range roomIDs {
			result, err := s.plans.Upsert(ctx, id, date, patternByRoom[id])
			if err != nil {
				return written, fmt.Errorf("copy plan to %s: %w", date, err)
			}
			if result != repository.PlanUnchanged {
				written++
			}
		}
	}
	return written, nil
}
