package service

import (
	"context"
	"fmt"
	"time"

	"heatplan/internal/models"
	"heatplan/internal/repository"
	"heatplan/internal/timeline"
)

// ScheduleService loads and persists room day plans. Slot lists are stored
// as deduplicated patterns, so saving the same schedule twice writes one row.
type ScheduleService struct {
	rooms    repository.RoomRepo
	patterns repository.PatternRepo
	plans    repository.PlanRepo
	events   repository.EventRepo
}

func NewScheduleService(rooms repository.RoomRepo, patterns repository.PatternRepo, plans repository.PlanRepo, events repository.EventRepo) *ScheduleService {
	return &ScheduleService{rooms: rooms, patterns: patterns, plans: plans, events: events}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// DailyPlan returns the schedule of every room for one date. Rooms without a
// stored plan appear with an empty slot list.
func (s *ScheduleService) DailyPlan(ctx context.Context, date string) (models.DayPlan, error) {
	if _, err := parseDate(date); err != nil {
		return models.DayPlan{}, err
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return models.DayPlan{}, fmt.Errorf("list rooms: %w", err)
	}
	planned, err := s.plans.ListByDate(ctx, date)
	if err != nil {
		return models.DayPlan{}, fmt.Errorf("list plans for %s: %w", date, err)
	}

	plan := models.DayPlan{Date: date, Rooms: make([]models.RoomPlan, 0, len(rooms))}
	for _, room := range rooms {
		slots := []models.Slot{}
		if patternID, ok := planned[room.ID]; ok {
			slots, err = s.patterns.SlotsByID(ctx, patternID)
			if err != nil {
				return models.DayPlan{}, fmt.Errorf("load pattern for room %d: %w", room.ID, err)
			}
		}
		plan.Rooms = append(plan.Rooms, models.RoomPlan{RoomID: room.ID, Name: room.Name, Slots: slots})
	}
	return plan, nil
}

// SavePlans validates and stores a batch of room day plans. Every slot list
// is re-checked server side before it reaches the database.
func (s *ScheduleService) SavePlans(ctx context.Context, plans []RoomDayPlanInput) (SaveSummary, error) {
	var sum SaveSummary
	if len(plans) == 0 {
		return sum, nil
	}

	ids := make([]int64, 0, len(plans))
	seen := map[int64]bool{}
	for _, p := range plans {
		if !seen[p.RoomID] {
			seen[p.RoomID] = true
			ids = append(ids, p.RoomID)
		}
	}
	existing, err := s.rooms.ExistingIDs(ctx, ids)
	if err != nil {
		return sum, fmt.Errorf("check rooms: %w", err)
	}
	for _, id := range ids {
		if !existing[id] {
			return sum, fmt.Errorf("%w: id %d", ErrUnknownRoom, id)
		}
	}

	for _, p := range plans {
		if _, err := parseDate(p.Date); err != nil {
			return sum, err
		}
		normalized, err := normalizeSlots(p.Slots)
		if err != nil {
			return sum, fmt.Errorf("room %d on %s: %w", p.RoomID, p.Date, err)
		}
		ref, _, err := s.patterns.GetOrCreate(ctx, normalized)
		if err != nil {
			return sum, fmt.Errorf("store pattern: %w", err)
		}
		result, err := s.plans.Upsert(ctx, p.RoomID, p.Date, ref.ID)
		if err != nil {
			return sum, fmt.Errorf("store plan: %w", err)
		}
		switch result {
		case repository.PlanCreated:
			sum.Created++
		case repository.PlanUpdated:
			sum.Updated++
		}
	}

	if sum.Created+sum.Updated > 0 {
		_ = s.events.Append(ctx, models.PlanEvent{
			Type:        models.EventPlanSaved,
			Description: fmt.Sprintf("%d heating plan(s) saved", sum.Created+sum.Updated),
			Metadata:    map[string]any{"created": sum.Created, "updated": sum.Updated},
		})
	}
	return sum, nil
}

// normalizeSlots runs a slot list through the schedule constructor so broken
// payloads never get persisted, and returns the slots sorted by start time.
func normalizeSlots(slots []models.Slot) ([]models.Slot, error) {
	ts, err := models.TimelineSlots(slots)
	if err != nil {
		return nil, err
	}
	sched, err := timeline.New(ts)
	if err != nil {
		return nil, err
	}
	for _, s := range sched.Slots() {
		if s.Value.Kind() != timeline.KindTemperature {
			continue
		}
		if sp := s.Value.Setpoint(); sp < timeline.MinSetpointC || sp > timeline.MaxSetpointC {
			return nil, fmt.Errorf("%w: setpoint %g outside %g-%g", timeline.ErrInvalidValue,
				sp, timeline.MinSetpointC, timeline.MaxSetpointC)
		}
	}
	return models.SlotsFromTimeline(sched.Slots()), nil
}
