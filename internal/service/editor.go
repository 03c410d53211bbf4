package service

import (
	"context"
	"fmt"
	"sync"

	"heatplan/internal/models"
	"heatplan/internal/timeline"
)

// EditorService keeps in-memory editing sessions, one per date. Changes are
// applied slot by slot against the session copy and only hit the database on
// Save, so an abandoned session leaves stored plans untouched.
type EditorService struct {
	mu       sync.Mutex
	sessions map[string]*editSession
	schedule Schedule
}

type editSession struct {
	plan    models.DayPlan
	history []models.DayPlan
}

func NewEditorService(schedule Schedule) *EditorService {
	return &EditorService{
		sessions: make(map[string]*editSession),
		schedule: schedule,
	}
}

// Open starts (or restarts) a session for one date from the stored plans.
func (s *EditorService) Open(ctx context.Context, date string) (models.DayPlan, error) {
	plan, err := s.schedule.DailyPlan(ctx, date)
	if err != nil {
		return models.DayPlan{}, err
	}
	s.mu.Lock()
	s.sessions[date] = &editSession{plan: clonePlan(plan)}
	s.mu.Unlock()
	return plan, nil
}

// ApplySlot validates one slot change, resolves any overlaps it causes and
// updates the session. The previous state is kept for Undo.
func (s *EditorService) ApplySlot(ctx context.Context, edit SlotEdit) (models.DayPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[edit.Date]
	if !ok {
		return models.DayPlan{}, fmt.Errorf("%w: %s", ErrNoSession, edit.Date)
	}
	roomIdx := -1
	for i, r := range sess.plan.Rooms {
		if r.RoomID == edit.RoomID {
			roomIdx = i
			break
		}
	}
	if roomIdx < 0 {
		return models.DayPlan{}, fmt.Errorf("%w: id %d", ErrUnknownRoom, edit.RoomID)
	}

	existing, err := models.TimelineSlots(sess.plan.Rooms[roomIdx].Slots)
	if err != nil {
		return models.DayPlan{}, fmt.Errorf("session slots for room %d: %w", edit.RoomID, err)
	}
	if edit.EditIndex != timeline.NoEdit && (edit.EditIndex < 0 || edit.EditIndex >= len(existing)) {
		return models.DayPlan{}, fmt.Errorf("%w: %d", ErrBadEditIndex, edit.EditIndex)
	}
	if v := timeline.ValidateSlot(edit.Start, edit.End, edit.Value, existing, edit.EditIndex); !v.OK() {
		return models.DayPlan{}, &ValidationError{Violations: v}
	}

	candidate := timeline.Slot{Start: edit.Start, End: edit.End, Value: timeline.Classify(edit.Value)}
	resolved := timeline.Resolve(candidate, existing, edit.EditIndex)
	if _, err := timeline.New(resolved); err != nil {
		return models.DayPlan{}, fmt.Errorf("resolved schedule is inconsistent: %w", err)
	}

	sess.history = append(sess.history, clonePlan(sess.plan))
	sess.plan.Rooms[roomIdx].Slots = models.SlotsFromTimeline(resolved)
	return clonePlan(sess.plan), nil
}

// Undo restores the session to its state before the last applied change.
func (s *EditorService) Undo(ctx context.Context, date string) (models.DayPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[date]
	if !ok {
		return models.DayPlan{}, fmt.Errorf("%w: %s", ErrNoSession, date)
	}
	if len(sess.history) == 0 {
		return models.DayPlan{}, ErrNothingToUndo
	}
	last := len(sess.history) - 1
	sess.plan = sess.history[last]
	sess.history = sess.history[:last]
	return clonePlan(sess.plan), nil
}

// Save persists every room of the session and clears the undo history.
func (s *EditorService) Save(ctx context.Context, date string) (SaveSummary, error) {
	s.mu.Lock()
	sess, ok := s.sessions[date]
	if !ok {
		s.mu.Unlock()
		return SaveSummary{}, fmt.Errorf("%w: %s", ErrNoSession, date)
	}
	inputs := make([]RoomDayPlanInput, 0, len(sess.plan.Rooms))
	for _, r := range sess.plan.Rooms {
		inputs = append(inputs, RoomDayPlanInput{RoomID: r.RoomID, Date: date, Slots: r.Slots})
	}
	s.mu.Unlock()

	sum, err := s.schedule.SavePlans(ctx, inputs)
	if err != nil {
		return sum, err
	}

	// reload so the session reflects what was actually stored
	plan, err := s.schedule.DailyPlan(ctx, date)
	if err != nil {
		return sum, err
	}
	s.mu.Lock()
	s.sessions[date] = &editSession{plan: clonePlan(plan)}
	s.mu.Unlock()
	return sum, nil
}

// Discard drops the session without touching stored plans.
func (s *EditorService) Discard(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[date]; !ok {
		return fmt.Errorf("%w: %s", ErrNoSession, date)
	}
	delete(s.sessions, date)
	return nil
}

func clonePlan(p models.DayPlan) models.DayPlan {
	out := models.DayPlan{Date: p.Date, Rooms: make([]models.RoomPlan, len(p.Rooms))}
	for i, r := range p.Rooms {
		slots := make([]models.Slot, len(r.Slots))
		copy(slots, r.Slots)
		out.Rooms[i] = models.RoomPlan{RoomID: r.RoomID, Name: r.Name, Slots: slots}
	}
	return out
}
