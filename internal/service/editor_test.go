package service

import (
	"context"
	"errors"
	"testing"

	"heatplan/internal/models"
	"heatplan/internal/timeline"
)

func editorFixture(rooms ...models.Room) (*EditorService, *fakePlanRepo, *fakePatternRepo) {
	patterns := newFakePatternRepo()
	plans := newFakePlanRepo(patterns)
	events := &capturingEventRepo{}
	sched := NewScheduleService(newFakeRoomRepo(rooms...), patterns, plans, events)
	return NewEditorService(sched), plans, patterns
}

func roomSlots(t *testing.T, plan models.DayPlan, roomID int64) []models.Slot {
	t.Helper()
	for _, r := range plan.Rooms {
		if r.RoomID == roomID {
			return r.Slots
		}
	}
	t.Fatalf("room %d not in plan", roomID)
	return nil
}

func TestEditorService_ApplySlot_RequiresOpenSession(t *testing.T) {
	svc, _, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})

	_, err := svc.ApplySlot(context.Background(), SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 480, Value: "21", EditIndex: timeline.NoEdit,
	})
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestEditorService_ApplySlot_AddsSlotWithoutTouchingStorage(t *testing.T) {
	svc, plans, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})
	ctx := context.Background()

	if _, err := svc.Open(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	plan, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 480, Value: "21", EditIndex: timeline.NoEdit,
	})
	if err != nil {
		t.Fatalf("ApplySlot: %v", err)
	}
	slots := roomSlots(t, plan, 1)
	if len(slots) != 1 || slots[0].Start != "06:00" || slots[0].End != "08:00" {
		t.Fatalf("unexpected session slots: %+v", slots)
	}
	if len(plans.plans) != 0 {
		t.Fatalf("stored plans must stay untouched before Save, got %+v", plans.plans)
	}
}

func TestEditorService_ApplySlot_InvalidSlotReturnsViolations(t *testing.T) {
	svc, _, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})
	ctx := context.Background()

	if _, err := svc.Open(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 370, Value: "nonsense", EditIndex: timeline.NoEdit,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations.Time) == 0 || len(verr.Violations.Value) == 0 {
		t.Fatalf("expected both time and value violations, got %+v", verr.Violations)
	}
}

func TestEditorService_ApplySlot_ResolvesOverlapWithSplit(t *testing.T) {
	svc, _, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})
	ctx := context.Background()

	if _, err := svc.Open(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 600, Value: "20", EditIndex: timeline.NoEdit,
	}); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	plan, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 420, End: 480, Value: "22", EditIndex: timeline.NoEdit,
	})
	if err != nil {
		t.Fatalf("ApplySlot: %v", err)
	}
	slots := roomSlots(t, plan, 1)
	if len(slots) != 3 {
		t.Fatalf("expected split into 3 slots, got %+v", slots)
	}
	wantBounds := [][2]string{{"06:00", "06:59"}, {"07:00", "08:00"}, {"08:01", "10:00"}}
	for i, want := range wantBounds {
		if slots[i].Start != want[0] || slots[i].End != want[1] {
			t.Fatalf("slot %d: got %s-%s, want %s-%s", i, slots[i].Start, slots[i].End, want[0], want[1])
		}
	}
}

func TestEditorService_ApplySlot_EditIndexReplacesSlot(t *testing.T) {
	svc, _, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})
	ctx := context.Background()

	if _, err := svc.Open(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 480, Value: "20", EditIndex: timeline.NoEdit,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	plan, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 540, Value: "22", EditIndex: 0,
	})
	if err != nil {
		t.Fatalf("ApplySlot: %v", err)
	}
	slots := roomSlots(t, plan, 1)
	if len(slots) != 1 || slots[0].End != "09:00" || slots[0].Value != 22.0 {
		t.Fatalf("edited slot should replace the original, got %+v", slots)
	}
}

func TestEditorService_ApplySlot_EditIndexOutOfRange(t *testing.T) {
	svc, _, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})
	ctx := context.Background()

	if _, err := svc.Open(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 480, Value: "21", EditIndex: 3,
	})
	if !errors.Is(err, ErrBadEditIndex) {
		t.Fatalf("expected ErrBadEditIndex, got %v", err)
	}
}

func TestEditorService_UndoRestoresPreviousState(t *testing.T) {
	svc, _, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})
	ctx := context.Background()

	if _, err := svc.Open(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 480, Value: "21", EditIndex: timeline.NoEdit,
	}); err != nil {
		t.Fatalf("ApplySlot: %v", err)
	}
	plan, err := svc.Undo(ctx, "2026-01-05")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(roomSlots(t, plan, 1)) != 0 {
		t.Fatalf("undo should restore the empty day")
	}
	if _, err := svc.Undo(ctx, "2026-01-05"); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestEditorService_SavePersistsAndResetsHistory(t *testing.T) {
	svc, plans, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})
	ctx := context.Background()

	if _, err := svc.Open(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := svc.ApplySlot(ctx, SlotEdit{
		Date: "2026-01-05", RoomID: 1, Start: 360, End: 480, Value: "21", EditIndex: timeline.NoEdit,
	}); err != nil {
		t.Fatalf("ApplySlot: %v", err)
	}
	sum, err := svc.Save(ctx, "2026-01-05")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if sum.Created != 1 {
		t.Fatalf("expected 1 created plan, got %+v", sum)
	}
	if _, ok := plans.plans["2026-01-05"][1]; !ok {
		t.Fatalf("plan should be stored after Save")
	}
	if _, err := svc.Undo(ctx, "2026-01-05"); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("history should be cleared after Save, got %v", err)
	}
}

func TestEditorService_Discard(t *testing.T) {
	svc, _, _ := editorFixture(models.Room{ID: 1, Name: "Living room"})
	ctx := context.Background()

	if _, err := svc.Open(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := svc.Discard(ctx, "2026-01-05"); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if err := svc.Discard(ctx, "2026-01-05"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession on second discard, got %v", err)
	}
}
