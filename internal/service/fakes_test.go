package service

import (
	"context"
	"fmt"
	"time"

	"heatplan/internal/models"
	"heatplan/internal/repository"
)

// In-memory fakes for the repository interfaces, shared by the service tests.

type heatingWrite struct {
	state    string
	setpoint *float64
}

type fakeRoomRepo struct {
	rooms   []models.Room
	writes  map[int64]heatingWrite
	listErr error
}

func newFakeRoomRepo(rooms ...models.Room) *fakeRoomRepo {
	return &fakeRoomRepo{rooms: rooms, writes: map[int64]heatingWrite{}}
}

func (f *fakeRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Room, len(f.rooms))
	copy(out, f.rooms)
	return out, nil
}

func (f *fakeRoomRepo) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	known := map[int64]bool{}
	for _, r := range f.rooms {
		known[r.ID] = true
	}
	out := map[int64]bool{}
	for _, id := range ids {
		if known[id] {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) SetHeatingState(ctx context.Context, roomID int64, state string, setpointC *float64) error {
	f.writes[roomID] = heatingWrite{state: state, setpoint: setpointC}
	return nil
}

type fakePatternRepo struct {
	byHash map[string]int64
	slots  map[int64][]models.Slot
	nextID int64
}

func newFakePatternRepo() *fakePatternRepo {
	return &fakePatternRepo{byHash: map[string]int64{}, slots: map[int64][]models.Slot{}, nextID: 1}
}

func (f *fakePatternRepo) GetOrCreate(ctx context.Context, slots []models.Slot) (repository.PatternRef, bool, error) {
	hash, err := repository.PatternHash(slots)
	if err != nil {
		return repository.PatternRef{}, false, err
	}
	if id, ok := f.byHash[hash]; ok {
		return repository.PatternRef{ID: id, Hash: hash}, false, nil
	}
	id := f.nextID
	f.nextID++
	f.byHash[hash] = id
	f.slots[id] = slots
	return repository.PatternRef{ID: id, Hash: hash}, true, nil
}

func (f *fakePatternRepo) SlotsByID(ctx context.Context, id int64) ([]models.Slot, error) {
	slots, ok := f.slots[id]
	if !ok {
		return nil, fmt.Errorf("pattern %d not found", id)
	}
	return slots, nil
}

func (f *fakePatternRepo) hashOf(id int64) string {
	for h, pid := range f.byHash {
		if pid == id {
			return h
		}
	}
	return ""
}

type fakePlanRepo struct {
	plans    map[string]map[int64]int64 // date -> room id -> pattern id
	patterns *fakePatternRepo
	upserts  int
}

func newFakePlanRepo(patterns *fakePatternRepo) *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]map[int64]int64{}, patterns: patterns}
}

func (f *fakePlanRepo) Upsert(ctx context.Context, roomID int64, date string, patternID int64) (repository.UpsertResult, error) {
	f.upserts++
	day, ok := f.plans[date]
	if !ok {
		day = map[int64]int64{}
		f.plans[date] = day
	}
	current, exists := day[roomID]
	if exists && current == patternID {
		return repository.PlanUnchanged, nil
	}
	day[roomID] = patternID
	if exists {
		return repository.PlanUpdated, nil
	}
	return repository.PlanCreated, nil
}

func (f *fakePlanRepo) ListByDate(ctx context.Context, date string) (map[int64]int64, error) {
	out := map[int64]int64{}
	for room, pid := range f.plans[date] {
		out[room] = pid
	}
	return out, nil
}

func (f *fakePlanRepo) HashesByDateRange(ctx context.Context, from, to string) ([]repository.DateHash, error) {
	var out []repository.DateHash
	for date, day := range f.plans {
		if date < from || date > to {
			continue
		}
		for _, pid := range day {
			out = append(out, repository.DateHash{Date: date, Hash: f.patterns.hashOf(pid)})
		}
	}
	return out, nil
}

type capturingEventRepo struct {
	appended []models.PlanEvent
	events   []models.PlanEvent
	listErr  error

	gotFrom time.Time
	gotTo   time.Time
	gotType string
	calls   int
}

func (f *capturingEventRepo) Append(ctx context.Context, e models.PlanEvent) error {
	f.appended = append(f.appended, e)
	return nil
}

func (f *capturingEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.PlanEvent, error) {
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.listErr
}

// slot helpers

func tempSlotAt(start, end string, temp float64) models.Slot {
	return models.Slot{Start: start, End: end, Type: "temp", Value: temp}
}

func onOffSlotAt(start, end, state string) models.Slot {
	return models.Slot{Start: start, End: end, Type: "onoff", Value: state}
}
