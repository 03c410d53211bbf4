package service

import (
	"context"
	"fmt"
	"time"

	"heatplan/internal/models"
	"heatplan/internal/repository"
	"heatplan/internal/timeline"
)

// SyncService pushes the current schedule to the heaters. On every tick it
// looks up the active slot of each room for the current minute and writes the
// resulting command back to the room. A minute not covered by any slot means
// the heating is off.
type SyncService struct {
	rooms    repository.RoomRepo
	patterns repository.PatternRepo
	plans    repository.PlanRepo
	events   repository.EventRepo

	// last command applied per room, written only from the Run goroutine
	applied map[int64]heatingCommand
}

type heatingCommand struct {
	state       string
	setpointC   float64
	hasSetpoint bool
}

func NewSyncService(rooms repository.RoomRepo, patterns repository.PatternRepo, plans repository.PlanRepo, events repository.EventRepo) *SyncService {
	return &SyncService{
		rooms:    rooms,
		patterns: patterns,
		plans:    plans,
		events:   events,
		applied:  make(map[int64]heatingCommand),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SyncService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.syncOnce(ctx, now)
		}
	}
}

func (s *SyncService) syncOnce(ctx context.Context, now time.Time) {
	date := now.Format(dateLayout)
	minute := now.Hour()*60 + now.Minute()

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return
	}
	planned, err := s.plans.ListByDate(ctx, date)
	if err != nil {
		return
	}

	for _, room := range rooms {
		cmd, err := s.commandFor(ctx, planned, room.ID, minute)
		if err != nil {
			continue
		}
		if prev, ok := s.applied[room.ID]; ok && prev == cmd {
			continue
		}
		var setpoint *float64
		if cmd.hasSetpoint {
			sp := cmd.setpointC
			setpoint = &sp
		}
		if err := s.rooms.SetHeatingState(ctx, room.ID, cmd.state, setpoint); err != nil {
			continue
		}
		s.applied[room.ID] = cmd
		_ = s.events.Append(ctx, models.PlanEvent{
			OccurredAt:  now.UTC(),
			Type:        models.EventHeatingSync,
			Description: fmt.Sprintf("room %q set to %s", room.Name, describeCommand(cmd)),
			Metadata: map[string]any{
				"room_id": room.ID,
				"state":   cmd.state,
			},
		})
	}
}

// commandFor maps the active slot of a room to a heating command. No plan or
// no active slot means off. A temperature slot delegates the on/off decision
// to the thermostat and only carries the setpoint.
func (s *SyncService) commandFor(ctx context.Context, planned map[int64]int64, roomID int64, minute int) (heatingCommand, error) {
	cmd := heatingCommand{state: models.HeatingOff}
	patternID, ok := planned[roomID]
	if !ok {
		return cmd, nil
	}
	slots, err := s.patterns.SlotsByID(ctx, patternID)
	if err != nil {
		return cmd, err
	}
	ts, err := models.TimelineSlots(slots)
	if err != nil {
		return cmd, err
	}
	sched, err := timeline.New(ts)
	if err != nil {
		return cmd, err
	}
	active, ok := sched.ActiveAt(minute)
	if !ok {
		return cmd, nil
	}
	switch active.Value.Kind() {
	case timeline.KindOnOff:
		cmd.state = activeState(active.Value.State())
	case timeline.KindTemperature:
		cmd = heatingCommand{
			state:       models.HeatingUnknown,
			setpointC:   active.Value.Setpoint(),
			hasSetpoint: true,
		}
	}
	return cmd, nil
}

func activeState(state string) string {
	if state == timeline.StateOn {
		return models.HeatingOn
	}
	return models.HeatingOff
}

func describeCommand(cmd heatingCommand) string {
	if cmd.hasSetpoint {
		return fmt.Sprintf("%.1f°", cmd.setpointC)
	}
	return cmd.state
}
