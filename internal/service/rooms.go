package service

import (
	"context"

	"heatplan/internal/models"
	"heatplan/internal/repository"
)

// RoomService exposes the configured rooms with their last applied heating
// state.
type RoomService struct {
	rooms repository.RoomRepo
}

func NewRoomService(rooms repository.RoomRepo) *RoomService {
	return &RoomService{rooms: rooms}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.rooms.List(ctx)
}
