package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"house-admin/internal/model"
)

type roomStore interface {
	List(ctx context.Context) ([]model.Room, error)
	FindByID(ctx context.Context, id string) (model.Room, error)
	Create(ctx context.Context, room model.Room) error
	Update(ctx context.Context, room model.Room) error
	Delete(ctx context.Context, id string) error
}

type RoomService struct {
	rooms roomStore
}

func NewRoomService(rooms roomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

func (s *RoomService) List(ctx context.Context) ([]model.Room, error) {
	return s.rooms.List(ctx)
}

func (s *RoomService) Get(ctx context.Context, id string) (model.Room, error) {
	return s.rooms.FindByID(ctx, id)
}

func (s *RoomService) Create(ctx context.Context, req model.RoomRequest) (model.Room, error) {
	if strings.TrimSpace(req.Number) == "" {
		return model.Room{}, fmt.Errorf("%w: room number is required", model.ErrInvalidInput)
	}

	now := time.Now().UTC()
	room := model.Room{
		ID:         uuid.NewString(),
		Number:     strings.TrimSpace(req.Number),
		Floor:      req.Floor,
		SizeSqm:    req.SizeSqm,
		OccupantID: req.OccupantID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, req model.RoomRequest) (model.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return model.Room{}, err
	}

	if strings.TrimSpace(req.Number) != "" {
		room.Number = strings.TrimSpace(req.Number)
	}
	room.Floor = req.Floor
	room.SizeSqm = req.SizeSqm
	room.OccupantID = req.OccupantID
	room.UpdatedAt = time.Now().UTC()

	if err := s.rooms.Update(ctx, room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) error {
	return s.rooms.Delete(ctx, id)
}
