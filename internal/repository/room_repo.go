package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"house-admin/internal/model"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

func (r *RoomRepository) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, number, floor, size_sqm, occupant_id, created_at, updated_at
		 FROM rooms ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Floor, &room.SizeSqm, &room.OccupantID, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (model.Room, error) {
	var room model.Room
	err := r.pool.QueryRow(ctx,
		`SELECT id, number, floor, size_sqm, occupant_id, created_at, updated_at
		 FROM rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Number, &room.Floor, &room.SizeSqm, &room.OccupantID, &room.CreatedAt, &room.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Room{}, model.ErrRoomNotFound
	}
	if err != nil {
		return model.Room{}, fmt.Errorf("find room by id: %w", err)
	}
	return room, nil
}

func (r *RoomRepository) Create(ctx context.Context, room model.Room) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO rooms (id, number, floor, size_sqm, occupant_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		room.ID, room.Number, room.Floor, room.SizeSqm, room.OccupantID, room.CreatedAt, room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room model.Room) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rooms SET number = $2, floor = $3, size_sqm = $4, occupant_id = $5, updated_at = $6
		 WHERE id = $1`,
		room.ID, room.Number, room.Floor, room.SizeSqm, room.OccupantID, room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRoomNotFound
	}
	return nil
}
