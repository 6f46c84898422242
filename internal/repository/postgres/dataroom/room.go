package dataroom

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
	"dataroom/internal/repository/postgres"
)

// PostgresRoomRepository implements the RoomRepository interface
type PostgresRoomRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(config *postgres.RepositoryConfig) dataroomRepo.RoomRepository {
	return &PostgresRoomRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new room
func (r *PostgresRoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Rooms)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		room.Name,
		room.Description,
		room.OwnerID,
		room.CreatedAt,
		room.UpdatedAt,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}

	return nil
}

// statsColumns computes folder/file counts with correlated subqueries
func (r *PostgresRoomRepository) statsColumns() string {
	return fmt.Sprintf(`
		(SELECT COUNT(*) FROM %s f WHERE f.dataroom_id = r.id),
		(SELECT COUNT(*) FROM %s fi WHERE fi.dataroom_id = r.id)
	`, r.tables.Folders, r.tables.Files)
}

// GetByID retrieves a room by ID with stats
func (r *PostgresRoomRepository) GetByID(ctx context.Context, id string) (*models.Room, error) {
	query := fmt.Sprintf(`
		SELECT r.id, r.name, r.description, r.owner_id, r.created_at, r.updated_at, %s
		FROM %s r
		WHERE r.id = $1
	`, r.statsColumns(), r.tables.Rooms)

	var room models.Room
	stats := &models.RoomStats{}
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.OwnerID,
		&room.CreatedAt,
		&room.UpdatedAt,
		&stats.TotalFolders,
		&stats.TotalFiles,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	room.Stats = stats

	return &room, nil
}

// ListByOwner retrieves all rooms for a user, ordered by created_at DESC
func (r *PostgresRoomRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Room, error) {
	query := fmt.Sprintf(`
		SELECT r.id, r.name, r.description, r.owner_id, r.created_at, r.updated_at, %s
		FROM %s r
		WHERE r.owner_id = $1
		ORDER BY r.created_at DESC, r.id
	`, r.statsColumns(), r.tables.Rooms)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var room models.Room
		stats := &models.RoomStats{}
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Description,
			&room.OwnerID,
			&room.CreatedAt,
			&room.UpdatedAt,
			&stats.TotalFolders,
			&stats.TotalFiles,
		)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		room.Stats = stats
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}

	return rooms, nil
}

// Update updates a room's name, description and updated_at timestamp
func (r *PostgresRoomRepository) Update(ctx context.Context, room *models.Room) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Rooms)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, room.Name, room.Description, room.UpdatedAt, room.ID)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s: %w", room.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a room
func (r *PostgresRoomRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Rooms)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
