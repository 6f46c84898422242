package dataroom

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
	"dataroom/internal/repository/postgres"
)

const folderColumns = `id, dataroom_id, parent_id, name, path, created_at, updated_at`

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) dataroomRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.RoomID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *PostgresFolderRepository) conflict(ctx context.Context, folder *models.Folder) error {
	conflictErr := &domain.ConflictError{
		Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
		ResourceType: "folder",
	}
	if existing, err := r.GetByName(ctx, folder.RoomID, folder.ParentID, folder.Name); err == nil {
		conflictErr.ResourceID = existing.ID
	}
	return conflictErr
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (dataroom_id, parent_id, name, path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.RoomID,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, folder)
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("create folder: %w", domain.ErrParentNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// GetByName finds a sibling by exact name
func (r *PostgresFolderRepository) GetByName(ctx context.Context, roomID string, parentID *string, name string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE dataroom_id = $1 AND parent_id IS NOT DISTINCT FROM $2 AND name = $3
	`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, roomID, parentID, name))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder by name: %w", err)
	}

	return folder, nil
}

// Update updates a folder's name, parent and path
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_id = $2, path = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.Path,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, folder)
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("update folder: %w", domain.ErrParentNotFound)
		}
		return fmt.Errorf("update folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// RecomputeSubtreePaths rewrites every descendant path in a single statement
func (r *PostgresFolderRepository) RecomputeSubtreePaths(ctx context.Context, folderID string) error {
	query := fmt.Sprintf(`
		WITH RECURSIVE tree AS (
			SELECT id, path FROM %[1]s WHERE id = $1
			UNION ALL
			SELECT c.id, tree.path || '/' || c.name
			FROM %[1]s c
			JOIN tree ON c.parent_id = tree.id
		)
		UPDATE %[1]s f
		SET path = tree.path
		FROM tree
		WHERE f.id = tree.id AND f.id <> $1 AND f.path <> tree.path
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, folderID); err != nil {
		return fmt.Errorf("recompute subtree paths: %w", err)
	}

	return nil
}

func (r *PostgresFolderRepository) list(ctx context.Context, query string, args ...any) ([]models.Folder, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// ListChildren lists immediate child folders ordered by name
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, roomID string, parentID *string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE dataroom_id = $1 AND parent_id IS NOT DISTINCT FROM $2
		ORDER BY name COLLATE "C", id
	`, folderColumns, r.tables.Folders)

	return r.list(ctx, query, roomID, parentID)
}

// ListSubtreeIDs returns folderID and its descendants breadth-first
func (r *PostgresFolderRepository) ListSubtreeIDs(ctx context.Context, folderID string) ([]string, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE tree AS (
			SELECT id, 0 AS depth FROM %[1]s WHERE id = $1
			UNION ALL
			SELECT c.id, tree.depth + 1
			FROM %[1]s c
			JOIN tree ON c.parent_id = tree.id
		)
		SELECT id FROM tree ORDER BY depth, id
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list subtree: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subtree id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subtree: %w", err)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	return ids, nil
}

// GetAllByRoom retrieves all folders in a room (flat list)
func (r *PostgresFolderRepository) GetAllByRoom(ctx context.Context, roomID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE dataroom_id = $1
		ORDER BY name COLLATE "C", id
	`, folderColumns, r.tables.Folders)

	return r.list(ctx, query, roomID)
}

// DeleteMany deletes the given folders
func (r *PostgresFolderRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("delete folders: %w", err)
	}

	return nil
}

// DeleteAllByRoom deletes every folder of a room
func (r *PostgresFolderRepository) DeleteAllByRoom(ctx context.Context, roomID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE dataroom_id = $1`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, roomID); err != nil {
		return fmt.Errorf("delete room folders: %w", err)
	}

	return nil
}
