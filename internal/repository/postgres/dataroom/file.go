package dataroom

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
	"dataroom/internal/repository/postgres"
)

const fileColumns = `id, dataroom_id, folder_id, name, original_name, file_size, mime_type,
	content_ref, content_text, text_status, created_at, updated_at`

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) dataroomRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanFile(row pgx.Row) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.RoomID,
		&file.FolderID,
		&file.Name,
		&file.OriginalName,
		&file.FileSize,
		&file.MimeType,
		&file.ContentRef,
		&file.ContentText,
		&file.TextStatus,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *PostgresFileRepository) conflict(ctx context.Context, file *models.File) error {
	conflictErr := &domain.ConflictError{
		Message:      fmt.Sprintf("a file named %q already exists in this location", file.Name),
		ResourceType: "file",
	}
	if existing, err := r.GetByName(ctx, file.RoomID, file.FolderID, file.Name); err == nil {
		conflictErr.ResourceID = existing.ID
	}
	return conflictErr
}

// Create creates a new file
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (dataroom_id, folder_id, name, original_name, file_size, mime_type,
			content_ref, content_text, text_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.RoomID,
		file.FolderID,
		file.Name,
		file.OriginalName,
		file.FileSize,
		file.MimeType,
		file.ContentRef,
		file.ContentText,
		file.TextStatus,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, file)
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("create file: %w", domain.ErrParentNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	file, err := scanFile(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return file, nil
}

// GetByName finds a file in a folder by exact name
func (r *PostgresFileRepository) GetByName(ctx context.Context, roomID string, folderID *string, name string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE dataroom_id = $1 AND folder_id IS NOT DISTINCT FROM $2 AND name = $3
	`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	file, err := scanFile(executor.QueryRow(ctx, query, roomID, folderID, name))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file by name: %w", err)
	}

	return file, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListNamesWithPrefix returns names in a folder starting with prefix
func (r *PostgresFileRepository) ListNamesWithPrefix(ctx context.Context, roomID string, folderID *string, prefix string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT name FROM %s
		WHERE dataroom_id = $1 AND folder_id IS NOT DISTINCT FROM $2 AND name LIKE $3 ESCAPE '\'
		ORDER BY name
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, roomID, folderID, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("list file names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan file name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file names: %w", err)
	}

	return names, nil
}

// Update updates a file's name and folder
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, folder_id = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, file.Name, file.FolderID, file.UpdatedAt, file.ID)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, file)
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("update file: %w", domain.ErrParentNotFound)
		}
		return fmt.Errorf("update file: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// SetExtractedText records extracted text and status
func (r *PostgresFileRepository) SetExtractedText(ctx context.Context, id string, text *string, status models.TextStatus) error {
	query := fmt.Sprintf(`
		UPDATE %s SET content_text = $1, text_status = $2 WHERE id = $3
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, text, status, id)
	if err != nil {
		return fmt.Errorf("set extracted text: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFileRepository) list(ctx context.Context, query string, args ...any) ([]models.File, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// ListByFolder lists files directly in a folder ordered by name
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, roomID string, folderID *string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE dataroom_id = $1 AND folder_id IS NOT DISTINCT FROM $2
		ORDER BY name COLLATE "C", id
	`, fileColumns, r.tables.Files)

	return r.list(ctx, query, roomID, folderID)
}

// GetAllByRoom retrieves all files in a room
func (r *PostgresFileRepository) GetAllByRoom(ctx context.Context, roomID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE dataroom_id = $1
		ORDER BY name COLLATE "C", id
	`, fileColumns, r.tables.Files)

	return r.list(ctx, query, roomID)
}

// SuggestByName returns up to limit files whose name contains query (ILIKE)
func (r *PostgresFileRepository) SuggestByName(ctx context.Context, roomID, query string, limit int) ([]models.Suggestion, error) {
	sql := fmt.Sprintf(`
		SELECT id, name FROM %s
		WHERE dataroom_id = $1 AND name ILIKE $2 ESCAPE '\'
		ORDER BY name COLLATE "C", id
		LIMIT $3
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sql, roomID, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("suggest files: %w", err)
	}
	defer rows.Close()

	suggestions := []models.Suggestion{}
	for rows.Next() {
		var s models.Suggestion
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestions: %w", err)
	}

	return suggestions, nil
}

// Delete deletes a file
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFileRepository) deleteReturningRefs(ctx context.Context, query string, arg any) ([]string, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("delete files: %w", err)
	}
	defer rows.Close()

	refs := []string{}
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan content ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("delete files: %w", err)
	}

	return refs, nil
}

// DeleteByFolders deletes files in the given folders, returning their content refs
func (r *PostgresFileRepository) DeleteByFolders(ctx context.Context, folderIDs []string) ([]string, error) {
	if len(folderIDs) == 0 {
		return []string{}, nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE folder_id = ANY($1) RETURNING content_ref`, r.tables.Files)
	return r.deleteReturningRefs(ctx, query, folderIDs)
}

// DeleteAllByRoom deletes every file of a room, returning their content refs
func (r *PostgresFileRepository) DeleteAllByRoom(ctx context.Context, roomID string) ([]string, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE dataroom_id = $1 RETURNING content_ref`, r.tables.Files)
	return r.deleteReturningRefs(ctx, query, roomID)
}
