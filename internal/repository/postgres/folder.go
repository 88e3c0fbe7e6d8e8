package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vaultly/internal/domain"
)

// FolderRepository implements the domain.FolderRepository interface using PostgreSQL
type FolderRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewFolderRepository creates a new PostgreSQL folder repository
func NewFolderRepository(db *sql.DB, logger *slog.Logger) *FolderRepository {
	return &FolderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FolderRepository) scanFolder(row rowScanner) (*domain.Folder, error) {
	folder := &domain.Folder{}
	var updatedAt sql.NullTime

	err := row.Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.IsPublic,
		&folder.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		folder.UpdatedAt = &updatedAt.Time
	}

	return folder, nil
}

// GetByID retrieves a folder by its UUID
func (r *FolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	query := `
		SELECT id, user_id, name, is_public, created_at, updated_at
		FROM folders
		WHERE id = $1`

	folder, err := r.scanFolder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Debug("Folder not found", "folder_id", id)
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to query folder",
			"error", err,
			"folder_id", id,
		)
		return nil, fmt.Errorf("failed to query folder: %w", err)
	}

	return folder, nil
}

// GetByUser retrieves all folders belonging to a user, oldest first
func (r *FolderRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Folder, error) {
	query := `
		SELECT id, user_id, name, is_public, created_at, updated_at
		FROM folders
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to query folders",
			"error", err,
			"user_id", userID,
		)
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	folders := make([]*domain.Folder, 0)
	for rows.Next() {
		folder, err := r.scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder row: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate folder rows: %w", err)
	}

	return folders, nil
}

// GetByName finds a user's folder by exact name
func (r *FolderRepository) GetByName(ctx context.Context, userID, name string) (*domain.Folder, error) {
	query := `
		SELECT id, user_id, name, is_public, created_at, updated_at
		FROM folders
		WHERE user_id = $1 AND name = $2`

	folder, err := r.scanFolder(r.db.QueryRowContext(ctx, query, userID, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to query folder by name",
			"error", err,
			"user_id", userID,
			"name", name,
		)
		return nil, fmt.Errorf("failed to query folder by name: %w", err)
	}

	return folder, nil
}

// Create inserts a new folder
func (r *FolderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	query := `
		INSERT INTO folders (id, user_id, name, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	updatedAt := folder.CreatedAt
	if folder.UpdatedAt != nil {
		updatedAt = *folder.UpdatedAt
	}

	_, err := r.db.ExecContext(ctx, query,
		folder.ID,
		folder.UserID,
		folder.Name,
		folder.IsPublic,
		folder.CreatedAt,
		updatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create folder",
			"error", err,
			"folder_id", folder.ID,
			"name", folder.Name,
		)
		return fmt.Errorf("failed to create folder: %w", err)
	}

	r.logger.Info("Folder created successfully",
		"folder_id", folder.ID,
		"name", folder.Name,
		"user_id", folder.UserID,
	)

	return nil
}

// Update modifies an existing folder
func (r *FolderRepository) Update(ctx context.Context, folder *domain.Folder) error {
	query := `
		UPDATE folders SET
			name = $2,
			is_public = $3,
			updated_at = $4
		WHERE id = $1`

	now := time.Now()
	folder.UpdatedAt = &now

	_, err := r.db.ExecContext(ctx, query,
		folder.ID,
		folder.Name,
		folder.IsPublic,
		folder.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update folder",
			"error", err,
			"folder_id", folder.ID,
		)
		return fmt.Errorf("failed to update folder: %w", err)
	}

	r.logger.Info("Folder updated successfully",
		"folder_id", folder.ID,
		"name", folder.Name,
	)

	return nil
}

// Delete removes a folder by ID. Videos filed in it are unfiled by the
// schema's ON DELETE SET NULL, not deleted.
func (r *FolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM folders WHERE id = $1", id)
	if err != nil {
		r.logger.Error("Failed to delete folder",
			"error", err,
			"folder_id", id,
		)
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("folder not found: %s", id)
	}

	r.logger.Info("Folder deleted", "folder_id", id)
	return nil
}
