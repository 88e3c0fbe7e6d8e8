package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"vaultly/internal/domain"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations contains all database migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			-- Create folders table
			CREATE TABLE IF NOT EXISTS folders (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				user_id VARCHAR(64) NOT NULL,
				name VARCHAR(255) NOT NULL,
				is_public BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),

				UNIQUE(user_id, name)
			);

			CREATE INDEX IF NOT EXISTS idx_folders_user
			ON folders(user_id);

			-- Create videos table
			CREATE TABLE IF NOT EXISTS videos (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				user_id VARCHAR(64) NOT NULL,
				url TEXT NOT NULL,
				platform VARCHAR(50) NOT NULL,
				title VARCHAR(500) NOT NULL DEFAULT 'Untitled',
				folder_id UUID REFERENCES folders(id) ON DELETE SET NULL,

				thumbnail_url TEXT,
				uploader VARCHAR(255),
				description TEXT,
				tags TEXT[] NOT NULL DEFAULT '{}',
				note TEXT,
				mood VARCHAR(50),

				-- Extraction provenance and processing
				source_raw JSONB DEFAULT '{}',
				extraction_status VARCHAR(20) DEFAULT 'pending',

				-- Timestamps
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),

				-- Search vector for full-text search
				search_vector tsvector,

				-- Constraints
				UNIQUE(user_id, url),
				` + domain.GetPlatformConstraintSQL() + `,
				CHECK (extraction_status IN ('pending', 'partial', 'complete', 'failed'))
			);

			-- Create indexes
			CREATE INDEX IF NOT EXISTS idx_videos_user_created
			ON videos(user_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_videos_folder
			ON videos(folder_id);

			CREATE INDEX IF NOT EXISTS idx_videos_platform
			ON videos(platform);

			CREATE INDEX IF NOT EXISTS idx_videos_status
			ON videos(extraction_status);

			CREATE INDEX IF NOT EXISTS idx_videos_search
			ON videos USING GIN(search_vector);

			-- Create search vector update function
			CREATE OR REPLACE FUNCTION update_videos_search_vector()
			RETURNS trigger AS $$
			BEGIN
				NEW.search_vector := to_tsvector('english',
					coalesce(NEW.title,'') || ' ' ||
					coalesce(NEW.description,'') || ' ' ||
					coalesce(NEW.uploader,'') || ' ' ||
					coalesce(NEW.note,''));
				RETURN NEW;
			END;
			$$ LANGUAGE plpgsql;

			-- Create trigger for automatic search vector updates
			CREATE TRIGGER videos_search_vector_update
				BEFORE INSERT OR UPDATE ON videos
				FOR EACH ROW EXECUTE FUNCTION update_videos_search_vector();
		`,
	},
	{
		Version: 2,
		Name:    "events_table",
		SQL: `
			-- Create events table for analytics
			CREATE TABLE IF NOT EXISTS events (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				user_id VARCHAR(64) NOT NULL,
				event_type VARCHAR(50) NOT NULL,
				payload JSONB DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_events_user_created
			ON events(user_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_events_type
			ON events(event_type);
		`,
	},
}

// RunMigrations executes all pending database migrations
func RunMigrations(db *sql.DB, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Create migrations table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	logger.Info("Current migration version", "version", currentVersion)

	// Apply pending migrations
	applied := 0
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("Applying migration",
			"version", migration.Version,
			"name", migration.Name,
		)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES ($1, $2)",
			migration.Version, migration.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		applied++
		logger.Info("Migration applied successfully", "version", migration.Version)
	}

	if applied == 0 {
		logger.Info("No migrations to apply - database is up to date")
	} else {
		logger.Info("Database migrations completed", "applied", applied)
	}

	return nil
}

// GetMigrationStatus returns the current migration status
func GetMigrationStatus(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get migration status: %w", err)
	}
	return version, nil
}

// ResetDatabase drops all tables (for testing)
func ResetDatabase(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	logger.Warn("Resetting database - all data will be lost")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Drop tables in reverse dependency order
	dropSQL := []string{
		"DROP TABLE IF EXISTS events CASCADE",
		"DROP TABLE IF EXISTS videos CASCADE",
		"DROP TABLE IF EXISTS folders CASCADE",
		"DROP TABLE IF EXISTS migrations CASCADE",
		"DROP FUNCTION IF EXISTS update_videos_search_vector() CASCADE",
	}

	for _, stmt := range dropSQL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute drop statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset transaction: %w", err)
	}

	logger.Info("Database reset completed")
	return nil
}
