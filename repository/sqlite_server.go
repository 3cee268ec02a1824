package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vkayy/ev-cord/database"
	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
)

// sqliteServerRepo, ServerRepository'nin SQLite implementasyonu.
type sqliteServerRepo struct {
	db database.Querier
}

// NewSQLiteServerRepo, yeni bir sunucu repository'si oluşturur.
func NewSQLiteServerRepo(db database.Querier) ServerRepository {
	return &sqliteServerRepo{db: db}
}

func (r *sqliteServerRepo) Create(ctx context.Context, server *models.Server) error {
	query := `
		INSERT INTO servers (name, image_url, invite_code, profile_id)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		server.Name, server.ImageURL, server.InviteCode, server.ProfileID,
	).Scan(&server.ID, &server.CreatedAt, &server.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: invite code collision", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create server: %w", err)
	}
	return nil
}

func (r *sqliteServerRepo) GetByID(ctx context.Context, id string) (*models.Server, error) {
	query := `
		SELECT id, name, image_url, invite_code, profile_id, created_at, updated_at
		FROM servers WHERE id = ?`

	var s models.Server
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ImageURL, &s.InviteCode, &s.ProfileID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: server not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	return &s, nil
}

func (r *sqliteServerRepo) GetByInviteCode(ctx context.Context, code string) (*models.Server, error) {
	query := `
		SELECT id, name, image_url, invite_code, profile_id, created_at, updated_at
		FROM servers WHERE invite_code = ?`

	var s models.Server
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&s.ID, &s.Name, &s.ImageURL, &s.InviteCode, &s.ProfileID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: invalid invite code", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get server by invite code: %w", err)
	}
	return &s, nil
}

func (r *sqliteServerRepo) ListByProfile(ctx context.Context, profileID string) ([]*models.Server, error) {
	query := `
		SELECT s.id, s.name, s.image_url, s.invite_code, s.profile_id, s.created_at, s.updated_at
		FROM servers s
		INNER JOIN members m ON m.server_id = s.id
		WHERE m.profile_id = ?
		ORDER BY s.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	servers := make([]*models.Server, 0)
	for rows.Next() {
		var s models.Server
		if err := rows.Scan(
			&s.ID, &s.Name, &s.ImageURL, &s.InviteCode, &s.ProfileID, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan server: %w", err)
		}
		servers = append(servers, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate servers: %w", err)
	}
	return servers, nil
}

func (r *sqliteServerRepo) Update(ctx context.Context, server *models.Server, ownerProfileID string) error {
	query := `
		UPDATE servers
		SET name = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND profile_id = ?`

	result, err := r.db.ExecContext(ctx, query, server.Name, server.ImageURL, server.ID, ownerProfileID)
	if err != nil {
		return fmt.Errorf("failed to update server: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: server not found", pkg.ErrNotFound)
	}
	return nil
}

func (r *sqliteServerRepo) RotateInviteCode(ctx context.Context, serverID, ownerProfileID, newCode string) error {
	query := `
		UPDATE servers
		SET invite_code = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND profile_id = ?`

	result, err := r.db.ExecContext(ctx, query, newCode, serverID, ownerProfileID)
	if err != nil {
		return fmt.Errorf("failed to rotate invite code: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: server not found", pkg.ErrNotFound)
	}
	return nil
}

func (r *sqliteServerRepo) Delete(ctx context.Context, serverID, ownerProfileID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM servers WHERE id = ? AND profile_id = ?`, serverID, ownerProfileID)
	if err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: server not found", pkg.ErrNotFound)
	}
	return nil
}
