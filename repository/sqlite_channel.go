package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vkayy/ev-cord/database"
	"github.com/vkayy/ev-cord/models"
	"github.com/vkayy/ev-cord/pkg"
)

// sqliteChannelRepo, ChannelRepository'nin SQLite implementasyonu.
type sqliteChannelRepo struct {
	db database.Querier
}

// NewSQLiteChannelRepo, yeni bir kanal repository'si oluşturur.
func NewSQLiteChannelRepo(db database.Querier) ChannelRepository {
	return &sqliteChannelRepo{db: db}
}

func (r *sqliteChannelRepo) Create(ctx context.Context, channel *models.Channel) error {
	query := `
		INSERT INTO channels (server_id, profile_id, name, type)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		channel.ServerID, channel.ProfileID, channel.Name, channel.Type,
	).Scan(&channel.ID, &channel.CreatedAt, &channel.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

func (r *sqliteChannelRepo) GetByID(ctx context.Context, id string) (*models.Channel, error) {
	query := `
		SELECT id, server_id, profile_id, name, type, created_at, updated_at
		FROM channels WHERE id = ?`

	var c models.Channel
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ServerID, &c.ProfileID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: channel not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return &c, nil
}

func (r *sqliteChannelRepo) ListByServer(ctx context.Context, serverID string) ([]*models.Channel, error) {
	query := `
		SELECT id, server_id, profile_id, name, type, created_at, updated_at
		FROM channels WHERE server_id = ?
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	channels := make([]*models.Channel, 0)
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(
			&c.ID, &c.ServerID, &c.ProfileID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate channels: %w", err)
	}
	return channels, nil
}

func (r *sqliteChannelRepo) Update(ctx context.Context, channel *models.Channel) error {
	query := `
		UPDATE channels
		SET name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND name != ?`

	result, err := r.db.ExecContext(ctx, query, channel.Name, channel.ID, models.DefaultChannelName)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: channel not found", pkg.ErrNotFound)
	}
	return nil
}

func (r *sqliteChannelRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM channels WHERE id = ? AND name != ?`, id, models.DefaultChannelName)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: channel not found", pkg.ErrNotFound)
	}
	return nil
}
