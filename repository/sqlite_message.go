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

// sqliteMessageRepo, MessageRepository'nin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db database.Querier
}

// NewSQLiteMessageRepo, yeni bir mesaj repository'si oluşturur.
func NewSQLiteMessageRepo(db database.Querier) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

// messageColumns, yazar join'li mesaj sorguları için ortak select listesi.
const messageColumns = `
	msg.id, msg.channel_id, msg.member_id, msg.content, msg.file_url,
	msg.deleted, msg.created_at, msg.updated_at,
	m.id, m.server_id, m.profile_id, m.role, m.created_at, m.updated_at,
	p.id, p.name, p.email, p.avatar_url, p.created_at, p.updated_at`

func scanMessage(scanner interface{ Scan(...any) error }) (*models.Message, error) {
	var msg models.Message
	var author models.MemberWithProfile
	err := scanner.Scan(
		&msg.ID, &msg.ChannelID, &msg.MemberID, &msg.Content, &msg.FileURL,
		&msg.Deleted, &msg.CreatedAt, &msg.UpdatedAt,
		&author.ID, &author.ServerID, &author.ProfileID, &author.Role,
		&author.CreatedAt, &author.UpdatedAt,
		&author.Profile.ID, &author.Profile.Name, &author.Profile.Email,
		&author.Profile.AvatarURL, &author.Profile.CreatedAt, &author.Profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	msg.Author = &author
	return &msg, nil
}

func (r *sqliteMessageRepo) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (channel_id, member_id, content, file_url)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		message.ChannelID, message.MemberID, message.Content, message.FileURL,
	).Scan(&message.ID, &message.CreatedAt, &message.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages msg
		INNER JOIN members m ON m.id = msg.member_id
		INNER JOIN profiles p ON p.id = m.profile_id
		WHERE msg.id = ?`

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: message not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

func (r *sqliteMessageRepo) ListByChannel(ctx context.Context, channelID, cursor string, limit int) ([]*models.Message, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if cursor == "" {
		query := `
			SELECT ` + messageColumns + `
			FROM messages msg
			INNER JOIN members m ON m.id = msg.member_id
			INNER JOIN profiles p ON p.id = m.profile_id
			WHERE msg.channel_id = ?
			ORDER BY msg.created_at DESC, msg.id DESC
			LIMIT ?`
		rows, err = r.db.QueryContext(ctx, query, channelID, limit)
	} else {
		// Cursor, bir mesaj ID'sidir; o mesajdan kesin olarak eski
		// satırlar döner. created_at eşitliğinde id kırıcıdır.
		query := `
			SELECT ` + messageColumns + `
			FROM messages msg
			INNER JOIN members m ON m.id = msg.member_id
			INNER JOIN profiles p ON p.id = m.profile_id
			WHERE msg.channel_id = ?
			AND (msg.created_at, msg.id) < (
				SELECT c.created_at, c.id FROM messages c WHERE c.id = ?
			)
			ORDER BY msg.created_at DESC, msg.id DESC
			LIMIT ?`
		rows, err = r.db.QueryContext(ctx, query, channelID, cursor, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}

func (r *sqliteMessageRepo) Update(ctx context.Context, messageID, memberID, content string) error {
	query := `
		UPDATE messages
		SET content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND member_id = ? AND deleted = 0`

	result, err := r.db.ExecContext(ctx, query, content, messageID, memberID)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: message not found", pkg.ErrNotFound)
	}
	return nil
}

func (r *sqliteMessageRepo) SoftDelete(ctx context.Context, messageID string) error {
	query := `
		UPDATE messages
		SET content = ?, file_url = NULL, deleted = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND deleted = 0`

	result, err := r.db.ExecContext(ctx, query, models.DeletedMessageContent, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: message not found", pkg.ErrNotFound)
	}
	return nil
}
