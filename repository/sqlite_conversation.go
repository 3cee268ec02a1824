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

// sqliteConversationRepo, ConversationRepository'nin SQLite implementasyonu.
type sqliteConversationRepo struct {
	db database.Querier
}

// NewSQLiteConversationRepo, yeni bir konuşma repository'si oluşturur.
func NewSQLiteConversationRepo(db database.Querier) ConversationRepository {
	return &sqliteConversationRepo{db: db}
}

func (r *sqliteConversationRepo) Create(ctx context.Context, conversation *models.Conversation) error {
	query := `
		INSERT INTO conversations (member_one_id, member_two_id)
		VALUES (?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		conversation.MemberOneID, conversation.MemberTwoID,
	).Scan(&conversation.ID, &conversation.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: conversation already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// conversationColumns, iki üye join'li konuşma sorguları için select listesi.
const conversationColumns = `
	c.id, c.member_one_id, c.member_two_id, c.created_at,
	m1.id, m1.server_id, m1.profile_id, m1.role, m1.created_at, m1.updated_at,
	p1.id, p1.name, p1.email, p1.avatar_url, p1.created_at, p1.updated_at,
	m2.id, m2.server_id, m2.profile_id, m2.role, m2.created_at, m2.updated_at,
	p2.id, p2.name, p2.email, p2.avatar_url, p2.created_at, p2.updated_at`

func scanConversation(scanner interface{ Scan(...any) error }) (*models.Conversation, error) {
	var c models.Conversation
	var one, two models.MemberWithProfile
	err := scanner.Scan(
		&c.ID, &c.MemberOneID, &c.MemberTwoID, &c.CreatedAt,
		&one.ID, &one.ServerID, &one.ProfileID, &one.Role, &one.CreatedAt, &one.UpdatedAt,
		&one.Profile.ID, &one.Profile.Name, &one.Profile.Email, &one.Profile.AvatarURL,
		&one.Profile.CreatedAt, &one.Profile.UpdatedAt,
		&two.ID, &two.ServerID, &two.ProfileID, &two.Role, &two.CreatedAt, &two.UpdatedAt,
		&two.Profile.ID, &two.Profile.Name, &two.Profile.Email, &two.Profile.AvatarURL,
		&two.Profile.CreatedAt, &two.Profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.MemberOne = &one
	c.MemberTwo = &two
	return &c, nil
}

const conversationJoins = `
	FROM conversations c
	INNER JOIN members m1 ON m1.id = c.member_one_id
	INNER JOIN profiles p1 ON p1.id = m1.profile_id
	INNER JOIN members m2 ON m2.id = c.member_two_id
	INNER JOIN profiles p2 ON p2.id = m2.profile_id`

func (r *sqliteConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + conversationJoins + ` WHERE c.id = ?`

	c, err := scanConversation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: conversation not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return c, nil
}

func (r *sqliteConversationRepo) GetByMembers(ctx context.Context, memberOneID, memberTwoID string) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + conversationJoins + `
		WHERE c.member_one_id = ? AND c.member_two_id = ?`

	c, err := scanConversation(r.db.QueryRowContext(ctx, query, memberOneID, memberTwoID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: conversation not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get conversation by members: %w", err)
	}
	return c, nil
}

// directMessageColumns, yazar join'li DM sorguları için select listesi.
const directMessageColumns = `
	dm.id, dm.conversation_id, dm.member_id, dm.content, dm.file_url,
	dm.deleted, dm.created_at, dm.updated_at,
	m.id, m.server_id, m.profile_id, m.role, m.created_at, m.updated_at,
	p.id, p.name, p.email, p.avatar_url, p.created_at, p.updated_at`

func scanDirectMessage(scanner interface{ Scan(...any) error }) (*models.DirectMessage, error) {
	var d models.DirectMessage
	var author models.MemberWithProfile
	err := scanner.Scan(
		&d.ID, &d.ConversationID, &d.MemberID, &d.Content, &d.FileURL,
		&d.Deleted, &d.CreatedAt, &d.UpdatedAt,
		&author.ID, &author.ServerID, &author.ProfileID, &author.Role,
		&author.CreatedAt, &author.UpdatedAt,
		&author.Profile.ID, &author.Profile.Name, &author.Profile.Email,
		&author.Profile.AvatarURL, &author.Profile.CreatedAt, &author.Profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Author = &author
	return &d, nil
}

func (r *sqliteConversationRepo) CreateDirectMessage(ctx context.Context, dm *models.DirectMessage) error {
	query := `
		INSERT INTO direct_messages (conversation_id, member_id, content, file_url)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		dm.ConversationID, dm.MemberID, dm.Content, dm.FileURL,
	).Scan(&dm.ID, &dm.CreatedAt, &dm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create direct message: %w", err)
	}
	return nil
}

func (r *sqliteConversationRepo) GetDirectMessageByID(ctx context.Context, id string) (*models.DirectMessage, error) {
	query := `
		SELECT ` + directMessageColumns + `
		FROM direct_messages dm
		INNER JOIN members m ON m.id = dm.member_id
		INNER JOIN profiles p ON p.id = m.profile_id
		WHERE dm.id = ?`

	d, err := scanDirectMessage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: direct message not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get direct message: %w", err)
	}
	return d, nil
}

func (r *sqliteConversationRepo) ListDirectMessages(ctx context.Context, conversationID, cursor string, limit int) ([]*models.DirectMessage, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if cursor == "" {
		query := `
			SELECT ` + directMessageColumns + `
			FROM direct_messages dm
			INNER JOIN members m ON m.id = dm.member_id
			INNER JOIN profiles p ON p.id = m.profile_id
			WHERE dm.conversation_id = ?
			ORDER BY dm.created_at DESC, dm.id DESC
			LIMIT ?`
		rows, err = r.db.QueryContext(ctx, query, conversationID, limit)
	} else {
		query := `
			SELECT ` + directMessageColumns + `
			FROM direct_messages dm
			INNER JOIN members m ON m.id = dm.member_id
			INNER JOIN profiles p ON p.id = m.profile_id
			WHERE dm.conversation_id = ?
			AND (dm.created_at, dm.id) < (
				SELECT c.created_at, c.id FROM direct_messages c WHERE c.id = ?
			)
			ORDER BY dm.created_at DESC, dm.id DESC
			LIMIT ?`
		rows, err = r.db.QueryContext(ctx, query, conversationID, cursor, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list direct messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.DirectMessage, 0)
	for rows.Next() {
		d, err := scanDirectMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan direct message: %w", err)
		}
		messages = append(messages, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate direct messages: %w", err)
	}
	return messages, nil
}

func (r *sqliteConversationRepo) UpdateDirectMessage(ctx context.Context, dmID, memberID, content string) error {
	query := `
		UPDATE direct_messages
		SET content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND member_id = ? AND deleted = 0`

	result, err := r.db.ExecContext(ctx, query, content, dmID, memberID)
	if err != nil {
		return fmt.Errorf("failed to update direct message: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: direct message not found", pkg.ErrNotFound)
	}
	return nil
}

func (r *sqliteConversationRepo) SoftDeleteDirectMessage(ctx context.Context, dmID string) error {
	query := `
		UPDATE direct_messages
		SET content = ?, file_url = NULL, deleted = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND deleted = 0`

	result, err := r.db.ExecContext(ctx, query, models.DeletedMessageContent, dmID)
	if err != nil {
		return fmt.Errorf("failed to delete direct message: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: direct message not found", pkg.ErrNotFound)
	}
	return nil
}
