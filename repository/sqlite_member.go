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

// sqliteMemberRepo, MemberRepository'nin SQLite implementasyonu.
type sqliteMemberRepo struct {
	db database.Querier
}

// NewSQLiteMemberRepo, yeni bir üyelik repository'si oluşturur.
func NewSQLiteMemberRepo(db database.Querier) MemberRepository {
	return &sqliteMemberRepo{db: db}
}

// memberWithProfileColumns, üye + profil join'lerinde ortak select listesi.
const memberWithProfileColumns = `
	m.id, m.server_id, m.profile_id, m.role, m.created_at, m.updated_at,
	p.id, p.name, p.email, p.avatar_url, p.created_at, p.updated_at`

func scanMemberWithProfile(scanner interface{ Scan(...any) error }) (*models.MemberWithProfile, error) {
	var mw models.MemberWithProfile
	err := scanner.Scan(
		&mw.ID, &mw.ServerID, &mw.ProfileID, &mw.Role, &mw.CreatedAt, &mw.UpdatedAt,
		&mw.Profile.ID, &mw.Profile.Name, &mw.Profile.Email, &mw.Profile.AvatarURL,
		&mw.Profile.CreatedAt, &mw.Profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mw, nil
}

func (r *sqliteMemberRepo) Create(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (server_id, profile_id, role)
		VALUES (?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		member.ServerID, member.ProfileID, member.Role,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: already a member", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *sqliteMemberRepo) GetByID(ctx context.Context, id string) (*models.MemberWithProfile, error) {
	query := `
		SELECT ` + memberWithProfileColumns + `
		FROM members m
		INNER JOIN profiles p ON p.id = m.profile_id
		WHERE m.id = ?`

	mw, err := scanMemberWithProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: member not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return mw, nil
}

func (r *sqliteMemberRepo) GetByServerAndProfile(ctx context.Context, serverID, profileID string) (*models.Member, error) {
	query := `
		SELECT id, server_id, profile_id, role, created_at, updated_at
		FROM members WHERE server_id = ? AND profile_id = ?`

	var m models.Member
	err := r.db.QueryRowContext(ctx, query, serverID, profileID).Scan(
		&m.ID, &m.ServerID, &m.ProfileID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: not a member", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &m, nil
}

func (r *sqliteMemberRepo) ListByServer(ctx context.Context, serverID string) ([]*models.MemberWithProfile, error) {
	// CASE ifadesi rol sırasını sabitler: admin en üstte.
	query := `
		SELECT ` + memberWithProfileColumns + `
		FROM members m
		INNER JOIN profiles p ON p.id = m.profile_id
		WHERE m.server_id = ?
		ORDER BY CASE m.role
			WHEN 'admin' THEN 0
			WHEN 'moderator' THEN 1
			ELSE 2
		END, m.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]*models.MemberWithProfile, 0)
	for rows.Next() {
		mw, err := scanMemberWithProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, mw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func (r *sqliteMemberRepo) UpdateRole(ctx context.Context, memberID, serverID, actingProfileID string, role models.MemberRole) error {
	// Kendi kendini hedefleme (profile_id != ?) ve sahiplik (EXISTS) aynı
	// ifadede: koşullar sağlanmazsa sıfır satır eşer, ErrNotFound döner.
	query := `
		UPDATE members
		SET role = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND server_id = ? AND profile_id != ?
		AND EXISTS (
			SELECT 1 FROM servers s WHERE s.id = members.server_id AND s.profile_id = ?
		)`

	result, err := r.db.ExecContext(ctx, query, role, memberID, serverID, actingProfileID, actingProfileID)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: member not found", pkg.ErrNotFound)
	}
	return nil
}

func (r *sqliteMemberRepo) DeleteAsOwner(ctx context.Context, memberID, serverID, actingProfileID string) error {
	query := `
		DELETE FROM members
		WHERE id = ? AND server_id = ? AND profile_id != ?
		AND EXISTS (
			SELECT 1 FROM servers s WHERE s.id = members.server_id AND s.profile_id = ?
		)`

	result, err := r.db.ExecContext(ctx, query, memberID, serverID, actingProfileID, actingProfileID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: member not found", pkg.ErrNotFound)
	}
	return nil
}

func (r *sqliteMemberRepo) DeleteByServerAndProfile(ctx context.Context, serverID, profileID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM members WHERE server_id = ? AND profile_id = ?`, serverID, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: not a member", pkg.ErrNotFound)
	}
	return nil
}
