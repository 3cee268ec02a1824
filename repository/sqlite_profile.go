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

// sqliteProfileRepo, ProfileRepository'nin SQLite implementasyonu.
type sqliteProfileRepo struct {
	db database.Querier
}

// NewSQLiteProfileRepo, yeni bir profil repository'si oluşturur.
// Querier kabul eder; *sql.DB veya *sql.Tx geçilebilir.
func NewSQLiteProfileRepo(db database.Querier) ProfileRepository {
	return &sqliteProfileRepo{db: db}
}

func (r *sqliteProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (name, email, password_hash, avatar_url)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		profile.Name, profile.Email, profile.PasswordHash, profile.AvatarURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		// UNIQUE ihlali: aynı email ile ikinci kayıt denemesi.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *sqliteProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_url, created_at, updated_at
		FROM profiles WHERE id = ?`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: profile not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (r *sqliteProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT id, name, email, password_hash, avatar_url, created_at, updated_at
		FROM profiles WHERE email = ?`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: profile not found", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &p, nil
}

func (r *sqliteProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET name = ?, avatar_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, profile.Name, profile.AvatarURL, profile.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: profile not found", pkg.ErrNotFound)
	}
	return nil
}
