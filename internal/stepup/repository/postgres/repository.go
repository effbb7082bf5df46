package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
)

// DB is the subset of pgxpool.Pool the repository uses. Satisfied by
// both *pgxpool.Pool and pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, step_up_enabled, COALESCE(pin_hash, '')
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.StepUpEnabled, &user.PinHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, autherror.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) UpdatePin(ctx context.Context, userID, pinHash string, enabled bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET pin_hash = $2, step_up_enabled = $3, updated_at = now()
		WHERE id = $1
	`, userID, pinHash, enabled)
	if err != nil {
		return fmt.Errorf("failed to update pin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrUserNotFound
	}

	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, cred *domain.Credential) error {
	query := `
		INSERT INTO webauthn_credentials (user_id, credential_id, public_key, sign_count, created_at, device_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	row := r.db.QueryRow(ctx, query,
		cred.UserID, cred.CredentialID, cred.PublicKey, cred.SignCounter, cred.CreatedAt, cred.DeviceName)

	if err := row.Scan(&cred.ID); err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Credential, error) {
	query := `
		SELECT id, user_id, credential_id, public_key, sign_count, created_at, COALESCE(device_name, '')
		FROM webauthn_credentials
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	defer rows.Close()

	var creds []domain.Credential
	for rows.Next() {
		var c domain.Credential
		if err := rows.Scan(&c.ID, &c.UserID, &c.CredentialID, &c.PublicKey,
			&c.SignCounter, &c.CreatedAt, &c.DeviceName); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	return creds, nil
}

func (r *PostgresRepository) GetByCredentialID(ctx context.Context, userID string, credentialID []byte) (*domain.Credential, error) {
	query := `
		SELECT id, user_id, credential_id, public_key, sign_count, created_at, COALESCE(device_name, '')
		FROM webauthn_credentials
		WHERE user_id = $1 AND credential_id = $2
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, userID, credentialID)

	var c domain.Credential
	err := row.Scan(&c.ID, &c.UserID, &c.CredentialID, &c.PublicKey,
		&c.SignCounter, &c.CreatedAt, &c.DeviceName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, autherror.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	return &c, nil
}

func (r *PostgresRepository) ExistsByCredentialID(ctx context.Context, credentialID []byte) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM webauthn_credentials WHERE credential_id = $1);`
	row := r.db.QueryRow(ctx, query, credentialID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe credential id: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) UpdateSignCount(ctx context.Context, id int, signCount uint32) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE webauthn_credentials
		SET sign_count = $2
		WHERE id = $1
	`, id, signCount)
	if err != nil {
		return fmt.Errorf("failed to update sign count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrCredentialNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM webauthn_credentials
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete credential: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
