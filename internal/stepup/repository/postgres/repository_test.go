package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	repo "github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/repository/postgres"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
)

var credentialColumns = []string{"id", "user_id", "credential_id", "public_key", "sign_count", "created_at", "device_name"}

// TestGetByID covers the GetByID repository method.
func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	columns := []string{"id", "email", "name", "step_up_enabled", "pin_hash"}
	userID := "user-123"

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(userID, "test@example.com", "Test User", true, "hash"))

		user, err := r.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.True(t, user.StepUpEnabled)
		assert.Equal(t, "hash", user.PinHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name").
			WithArgs(userID).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, userID)
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name").
			WithArgs(userID).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByID(ctx, userID)
		assert.Error(t, err)
	})
}

// TestUpdatePin covers the UpdatePin repository method.
func TestUpdatePin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123", "new-hash", true).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.UpdatePin(ctx, "user-123", "new-hash", true)
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("ghost", "new-hash", true).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := r.UpdatePin(ctx, "ghost", "new-hash", true)
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123", "new-hash", true).
			WillReturnError(fmt.Errorf("db error"))

		err := r.UpdatePin(ctx, "user-123", "new-hash", true)
		assert.Error(t, err)
	})
}

// TestCreateCredential covers the Create repository method.
func TestCreateCredential(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	cred := &domain.Credential{
		UserID:       "user-123",
		CredentialID: []byte("cred-id"),
		PublicKey:    []byte("public-key"),
		SignCounter:  0,
		CreatedAt:    time.Now(),
		DeviceName:   "Yubikey 5C",
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO webauthn_credentials").
			WithArgs(cred.UserID, cred.CredentialID, cred.PublicKey, cred.SignCounter, cred.CreatedAt, cred.DeviceName).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(42))

		err := r.Create(ctx, cred)
		require.NoError(t, err)
		assert.Equal(t, 42, cred.ID)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO webauthn_credentials").
			WithArgs(cred.UserID, cred.CredentialID, cred.PublicKey, cred.SignCounter, cred.CreatedAt, cred.DeviceName).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, cred)
		assert.Error(t, err)
	})
}

// TestGetByUserID covers the GetByUserID repository method.
func TestGetByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	userID := "user-123"

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, credential_id").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(credentialColumns).
				AddRow(2, userID, []byte("cred-2"), []byte("pk-2"), uint32(5), time.Now(), "Phone").
				AddRow(1, userID, []byte("cred-1"), []byte("pk-1"), uint32(12), time.Now(), "Yubikey"))

		creds, err := r.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, creds, 2)
		assert.Equal(t, []byte("cred-2"), creds[0].CredentialID)
		assert.Equal(t, "Yubikey", creds[1].DeviceName)
	})

	t.Run("no credentials", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, credential_id").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(credentialColumns))

		creds, err := r.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, creds)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, credential_id").
			WithArgs(userID).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByUserID(ctx, userID)
		assert.Error(t, err)
	})
}

// TestGetByCredentialID covers the GetByCredentialID repository method.
func TestGetByCredentialID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	userID := "user-123"
	credID := []byte("cred-1")

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, credential_id").
			WithArgs(userID, credID).
			WillReturnRows(pgxmock.NewRows(credentialColumns).
				AddRow(1, userID, credID, []byte("pk-1"), uint32(12), time.Now(), "Yubikey"))

		cred, err := r.GetByCredentialID(ctx, userID, credID)
		require.NoError(t, err)
		assert.Equal(t, 1, cred.ID)
		assert.Equal(t, uint32(12), cred.SignCounter)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, credential_id").
			WithArgs(userID, credID).
			WillReturnError(pgx.ErrNoRows)

		cred, err := r.GetByCredentialID(ctx, userID, credID)
		assert.ErrorIs(t, err, autherror.ErrCredentialNotFound)
		assert.Nil(t, cred)
	})
}

// TestExistsByCredentialID covers the ExistsByCredentialID repository method.
func TestExistsByCredentialID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	credID := []byte("cred-1")

	t.Run("exists", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(credID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := r.ExistsByCredentialID(ctx, credID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("absent", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(credID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := r.ExistsByCredentialID(ctx, credID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(credID).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.ExistsByCredentialID(ctx, credID)
		assert.Error(t, err)
	})
}

// TestUpdateSignCount covers the UpdateSignCount repository method.
func TestUpdateSignCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE webauthn_credentials").
			WithArgs(1, uint32(13)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.UpdateSignCount(ctx, 1, 13)
		assert.NoError(t, err)
	})

	t.Run("missing credential", func(t *testing.T) {
		mock.ExpectExec("UPDATE webauthn_credentials").
			WithArgs(99, uint32(13)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := r.UpdateSignCount(ctx, 99, 13)
		assert.ErrorIs(t, err, autherror.ErrCredentialNotFound)
	})
}

// TestDeleteCredential covers the Delete repository method.
func TestDeleteCredential(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM webauthn_credentials").
			WithArgs(1, "user-123").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		deleted, err := r.Delete(ctx, 1, "user-123")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("not owned", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM webauthn_credentials").
			WithArgs(1, "someone-else").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		deleted, err := r.Delete(ctx, 1, "someone-else")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM webauthn_credentials").
			WithArgs(1, "user-123").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.Delete(ctx, 1, "user-123")
		assert.Error(t, err)
	})
}
