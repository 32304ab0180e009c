package service

import (
	"testing"
	"time"

	"learnify_backend/internal/config"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-at-least-32-characters-long"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestAuthServiceRegister_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAuthService(db)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(1, "asha@example.com"))

	_, err := svc.Register(RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
	assert.EqualError(t, err, "email already registered")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newAuthService(db)

		mock.ExpectQuery("SELECT (.+) FROM `users`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).
				AddRow(1, "asha@example.com", string(hash)))

		result, err := svc.Login(LoginRequest{Email: "asha@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		// 返回的用户不带密码散列
		assert.Empty(t, result.User.Password)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newAuthService(db)

		mock.ExpectQuery("SELECT (.+) FROM `users`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).
				AddRow(1, "asha@example.com", string(hash)))

		_, err := svc.Login(LoginRequest{Email: "asha@example.com", Password: "nope"})
		assert.ErrorIs(t, err, util.ErrInvalidCredential)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newAuthService(db)

		mock.ExpectQuery("SELECT (.+) FROM `users`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := svc.Login(LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, util.ErrInvalidCredential)
	})
}
