package service

import (
	"testing"

	"learnify_backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repository.NewUserRepository(db), nil)
}

func TestClampLeaderboardLimit(t *testing.T) {
	assert.Equal(t, leaderboardSize, clampLeaderboardLimit(0))
	assert.Equal(t, leaderboardSize, clampLeaderboardLimit(-3))
	assert.Equal(t, 10, clampLeaderboardLimit(10))
	assert.Equal(t, leaderboardSize, clampLeaderboardLimit(leaderboardSize))
	// 超过快照长度时收敛到快照长度
	assert.Equal(t, leaderboardSize, clampLeaderboardLimit(500))
}

func TestUserServiceGetLeaderboard_LimitReachesQuery(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newUserService(db)

	mock.ExpectQuery("SELECT (.+) FROM `users`(.+)ORDER BY eco_points DESC LIMIT").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "eco_points"}))

	users, err := svc.GetLeaderboard("eco", 5)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserServiceGetLeaderboard_DefaultAndCap(t *testing.T) {
	t.Run("ZeroFallsBackToDefault", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newUserService(db)

		mock.ExpectQuery("SELECT (.+) FROM `users`(.+)ORDER BY skill_points DESC LIMIT").
			WithArgs(leaderboardSize).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := svc.GetLeaderboard("skill", 0)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OversizedCapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newUserService(db)

		mock.ExpectQuery("SELECT (.+) FROM `users`(.+)ORDER BY skill_points DESC LIMIT").
			WithArgs(leaderboardSize).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := svc.GetLeaderboard("skill", 500)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
