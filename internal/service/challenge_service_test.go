package service

import (
	"testing"

	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newChallengeService(db *gorm.DB) *ChallengeService {
	return NewChallengeService(
		repository.NewChallengeRepository(db),
		repository.NewUserRepository(db),
		db,
	)
}

func TestChallengeServiceComplete_DuplicateOneTime(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newChallengeService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `challenges`(.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "eco_points", "action_type"}).
			AddRow(1, "一周绿色通勤", 120, "one-time"))
	mock.ExpectQuery("SELECT count(.+) FROM `challenge_completions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Complete(7, 1, CompleteChallengeRequest{})
	assert.ErrorIs(t, err, util.ErrDuplicateCompletion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeServiceComplete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newChallengeService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `challenges`(.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Complete(7, 99, CompleteChallengeRequest{})
	assert.ErrorIs(t, err, util.ErrChallengeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeServiceComplete_RecurringAllowsRepeat(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newChallengeService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `challenges`(.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "eco_points", "action_type"}).
			AddRow(2, "节水行动", 80, "recurring"))
	// 已有完成记录，但 recurring 类型不拦截
	mock.ExpectQuery("SELECT count(.+) FROM `challenge_completions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO `challenge_completions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "eco_points", "skill_points", "level"}).
			AddRow(7, 100, 0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `badges`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}))
	mock.ExpectExec("INSERT INTO `completed_entities`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	award, err := svc.Complete(7, 2, CompleteChallengeRequest{Notes: "第二周继续"})
	require.NoError(t, err)
	assert.Equal(t, 80, award.PointsEarned)
	assert.Equal(t, 180, award.NewTotalEcoPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}
