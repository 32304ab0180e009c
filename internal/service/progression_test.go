package service

import (
	"testing"
	"time"

	"learnify_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcoLevel(t *testing.T) {
	assert.Equal(t, 1, EcoLevel(0))
	assert.Equal(t, 1, EcoLevel(499))
	assert.Equal(t, 2, EcoLevel(500))
	assert.Equal(t, 2, EcoLevel(999))
	assert.Equal(t, 3, EcoLevel(1000))
	assert.Equal(t, 11, EcoLevel(5000))
}

func TestApplyChallengeCompletion(t *testing.T) {
	now := time.Now()

	t.Run("AwardsPointsAndKeepsLevel", func(t *testing.T) {
		user := &model.User{EcoPoints: 100, Level: 1}
		challenge := &model.Challenge{Title: "节水行动", EcoPoints: 80}

		award := ApplyChallengeCompletion(user, challenge, now)

		assert.Equal(t, 80, award.PointsEarned)
		assert.Equal(t, 180, award.NewTotalEcoPoints)
		assert.Equal(t, 180, user.EcoPoints)
		assert.Equal(t, 1, award.NewLevel)
		assert.Nil(t, award.BadgeAwarded)
	})

	t.Run("LevelUpAwardsLevelBadge", func(t *testing.T) {
		user := &model.User{EcoPoints: 450, Level: 1}
		challenge := &model.Challenge{Title: "一周绿色通勤", EcoPoints: 120}

		award := ApplyChallengeCompletion(user, challenge, now)

		assert.Equal(t, 570, user.EcoPoints)
		assert.Equal(t, 2, award.NewLevel)
		assert.Equal(t, 2, user.Level)
		assert.True(t, user.HasBadge("Eco Level 2"))
	})

	t.Run("LevelNeverDecreases", func(t *testing.T) {
		// 等级只升不降：即使规则算出的等级低于当前等级也保持不变
		user := &model.User{EcoPoints: 0, Level: 5}
		challenge := &model.Challenge{EcoPoints: 10}

		award := ApplyChallengeCompletion(user, challenge, now)

		assert.Equal(t, 5, award.NewLevel)
		assert.Equal(t, 5, user.Level)
	})

	t.Run("ChallengeBadgeAlwaysReported", func(t *testing.T) {
		user := &model.User{
			EcoPoints: 0,
			Level:     1,
			Badges:    []model.Badge{{Name: "Green Commuter", Icon: "🚌"}},
		}
		challenge := &model.Challenge{EcoPoints: 10, BadgeName: "Green Commuter", BadgeIcon: "🚌"}

		award := ApplyChallengeCompletion(user, challenge, now)

		// 徽章描述始终返回，但重复获得不会追加新徽章
		require.NotNil(t, award.BadgeAwarded)
		assert.Equal(t, "Green Commuter", award.BadgeAwarded.Name)
		assert.Len(t, user.Badges, 1)
	})
}

func TestApplyProjectSubmission(t *testing.T) {
	now := time.Now()

	t.Run("FirstProjectBadge", func(t *testing.T) {
		user := &model.User{SkillPoints: 0}
		project := &model.Project{Points: 100}

		award := ApplyProjectSubmission(user, project, 1, now)

		assert.Equal(t, 100, award.PointsEarned)
		assert.Equal(t, 100, award.NewTotalPoints)
		assert.True(t, user.HasBadge("First Project"))
		assert.False(t, user.HasBadge("Project Master"))
	})

	t.Run("ProjectMasterAtFive", func(t *testing.T) {
		user := &model.User{SkillPoints: 400}
		project := &model.Project{Points: 150}

		award := ApplyProjectSubmission(user, project, 5, now)

		assert.Equal(t, 550, user.SkillPoints)
		assert.Equal(t, 550, award.NewTotalPoints)
		assert.True(t, user.HasBadge("Project Master"))
	})

	t.Run("MiddleSubmissionsNoBadge", func(t *testing.T) {
		user := &model.User{SkillPoints: 100}
		project := &model.Project{Points: 100}

		ApplyProjectSubmission(user, project, 3, now)

		assert.Empty(t, user.Badges)
	})
}

func TestApplyQuizSubmission(t *testing.T) {
	now := time.Now()

	t.Run("PerfectScoreBadge", func(t *testing.T) {
		user := &model.User{SkillPoints: 0}
		result := QuizResult{Score: 30, CorrectAnswers: 3, TotalQuestions: 3}

		ApplyQuizSubmission(user, result, now)

		assert.Equal(t, 30, user.SkillPoints)
		assert.True(t, user.HasBadge("Perfect Score"))
	})

	t.Run("PartialScoreNoBadge", func(t *testing.T) {
		user := &model.User{SkillPoints: 10}
		result := QuizResult{Score: 20, CorrectAnswers: 2, TotalQuestions: 3}

		ApplyQuizSubmission(user, result, now)

		assert.Equal(t, 30, user.SkillPoints)
		assert.False(t, user.HasBadge("Perfect Score"))
	})

	t.Run("PerfectScoreBadgeNotDuplicated", func(t *testing.T) {
		user := &model.User{Badges: []model.Badge{{Name: "Perfect Score", Icon: "🏆"}}}
		result := QuizResult{Score: 10, CorrectAnswers: 1, TotalQuestions: 1}

		ApplyQuizSubmission(user, result, now)

		assert.Len(t, user.Badges, 1)
	})
}

func TestScoreQuiz(t *testing.T) {
	options := []string{"A", "B", "C", "D"}
	quiz := &model.Quiz{
		Questions: []model.QuizQuestion{
			{Position: 0, Options: options, CorrectAnswer: 0, Points: 10},
			{Position: 1, Options: options, CorrectAnswer: 1, Points: 10},
			{Position: 2, Options: options, CorrectAnswer: 3, Points: 10},
		},
	}

	t.Run("PartialAnswers", func(t *testing.T) {
		result := ScoreQuiz(quiz, []int{0, 1, 2})

		assert.Equal(t, 20, result.Score)
		assert.Equal(t, 2, result.CorrectAnswers)
		assert.Equal(t, 3, result.TotalQuestions)
		assert.InDelta(t, 66.67, result.Percentage, 0.01)
	})

	t.Run("AllCorrect", func(t *testing.T) {
		result := ScoreQuiz(quiz, []int{0, 1, 3})

		assert.Equal(t, 30, result.Score)
		assert.Equal(t, 3, result.CorrectAnswers)
		assert.InDelta(t, 100.0, result.Percentage, 0.01)
	})

	t.Run("MissingAnswersAreIncorrect", func(t *testing.T) {
		result := ScoreQuiz(quiz, []int{0})

		assert.Equal(t, 10, result.Score)
		assert.Equal(t, 1, result.CorrectAnswers)
	})

	t.Run("EmptyQuiz", func(t *testing.T) {
		result := ScoreQuiz(&model.Quiz{}, nil)

		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 0, result.TotalQuestions)
		assert.Equal(t, 0.0, result.Percentage)
	})
}
