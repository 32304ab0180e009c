package service

import (
	"fmt"
	"time"

	"learnify_backend/internal/model"
)

// 进度规则：用户的积分/等级/徽章只能经由这里的纯函数变化，
// 调用方负责把返回的新状态与台账追加放进同一个事务持久化。

const ecoPointsPerLevel = 500

// BadgeRef 徽章描述（名称+图标）
type BadgeRef struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ChallengeAward 完成挑战后的结算摘要；BadgeAwarded 是挑战定义的徽章描述，
// 与用户是否首次获得无关（历史行为如此）
type ChallengeAward struct {
	PointsEarned      int       `json:"pointsEarned"`
	NewTotalEcoPoints int       `json:"newTotalEcoPoints"`
	BadgeAwarded      *BadgeRef `json:"badgeAwarded,omitempty"`
	NewLevel          int       `json:"newLevel"`
}

// ProjectAward 项目提交后的结算摘要
type ProjectAward struct {
	PointsEarned   int `json:"pointsEarned"`
	NewTotalPoints int `json:"newTotalPoints"`
}

// QuizResult 测验判分结果
type QuizResult struct {
	Score          int     `json:"score"`
	CorrectAnswers int     `json:"correctAnswers"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
}

// EcoLevel 根据环保积分计算等级：每 500 分升一级，起始 1 级
func EcoLevel(ecoPoints int) int {
	return ecoPoints/ecoPointsPerLevel + 1
}

// awardBadge 按名称去重追加徽章，保持获得顺序
func awardBadge(user *model.User, name, icon string, now time.Time) {
	if user.HasBadge(name) {
		return
	}
	user.Badges = append(user.Badges, model.Badge{
		UserID:   user.ID,
		Name:     name,
		Icon:     icon,
		EarnedAt: now,
	})
}

// ApplyChallengeCompletion 结算一次挑战完成：加环保积分、记完成引用、发徽章、升级。
// 不做任何 I/O，只修改传入的 user 副本并返回摘要。
func ApplyChallengeCompletion(user *model.User, challenge *model.Challenge, now time.Time) ChallengeAward {
	user.EcoPoints += challenge.EcoPoints

	var awarded *BadgeRef
	if challenge.BadgeName != "" {
		awardBadge(user, challenge.BadgeName, challenge.BadgeIcon, now)
		awarded = &BadgeRef{Name: challenge.BadgeName, Icon: challenge.BadgeIcon}
	}

	// 等级只升不降
	if newLevel := EcoLevel(user.EcoPoints); newLevel > user.Level {
		user.Level = newLevel
		awardBadge(user, fmt.Sprintf("Eco Level %d", newLevel), "🌱", now)
	}

	return ChallengeAward{
		PointsEarned:      challenge.EcoPoints,
		NewTotalEcoPoints: user.EcoPoints,
		BadgeAwarded:      awarded,
		NewLevel:          user.Level,
	}
}

// ApplyProjectSubmission 结算一次项目提交。completedProjects 为结算后该用户已完成项目数
// （含本次），等于 1 发 "First Project"，达到 5 补发 "Project Master"。
func ApplyProjectSubmission(user *model.User, project *model.Project, completedProjects int, now time.Time) ProjectAward {
	user.SkillPoints += project.Points

	if completedProjects == 1 {
		awardBadge(user, "First Project", "🎯", now)
	}
	if completedProjects >= 5 {
		awardBadge(user, "Project Master", "👨‍💻", now)
	}

	return ProjectAward{
		PointsEarned:   project.Points,
		NewTotalPoints: user.SkillPoints,
	}
}

// ApplyQuizSubmission 结算一次测验尝试；允许重复尝试，每次都计入技能积分
func ApplyQuizSubmission(user *model.User, result QuizResult, now time.Time) {
	user.SkillPoints += result.Score

	if result.TotalQuestions > 0 && result.CorrectAnswers == result.TotalQuestions {
		awardBadge(user, "Perfect Score", "🏆", now)
	}
}

// ScoreQuiz 纯判分：answers 按题目顺序给出选项下标，缺失或越界一律算错
func ScoreQuiz(quiz *model.Quiz, answers []int) QuizResult {
	result := QuizResult{
		TotalQuestions: len(quiz.Questions),
	}

	for i, question := range quiz.Questions {
		if i >= len(answers) {
			break
		}
		if answers[i] >= 0 && answers[i] < len(question.Options) && answers[i] == question.CorrectAnswer {
			result.Score += question.Points
			result.CorrectAnswers++
		}
	}

	if result.TotalQuestions > 0 {
		result.Percentage = float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100
	}
	return result
}
