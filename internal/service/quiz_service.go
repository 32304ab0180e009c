package service

import (
	"errors"
	"time"

	"learnify_backend/internal/model"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
	UserRepo *repository.UserRepository
	DB       *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, userRepo *repository.UserRepository, db *gorm.DB) *QuizService {
	return &QuizService{
		QuizRepo: quizRepo,
		UserRepo: userRepo,
		DB:       db,
	}
}

type QuizQuestionInput struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" binding:"min=0"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points" binding:"omitempty,min=1"`
}

type QuizCreateRequest struct {
	Title      string              `json:"title" binding:"required"`
	Category   string              `json:"category" binding:"required,oneof=technical environmental general"`
	Subject    string              `json:"subject" binding:"required"`
	Difficulty string              `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	TimeLimit  int                 `json:"timeLimit" binding:"omitempty,min=1"`
	Questions  []QuizQuestionInput `json:"questions" binding:"required,min=1"`
}

type SubmitQuizRequest struct {
	Answers   []int `json:"answers" binding:"required"`
	TimeTaken int   `json:"timeTaken"`
}

// QuizSubmitResult 一次提交的计分结果与结算后的账户状态
type QuizSubmitResult struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	CorrectAnswers int     `json:"correctAnswers"`
	Percentage     float64 `json:"percentage"`
	PointsEarned   int     `json:"pointsEarned"`
	NewTotalPoints int     `json:"newTotalPoints"`
}

func (s *QuizService) GetQuizzes(category, difficulty, subject string) ([]model.Quiz, error) {
	return s.QuizRepo.Find(category, difficulty, subject)
}

func (s *QuizService) GetQuiz(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

func (s *QuizService) CreateQuiz(req QuizCreateRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		Title:      req.Title,
		Category:   req.Category,
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		TimeLimit:  req.TimeLimit,
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = "medium"
	}
	if quiz.TimeLimit == 0 {
		quiz.TimeLimit = 15
	}
	for i, q := range req.Questions {
		points := q.Points
		if points == 0 {
			points = 10
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Position:      i,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Points:        points,
		})
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Submit 计分并结算技能积分。测验允许重复尝试，每次尝试都独立得分
func (s *QuizService) Submit(userID, quizID uint, req SubmitQuizRequest) (*QuizSubmitResult, error) {
	var out QuizSubmitResult
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		quiz, err := s.QuizRepo.FindByID(quizID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		if err != nil {
			return err
		}

		result := ScoreQuiz(quiz, req.Answers)

		if err := s.QuizRepo.AppendAttempt(tx, &model.QuizAttempt{
			QuizID:         quizID,
			UserID:         userID,
			Score:          result.Score,
			TotalQuestions: result.TotalQuestions,
			CorrectAnswers: result.CorrectAnswers,
			TimeTaken:      req.TimeTaken,
			CompletedAt:    now,
		}); err != nil {
			return err
		}

		var user model.User
		if err := tx.Preload("Badges").First(&user, userID).Error; err != nil {
			return err
		}

		before := len(user.Badges)
		ApplyQuizSubmission(&user, result, now)

		if err := s.UserRepo.MarkCompleted(tx, userID, model.CompletedQuiz, quizID); err != nil {
			return err
		}
		for i := before; i < len(user.Badges); i++ {
			if err := tx.Create(&user.Badges[i]).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			Update("skill_points", user.SkillPoints).Error; err != nil {
			return err
		}

		out = QuizSubmitResult{
			Score:          result.Score,
			TotalQuestions: result.TotalQuestions,
			CorrectAnswers: result.CorrectAnswers,
			Percentage:     result.Percentage,
			PointsEarned:   result.Score,
			NewTotalPoints: user.SkillPoints,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
