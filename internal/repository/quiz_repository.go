package repository

import (
	"learnify_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Find(category, difficulty, subject string) ([]model.Quiz, error) {
	query := r.DB.Model(&model.Quiz{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var quizzes []model.Quiz
	err := query.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Order("created_at asc").Find(&quizzes).Error
	return quizzes, err
}

// FindByID 题目按 position 排序加载，保证判分顺序稳定
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).First(&quiz, id).Error
	return &quiz, err
}

// AppendAttempt 追加尝试台账，无唯一性约束，允许重复尝试
func (r *QuizRepository) AppendAttempt(tx *gorm.DB, attempt *model.QuizAttempt) error {
	return tx.Create(attempt).Error
}
