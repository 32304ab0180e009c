package repository

import (
	"learnify_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) Find(category string, level int) ([]model.Challenge, error) {
	query := r.DB.Model(&model.Challenge{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if level > 0 {
		query = query.Where("level = ?", level)
	}

	var challenges []model.Challenge
	err := query.Order("created_at asc").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.Preload("Completions").First(&challenge, id).Error
	return &challenge, err
}

// FindByIDForUpdate 事务内加行锁取挑战，防止同一用户并发重复完成
func (r *ChallengeRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&challenge, id).Error
	return &challenge, err
}

// HasCompletion 台账里是否已有该用户的完成记录
func (r *ChallengeRepository) HasCompletion(tx *gorm.DB, challengeID, userID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.ChallengeCompletion{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count).Error
	return count > 0, err
}

// AppendCompletion 追加台账记录，不修改已有行
func (r *ChallengeRepository) AppendCompletion(tx *gorm.DB, completion *model.ChallengeCompletion) error {
	return tx.Create(completion).Error
}

// FindCompletedByUser 用户完成过的所有挑战（含完成记录）
func (r *ChallengeRepository) FindCompletedByUser(userID uint) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.
		Joins("JOIN challenge_completions ON challenge_completions.challenge_id = challenges.id").
		Where("challenge_completions.user_id = ?", userID).
		Group("challenges.id").
		Preload("Completions", "user_id = ?", userID).
		Find(&challenges).Error
	return challenges, err
}
