package repository

import (
	"learnify_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) FindByUserID(userID uint) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) FindByIDAndUserID(id, userID uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&skill).Error
	return &skill, err
}

func (r *SkillRepository) Create(skill *model.Skill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) Update(skill *model.Skill) error {
	return r.DB.Save(skill).Error
}
