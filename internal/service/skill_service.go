package service

import (
	"errors"

	"learnify_backend/internal/model"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"

	"gorm.io/gorm"
)

type SkillService struct {
	SkillRepo *repository.SkillRepository
}

func NewSkillService(skillRepo *repository.SkillRepository) *SkillService {
	return &SkillService{SkillRepo: skillRepo}
}

type SkillCreateRequest struct {
	SkillName string `json:"skillName" binding:"required"`
	Category  string `json:"category" binding:"required,oneof=technical environmental soft-skill career"`
	Level     int    `json:"level" binding:"omitempty,min=1,max=10"`
	Progress  int    `json:"progress" binding:"omitempty,min=0,max=100"`
}

type SkillUpdateRequest struct {
	Level              int `json:"level" binding:"omitempty,min=1,max=10"`
	Progress           int `json:"progress" binding:"omitempty,min=0,max=100"`
	ResourcesCompleted int `json:"resourcesCompleted" binding:"omitempty,min=0"`
}

func (s *SkillService) GetSkills(userID uint) ([]model.Skill, error) {
	return s.SkillRepo.FindByUserID(userID)
}

func (s *SkillService) CreateSkill(userID uint, req SkillCreateRequest) (*model.Skill, error) {
	skill := &model.Skill{
		UserID:    userID,
		SkillName: req.SkillName,
		Category:  req.Category,
		Level:     req.Level,
		Progress:  req.Progress,
	}
	if skill.Level == 0 {
		skill.Level = 1
	}
	if err := s.SkillRepo.Create(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// UpdateSkill 进度满 100 时升一级并清零，等级封顶 10 级
func (s *SkillService) UpdateSkill(userID, skillID uint, req SkillUpdateRequest) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindByIDAndUserID(skillID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Level != 0 {
		skill.Level = req.Level
	}
	if req.Progress != 0 {
		skill.Progress = req.Progress
	}
	if req.ResourcesCompleted != 0 {
		skill.ResourcesCompleted = req.ResourcesCompleted
	}

	if skill.Progress >= 100 && skill.Level < 10 {
		skill.Level++
		skill.Progress = 0
	}

	if err := s.SkillRepo.Update(skill); err != nil {
		return nil, err
	}
	return skill, nil
}
