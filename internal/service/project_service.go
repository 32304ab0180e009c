package service

import (
	"errors"
	"time"

	"learnify_backend/internal/model"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"

	"gorm.io/gorm"
)

type ProjectService struct {
	ProjectRepo *repository.ProjectRepository
	UserRepo    *repository.UserRepository
	DB          *gorm.DB
}

func NewProjectService(projectRepo *repository.ProjectRepository, userRepo *repository.UserRepository, db *gorm.DB) *ProjectService {
	return &ProjectService{
		ProjectRepo: projectRepo,
		UserRepo:    userRepo,
		DB:          db,
	}
}

type ProjectCreateRequest struct {
	Title         string                   `json:"title" binding:"required"`
	Description   string                   `json:"description" binding:"required"`
	Category      string                   `json:"category" binding:"required,oneof=career sustainability hybrid"`
	Difficulty    string                   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Technologies  []string                 `json:"technologies"`
	EstimatedTime string                   `json:"estimatedTime"`
	Points        int                      `json:"points" binding:"omitempty,min=1"`
	Resources     []model.ProjectResource  `json:"resources"`
	Milestones    []model.ProjectMilestone `json:"milestones"`
}

type SubmitProjectRequest struct {
	ProjectURL string `json:"projectUrl"`
	GithubURL  string `json:"githubUrl"`
	Notes      string `json:"notes"`
}

func (s *ProjectService) GetProjects(category, difficulty string) ([]model.Project, error) {
	return s.ProjectRepo.Find(category, difficulty)
}

func (s *ProjectService) GetProject(id uint) (*model.Project, error) {
	project, err := s.ProjectRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProjectNotFound
	}
	return project, err
}

func (s *ProjectService) CreateProject(req ProjectCreateRequest) (*model.Project, error) {
	project := &model.Project{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		Technologies:  req.Technologies,
		EstimatedTime: req.EstimatedTime,
		Points:        req.Points,
		Resources:     req.Resources,
		Milestones:    req.Milestones,
	}
	if project.Difficulty == "" {
		project.Difficulty = "beginner"
	}
	if project.EstimatedTime == "" {
		project.EstimatedTime = "2 weeks"
	}
	if project.Points == 0 {
		project.Points = 100
	}

	if err := s.ProjectRepo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Submit 提交项目并结算技能积分；同一项目重复提交返回 util.ErrDuplicateCompletion
func (s *ProjectService) Submit(userID, projectID uint, req SubmitProjectRequest) (*ProjectAward, error) {
	var award ProjectAward
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		project, err := s.ProjectRepo.FindByIDForUpdate(tx, projectID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProjectNotFound
		}
		if err != nil {
			return err
		}

		submitted, err := s.ProjectRepo.HasSubmission(tx, projectID, userID)
		if err != nil {
			return err
		}
		if submitted {
			return util.ErrDuplicateCompletion
		}

		if err := s.ProjectRepo.AppendSubmission(tx, &model.ProjectSubmission{
			ProjectID:   projectID,
			UserID:      userID,
			ProjectURL:  req.ProjectURL,
			GithubURL:   req.GithubURL,
			Notes:       req.Notes,
			SubmittedAt: now,
		}); err != nil {
			return err
		}

		var user model.User
		if err := tx.Preload("Badges").First(&user, userID).Error; err != nil {
			return err
		}

		if err := s.UserRepo.MarkCompleted(tx, userID, model.CompletedProject, projectID); err != nil {
			return err
		}
		// 计数要在本事务里做，否则看不到刚写入的完成记录
		var completedProjects int64
		if err := tx.Model(&model.CompletedEntity{}).
			Where("user_id = ? AND entity_type = ?", userID, model.CompletedProject).
			Count(&completedProjects).Error; err != nil {
			return err
		}

		before := len(user.Badges)
		award = ApplyProjectSubmission(&user, project, int(completedProjects), now)

		for i := before; i < len(user.Badges); i++ {
			if err := tx.Create(&user.Badges[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.User{}).Where("id = ?", userID).
			Update("skill_points", user.SkillPoints).Error
	})
	if err != nil {
		return nil, err
	}
	return &award, nil
}
