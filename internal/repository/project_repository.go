package repository

import (
	"learnify_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.DB.Create(project).Error
}

func (r *ProjectRepository) Find(category, difficulty string) ([]model.Project, error) {
	query := r.DB.Model(&model.Project{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var projects []model.Project
	err := query.Order("created_at asc").Find(&projects).Error
	return projects, err
}

// FindByID 带提交记录及提交者信息（populate）
func (r *ProjectRepository) FindByID(id uint) (*model.Project, error) {
	var project model.Project
	err := r.DB.Preload("Submissions.User").First(&project, id).Error
	return &project, err
}

func (r *ProjectRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Project, error) {
	var project model.Project
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, id).Error
	return &project, err
}

func (r *ProjectRepository) HasSubmission(tx *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.ProjectSubmission{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// AppendSubmission 追加提交；(project_id, user_id) 唯一索引兜底并发下的重复提交
func (r *ProjectRepository) AppendSubmission(tx *gorm.DB, submission *model.ProjectSubmission) error {
	return tx.Create(submission).Error
}
