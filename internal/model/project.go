package model

import (
	"time"
)

type ProjectResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"` // video, article, tutorial
}

type ProjectMilestone struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// swagger:model Project
type Project struct {
	BaseModel
	Title         string             `gorm:"size:255;not null" json:"title"`
	Description   string             `gorm:"type:text;not null" json:"description"`
	Category      string             `gorm:"type:enum('career','sustainability','hybrid');not null" json:"category"`
	Difficulty    string             `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"difficulty"`
	Technologies  []string           `gorm:"serializer:json" json:"technologies"`
	EstimatedTime string             `gorm:"size:50;default:'2 weeks'" json:"estimatedTime"`
	Points        int                `gorm:"default:100" json:"points"`
	Resources     []ProjectResource  `gorm:"serializer:json" json:"resources"`
	Milestones    []ProjectMilestone `gorm:"serializer:json" json:"milestones"`

	Submissions []ProjectSubmission `gorm:"foreignKey:ProjectID" json:"submissions"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectSubmission 项目提交台账；(project_id, user_id) 唯一索引是防并发重复提交的最终保证
type ProjectSubmission struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID   uint      `gorm:"uniqueIndex:idx_project_user;type:bigint unsigned;not null" json:"projectId"`
	UserID      uint      `gorm:"uniqueIndex:idx_project_user;type:bigint unsigned;not null" json:"userId"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	ProjectURL  string    `gorm:"size:255;default:''" json:"projectUrl"`
	GithubURL   string    `gorm:"size:255;default:''" json:"githubUrl"`
	Notes       string    `gorm:"type:text" json:"notes"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
}

func (ProjectSubmission) TableName() string {
	return "project_submissions"
}

// SubmissionByUser 返回指定用户的提交记录
func (p *Project) SubmissionByUser(userID uint) *ProjectSubmission {
	for i := range p.Submissions {
		if p.Submissions[i].UserID == userID {
			return &p.Submissions[i]
		}
	}
	return nil
}
