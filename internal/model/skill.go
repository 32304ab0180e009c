package model

// Skill 用户技能追踪，(user_id, skill_name) 唯一
type Skill struct {
	BaseModel
	UserID             uint   `gorm:"uniqueIndex:idx_user_skill;type:bigint unsigned;not null" json:"userId"`
	SkillName          string `gorm:"uniqueIndex:idx_user_skill;size:100;not null" json:"skillName"`
	Category           string `gorm:"type:enum('technical','environmental','soft-skill','career');not null" json:"category"`
	Level              int    `gorm:"default:1" json:"level"`    // 1-10
	Progress           int    `gorm:"default:0" json:"progress"` // 0-100
	ResourcesCompleted int    `gorm:"default:0" json:"resourcesCompleted"`
}

func (Skill) TableName() string {
	return "skills"
}
