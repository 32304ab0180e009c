package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100;unique;not null" json:"email"`
	Password  string `gorm:"size:100;not null" json:"-"`
	Branch    string `gorm:"size:100;default:''" json:"branch"`
	Year      string `gorm:"type:enum('','1','2','3','4');default:''" json:"year"`
	ClassName string `gorm:"size:100;default:''" json:"className"`
	Goals     string `gorm:"type:text" json:"goals"`
	Avatar    string `gorm:"size:255;default:''" json:"avatar"`

	LastActiveAt *time.Time `json:"lastActiveAt"`

	// 进度状态：只允许 progression 规则函数修改
	EcoPoints   int `gorm:"default:0" json:"ecoPoints"`   // 环保积分，决定等级
	SkillPoints int `gorm:"default:0" json:"skillPoints"` // 技能积分（项目/测验）
	Level       int `gorm:"default:1" json:"level"`

	Badges []Badge `gorm:"foreignKey:UserID" json:"badges"`
}

func (User) TableName() string {
	return "users"
}

// Badge 用户徽章，(user_id, name) 唯一，先获得的排在前面
type Badge struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID   uint      `gorm:"uniqueIndex:idx_user_badge;type:bigint unsigned;not null" json:"-"`
	Name     string    `gorm:"uniqueIndex:idx_user_badge;size:100;not null" json:"name"`
	Icon     string    `gorm:"size:50" json:"icon"`
	EarnedAt time.Time `gorm:"not null" json:"earnedAt"`
}

func (Badge) TableName() string {
	return "badges"
}

// HasBadge 按名称判断是否已拥有徽章
func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

type CompletedEntityType string

const (
	CompletedChallenge CompletedEntityType = "challenge"
	CompletedProject   CompletedEntityType = "project"
	CompletedQuiz      CompletedEntityType = "quiz"
)

// CompletedEntity 用户已完成实体的引用集合，(user, type, entity) 唯一保证幂等插入
type CompletedEntity struct {
	ID         uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time           `json:"createdAt"`
	UserID     uint                `gorm:"uniqueIndex:idx_user_entity;type:bigint unsigned" json:"userId"`
	EntityType CompletedEntityType `gorm:"uniqueIndex:idx_user_entity;size:20" json:"entityType"`
	EntityID   uint                `gorm:"uniqueIndex:idx_user_entity;type:bigint unsigned" json:"entityId"`
}

func (CompletedEntity) TableName() string {
	return "completed_entities"
}
