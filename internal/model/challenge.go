package model

import (
	"time"
)

type ChallengeCategory string

const (
	CategoryWasteManagement ChallengeCategory = "waste-management"
	CategoryBiodiversity    ChallengeCategory = "biodiversity"
	CategoryEnergy          ChallengeCategory = "energy"
	CategoryWater           ChallengeCategory = "water"
	CategoryTransportation  ChallengeCategory = "transportation"
)

type ActionType string

const (
	ActionOneTime   ActionType = "one-time" // 每个用户最多完成一次
	ActionRecurring ActionType = "recurring"
	ActionHabit     ActionType = "habit"
)

// swagger:model Challenge
type Challenge struct {
	BaseModel
	Title              string            `gorm:"size:255;not null" json:"title"`
	Description        string            `gorm:"type:text;not null" json:"description"`
	Category           ChallengeCategory `gorm:"type:enum('waste-management','biodiversity','energy','water','transportation');not null" json:"category"`
	Level              int               `gorm:"default:1" json:"level"`
	EcoPoints          int               `gorm:"not null" json:"ecoPoints"`
	ActionType         ActionType        `gorm:"type:enum('one-time','recurring','habit');default:'one-time'" json:"actionType"`
	VerificationMethod string            `gorm:"type:enum('photo','geotag','self-report','none');default:'self-report'" json:"verificationMethod"`
	Instructions       []string          `gorm:"serializer:json" json:"instructions"`
	Tips               []string          `gorm:"serializer:json" json:"tips"`
	Icon               string            `gorm:"size:50" json:"icon"`
	BadgeName          string            `gorm:"size:100" json:"badgeName"` // 可选的完成徽章
	BadgeIcon          string            `gorm:"size:50" json:"badgeIcon"`

	Completions []ChallengeCompletion `gorm:"foreignKey:ChallengeID" json:"completions"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeCompletion 挑战完成台账，只追加不修改
type ChallengeCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID uint      `gorm:"index:idx_challenge_user;type:bigint unsigned;not null" json:"challengeId"`
	UserID      uint      `gorm:"index:idx_challenge_user;type:bigint unsigned;not null" json:"userId"`
	Proof       string    `gorm:"size:255;default:''" json:"proof"` // 图片URL或地理标记
	Notes       string    `gorm:"type:text" json:"notes"`
	Verified    bool      `gorm:"default:true" json:"verified"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (ChallengeCompletion) TableName() string {
	return "challenge_completions"
}

// CompletionByUser 返回指定用户的最早一条完成记录
func (c *Challenge) CompletionByUser(userID uint) *ChallengeCompletion {
	for i := range c.Completions {
		if c.Completions[i].UserID == userID {
			return &c.Completions[i]
		}
	}
	return nil
}
