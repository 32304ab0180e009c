package model

import (
	"time"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title      string `gorm:"size:255;not null" json:"title"`
	Category   string `gorm:"type:enum('technical','environmental','general');not null" json:"category"`
	Subject    string `gorm:"size:100;not null" json:"subject"`
	Difficulty string `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	TimeLimit  int    `gorm:"default:15" json:"timeLimit"` // 分钟

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions"`
	Attempts  []QuizAttempt  `gorm:"foreignKey:QuizID" json:"attempts"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// TotalPoints 全部题目的分值之和
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// QuizQuestion 测验题目，Position 保证题目顺序与提交答案顺序一致
type QuizQuestion struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID        uint     `gorm:"index;type:bigint unsigned;not null" json:"quizId"`
	Position      int      `gorm:"not null" json:"position"`
	Question      string   `gorm:"type:text;not null" json:"question"`
	Options       []string `gorm:"serializer:json" json:"options"`
	CorrectAnswer int      `gorm:"not null" json:"-"` // 正确选项下标，不下发给客户端
	Explanation   string   `gorm:"type:text" json:"explanation"`
	Points        int      `gorm:"default:10" json:"points"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAttempt 测验尝试台账，允许同一用户多次尝试，每次独立计分
type QuizAttempt struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID         uint      `gorm:"index;type:bigint unsigned;not null" json:"quizId"`
	UserID         uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int       `gorm:"not null" json:"correctAnswers"`
	TimeTaken      int       `json:"timeTaken"` // 秒
	CompletedAt    time.Time `gorm:"not null" json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
