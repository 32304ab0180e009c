package database

import (
	"fmt"
	"log"

	"learnify_backend/internal/config"
	"learnify_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立连接。migrate 为 true 时执行 AutoMigrate 并补种默认数据，
// release 模式默认跳过迁移，由 -migrate 参数显式开启
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Badge{},
		&model.CompletedEntity{},
		&model.Challenge{},
		&model.ChallengeCompletion{},
		&model.Project{},
		&model.ProjectSubmission{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.Post{},
		&model.Reply{},
		&model.PostUpvote{},
		&model.Skill{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults 空库时插入默认挑战，方便本地开发直接体验完整流程
func seedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Challenge{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Challenge{
		{
			Title:       "校园垃圾分类打卡",
			Description: "将一天产生的垃圾按可回收/厨余/有害/其他分类投放，并拍照记录。",
			Category:    model.CategoryWasteManagement,
			Level:       1,
			EcoPoints:   50,
			ActionType:  model.ActionHabit,
			Icon:        "♻️",
		},
		{
			Title:              "一周绿色通勤",
			Description:        "连续一周步行、骑行或乘坐公共交通上下学。",
			Category:           model.CategoryTransportation,
			Level:              2,
			EcoPoints:          120,
			ActionType:         model.ActionOneTime,
			VerificationMethod: "self-report",
			Icon:               "🚲",
			BadgeName:          "Green Commuter",
			BadgeIcon:          "🚌",
		},
		{
			Title:       "节水行动",
			Description: "记录并减少一周的用水量，提交前后对比。",
			Category:    model.CategoryWater,
			Level:       1,
			EcoPoints:   80,
			ActionType:  model.ActionRecurring,
			Icon:        "💧",
		},
	}
	for i := range defaults {
		db.Create(&defaults[i])
	}
}
