package repository

import (
	"learnify_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// FindByIDWithBadges 带徽章加载，徽章按获得时间排序
func (r *UserRepository) FindByIDWithBadges(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Badges", func(db *gorm.DB) *gorm.DB {
		return db.Order("earned_at asc, id asc")
	}).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// UpdateLastSeen 只刷新活跃时间戳，不触发其他字段更新
func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_active_at", gorm.Expr("NOW()")).Error
}

// FindTopByPoints 按指定积分字段取排行榜，field 只能是 eco_points 或 skill_points
func (r *UserRepository) FindTopByPoints(field string, limit int) ([]model.User, error) {
	if field != "eco_points" {
		field = "skill_points"
	}
	var users []model.User
	err := r.DB.Preload("Badges").Order(field + " DESC").Limit(limit).Find(&users).Error
	return users, err
}

// CountWithMoreSkillPoints 用于计算排名
func (r *UserRepository) CountWithMoreSkillPoints(points int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("skill_points > ?", points).Count(&count).Error
	return count, err
}

// CompletedIDs 返回用户已完成的某类实体 ID 集合
func (r *UserRepository) CompletedIDs(userID uint, entityType model.CompletedEntityType) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.CompletedEntity{}).
		Where("user_id = ? AND entity_type = ?", userID, entityType).
		Order("id asc").
		Pluck("entity_id", &ids).Error
	return ids, err
}

func (r *UserRepository) CountCompleted(userID uint, entityType model.CompletedEntityType) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CompletedEntity{}).
		Where("user_id = ? AND entity_type = ?", userID, entityType).
		Count(&count).Error
	return count, err
}

// MarkCompleted 幂等记录完成引用，靠 (user, type, entity) 唯一索引去重
func (r *UserRepository) MarkCompleted(tx *gorm.DB, userID uint, entityType model.CompletedEntityType, entityID uint) error {
	ref := model.CompletedEntity{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ref).Error
}
