package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"learnify_backend/internal/model"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"
	"learnify_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	leaderboardSize     = 20
	leaderboardCacheTTL = 2 * time.Hour
)

type UserService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewUserService(userRepo *repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Redis:    rdb,
	}
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Branch    string `json:"branch"`
	Year      string `json:"year" binding:"omitempty,oneof=1 2 3 4"`
	ClassName string `json:"className"`
	Goals     string `json:"goals"`
	Avatar    string `json:"avatar"`
}

// UserProfile 个人主页视图，用户信息加三类已完成实体的 ID 列表
type UserProfile struct {
	model.User
	CompletedChallenges []uint `json:"completedChallenges"`
	CompletedProjects   []uint `json:"completedProjects"`
	CompletedQuizzes    []uint `json:"completedQuizzes"`
}

// UserStats 用户统计，Rank 按技能积分全站排名
type UserStats struct {
	EcoPoints   int   `json:"ecoPoints"`
	SkillPoints int   `json:"skillPoints"`
	Level       int   `json:"level"`
	BadgeCount  int   `json:"badgeCount"`
	Rank        int64 `json:"rank"`
}

func (s *UserService) GetProfile(userID uint) (*UserProfile, error) {
	user, err := s.UserRepo.FindByIDWithBadges(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Password = ""

	profile := &UserProfile{User: *user}
	if profile.CompletedChallenges, err = s.UserRepo.CompletedIDs(userID, model.CompletedChallenge); err != nil {
		return nil, err
	}
	if profile.CompletedProjects, err = s.UserRepo.CompletedIDs(userID, model.CompletedProject); err != nil {
		return nil, err
	}
	if profile.CompletedQuizzes, err = s.UserRepo.CompletedIDs(userID, model.CompletedQuiz); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByIDWithBadges(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Branch != "" {
		user.Branch = req.Branch
	}
	if req.Year != "" {
		user.Year = req.Year
	}
	if req.ClassName != "" {
		user.ClassName = req.ClassName
	}
	if req.Goals != "" {
		user.Goals = req.Goals
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func leaderboardField(leaderboardType string) string {
	if leaderboardType == "eco" {
		return "eco_points"
	}
	return "skill_points"
}

// clampLeaderboardLimit 非法或超出快照长度的 limit 回退为默认值
func clampLeaderboardLimit(limit int) int {
	if limit <= 0 || limit > leaderboardSize {
		return leaderboardSize
	}
	return limit
}

// GetLeaderboard 排行榜，leaderboardType 为 eco 按环保积分，其余按技能积分。
// 优先读快照缓存，未命中或 Redis 不可用时直接查库
func (s *UserService) GetLeaderboard(leaderboardType string, limit int) ([]model.User, error) {
	field := leaderboardField(leaderboardType)
	limit = clampLeaderboardLimit(limit)

	if s.Redis != nil {
		cached, err := s.Redis.Get(context.Background(), "leaderboard:"+field).Result()
		if err == nil {
			var users []model.User
			if json.Unmarshal([]byte(cached), &users) == nil {
				if len(users) > limit {
					users = users[:limit]
				}
				return users, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByPoints(field, limit)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// SnapshotLeaderboards 定时任务入口：把两类排行榜写入 Redis 快照
func (s *UserService) SnapshotLeaderboards(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	for _, field := range []string{"eco_points", "skill_points"} {
		users, err := s.UserRepo.FindTopByPoints(field, leaderboardSize)
		if err != nil {
			logger.Log.Error("Leaderboard snapshot query failed", zap.String("field", field), zap.Error(err))
			continue
		}
		for i := range users {
			users[i].Password = ""
		}
		data, err := json.Marshal(users)
		if err != nil {
			continue
		}
		if err := s.Redis.Set(ctx, "leaderboard:"+field, data, leaderboardCacheTTL).Err(); err != nil {
			logger.Log.Warn("Leaderboard snapshot write failed", zap.String("field", field), zap.Error(err))
		}
	}
}

func (s *UserService) GetStats(userID uint) (*UserStats, error) {
	user, err := s.UserRepo.FindByIDWithBadges(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	ahead, err := s.UserRepo.CountWithMoreSkillPoints(user.SkillPoints)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		EcoPoints:   user.EcoPoints,
		SkillPoints: user.SkillPoints,
		Level:       user.Level,
		BadgeCount:  len(user.Badges),
		Rank:        ahead + 1,
	}, nil
}
