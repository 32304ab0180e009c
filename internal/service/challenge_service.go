package service

import (
	"errors"
	"time"

	"learnify_backend/internal/model"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"

	"gorm.io/gorm"
)

type ChallengeService struct {
	ChallengeRepo *repository.ChallengeRepository
	UserRepo      *repository.UserRepository
	DB            *gorm.DB
}

func NewChallengeService(challengeRepo *repository.ChallengeRepository, userRepo *repository.UserRepository, db *gorm.DB) *ChallengeService {
	return &ChallengeService{
		ChallengeRepo: challengeRepo,
		UserRepo:      userRepo,
		DB:            db,
	}
}

type ChallengeCreateRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	Category           string   `json:"category" binding:"required,oneof=waste-management biodiversity energy water transportation"`
	Level              int      `json:"level" binding:"omitempty,min=1,max=5"`
	EcoPoints          int      `json:"ecoPoints" binding:"required,min=1"`
	ActionType         string   `json:"actionType" binding:"omitempty,oneof=one-time recurring habit"`
	VerificationMethod string   `json:"verificationMethod" binding:"omitempty,oneof=photo geotag self-report none"`
	Instructions       []string `json:"instructions"`
	Tips               []string `json:"tips"`
	Icon               string   `json:"icon"`
	BadgeName          string   `json:"badgeName"`
	BadgeIcon          string   `json:"badgeIcon"`
}

type CompleteChallengeRequest struct {
	Proof string `json:"proof"`
	Notes string `json:"notes"`
}

// UserChallengeHistory 用户完成过的挑战及其完成记录
type UserChallengeHistory struct {
	Challenge  model.Challenge            `json:"challenge"`
	Completion *model.ChallengeCompletion `json:"completion"`
}

func (s *ChallengeService) GetChallenges(category string, level int) ([]model.Challenge, error) {
	return s.ChallengeRepo.Find(category, level)
}

func (s *ChallengeService) GetChallenge(id uint) (*model.Challenge, error) {
	challenge, err := s.ChallengeRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChallengeNotFound
	}
	return challenge, err
}

func (s *ChallengeService) CreateChallenge(req ChallengeCreateRequest) (*model.Challenge, error) {
	challenge := &model.Challenge{
		Title:              req.Title,
		Description:        req.Description,
		Category:           model.ChallengeCategory(req.Category),
		Level:              req.Level,
		EcoPoints:          req.EcoPoints,
		ActionType:         model.ActionType(req.ActionType),
		VerificationMethod: req.VerificationMethod,
		Instructions:       req.Instructions,
		Tips:               req.Tips,
		Icon:               req.Icon,
		BadgeName:          req.BadgeName,
		BadgeIcon:          req.BadgeIcon,
	}
	if challenge.Level == 0 {
		challenge.Level = 1
	}
	if challenge.ActionType == "" {
		challenge.ActionType = model.ActionOneTime
	}
	if challenge.VerificationMethod == "" {
		challenge.VerificationMethod = "self-report"
	}

	if err := s.ChallengeRepo.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Complete 完成挑战：重复检查、台账追加、积分结算、用户落库在同一事务内，
// 失败时整体回滚，不会出现只记台账不加分的中间状态
func (s *ChallengeService) Complete(userID, challengeID uint, req CompleteChallengeRequest) (*ChallengeAward, error) {
	var award ChallengeAward
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		challenge, err := s.ChallengeRepo.FindByIDForUpdate(tx, challengeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		if err != nil {
			return err
		}

		// 一次性挑战每用户只能完成一次；行锁之下该检查对并发重试是安全的
		completed, err := s.ChallengeRepo.HasCompletion(tx, challengeID, userID)
		if err != nil {
			return err
		}
		if completed && challenge.ActionType == model.ActionOneTime {
			return util.ErrDuplicateCompletion
		}

		if err := s.ChallengeRepo.AppendCompletion(tx, &model.ChallengeCompletion{
			ChallengeID: challengeID,
			UserID:      userID,
			Proof:       req.Proof,
			Notes:       req.Notes,
			Verified:    true,
			CompletedAt: now,
		}); err != nil {
			return err
		}

		var user model.User
		if err := tx.Preload("Badges").First(&user, userID).Error; err != nil {
			return err
		}

		before := len(user.Badges)
		award = ApplyChallengeCompletion(&user, challenge, now)

		if err := s.UserRepo.MarkCompleted(tx, userID, model.CompletedChallenge, challengeID); err != nil {
			return err
		}
		for i := before; i < len(user.Badges); i++ {
			if err := tx.Create(&user.Badges[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"eco_points": user.EcoPoints,
				"level":      user.Level,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &award, nil
}

// GetUserChallenges 用户的挑战完成历史
func (s *ChallengeService) GetUserChallenges(userID uint) ([]UserChallengeHistory, error) {
	challenges, err := s.ChallengeRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	history := make([]UserChallengeHistory, len(challenges))
	for i, challenge := range challenges {
		history[i] = UserChallengeHistory{
			Challenge:  challenge,
			Completion: challenge.CompletionByUser(userID),
		}
	}
	return history, nil
}
