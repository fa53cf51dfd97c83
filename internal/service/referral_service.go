package service

import (
	"strings"

	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/google/uuid"
)

// ReferralService 推荐关系服务
type ReferralService struct {
	userRepo     repository.UserRepository
	referralRepo repository.ReferralRewardRepository
}

// NewReferralService 创建推荐关系服务
func NewReferralService(userRepo repository.UserRepository, referralRepo repository.ReferralRewardRepository) *ReferralService {
	return &ReferralService{userRepo: userRepo, referralRepo: referralRepo}
}

// EnsureReferralCode 确保用户持有推荐码，缺失时生成并落库
func (s *ReferralService) EnsureReferralCode(userID uint) (string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if user.ReferralCode != "" {
		return user.ReferralCode, nil
	}
	user.ReferralCode = GenerateReferralCode()
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}
	return user.ReferralCode, nil
}

// AttachReferrer 绑定推荐关系（只允许绑定一次，不允许自荐）
func (s *ReferralService) AttachReferrer(userID uint, code string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.ReferredByID != nil {
		return nil
	}
	referrer, err := s.userRepo.GetByReferralCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	if referrer == nil || referrer.ID == userID {
		return ErrUserNotFound
	}
	user.ReferredByID = &referrer.ID
	return s.userRepo.Update(user)
}

// ListRewards 推荐人的奖励记录
func (s *ReferralService) ListRewards(referrerID uint) ([]models.ReferralReward, error) {
	return s.referralRepo.ListByReferrer(referrerID)
}

// GenerateReferralCode 生成 10 位推荐码（UUID 去连字符截断，全大写）
func GenerateReferralCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:10])
}
