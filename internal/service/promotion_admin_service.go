package service

import (
	"strings"
	"time"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// PromotionAdminService 活动管理服务
type PromotionAdminService struct {
	repo  repository.PromotionRepository
	cache PromotionCacheInvalidator
}

// PromotionCacheInvalidator 活动缓存失效接口，管理端写操作后调用
type PromotionCacheInvalidator interface {
	InvalidateActiveDeals()
}

// NewPromotionAdminService 创建活动管理服务
func NewPromotionAdminService(repo repository.PromotionRepository, cache PromotionCacheInvalidator) *PromotionAdminService {
	return &PromotionAdminService{repo: repo, cache: cache}
}

// PromotionTargetInput 活动目标输入
type PromotionTargetInput struct {
	TargetType string
	TargetID   uint
}

// PromotionInput 创建/更新活动输入
type PromotionInput struct {
	Name            string
	PromotionType   string
	Description     string
	DiscountPercent models.Money
	Priority        int
	StartAt         time.Time
	EndAt           time.Time
	MinOrderAmount  models.Money
	MaxDiscountCap  *models.Money
	MaxTotalBurn    *models.Money
	MaxUses         *int
	MaxUsesPerUser  int
	Targets         []PromotionTargetInput
	CreatedByID     uint
}

var validPromotionTypes = map[string]bool{
	constants.PromotionTypeFlash:    true,
	constants.PromotionTypeTimed:    true,
	constants.PromotionTypeBundle:   true,
	constants.PromotionTypeSeller:   true,
	constants.PromotionTypeCategory: true,
}

var validTargetTypes = map[string]bool{
	constants.PromotionTargetProduct:  true,
	constants.PromotionTargetSKU:      true,
	constants.PromotionTargetCategory: true,
	constants.PromotionTargetSeller:   true,
}

// validatePromotionInput 校验活动输入：
// 折扣率 1-70，时间窗口正序，限时抢购不超过 24 小时。
func validatePromotionInput(input *PromotionInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrPromotionTargetInvalid
	}
	promotionType := strings.ToLower(strings.TrimSpace(input.PromotionType))
	if !validPromotionTypes[promotionType] {
		return ErrPromotionTargetInvalid
	}
	input.PromotionType = promotionType
	pct := input.DiscountPercent.Decimal
	if pct.LessThan(decimal.NewFromInt(1)) || pct.GreaterThan(decimal.NewFromInt(70)) {
		return ErrPromotionPercentInvalid
	}
	if !input.StartAt.Before(input.EndAt) {
		return ErrPromotionWindowInvalid
	}
	if promotionType == constants.PromotionTypeFlash &&
		input.EndAt.Sub(input.StartAt) > 24*time.Hour {
		return ErrFlashWindowTooLong
	}
	if len(input.Targets) == 0 {
		return ErrPromotionTargetInvalid
	}
	for i := range input.Targets {
		targetType := strings.ToLower(strings.TrimSpace(input.Targets[i].TargetType))
		if !validTargetTypes[targetType] || input.Targets[i].TargetID == 0 {
			return ErrPromotionTargetInvalid
		}
		input.Targets[i].TargetType = targetType
	}
	return nil
}

// Create 创建活动
func (s *PromotionAdminService) Create(input PromotionInput) (*models.Promotion, error) {
	if err := validatePromotionInput(&input); err != nil {
		return nil, err
	}

	maxUsesPerUser := input.MaxUsesPerUser
	if maxUsesPerUser <= 0 {
		maxUsesPerUser = 1
	}
	priority := input.Priority
	if priority <= 0 {
		priority = 100
	}

	promotion := &models.Promotion{
		Name:            strings.TrimSpace(input.Name),
		PromotionType:   input.PromotionType,
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		Priority:        priority,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		MinOrderAmount:  input.MinOrderAmount,
		MaxDiscountCap:  input.MaxDiscountCap,
		MaxTotalBurn:    input.MaxTotalBurn,
		MaxUses:         input.MaxUses,
		MaxUsesPerUser:  maxUsesPerUser,
		CreatedByID:     input.CreatedByID,
	}
	for _, target := range input.Targets {
		promotion.Targets = append(promotion.Targets, models.PromotionTarget{
			TargetType: target.TargetType,
			TargetID:   target.TargetID,
		})
	}
	if err := s.repo.Create(promotion); err != nil {
		return nil, err
	}
	s.invalidate()
	return promotion, nil
}

// Update 更新活动（计数字段不可改写）
func (s *PromotionAdminService) Update(id uint, input PromotionInput) (*models.Promotion, error) {
	if id == 0 {
		return nil, ErrPromotionNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPromotionNotFound
	}
	if err := validatePromotionInput(&input); err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.PromotionType = input.PromotionType
	existing.Description = input.Description
	existing.DiscountPercent = input.DiscountPercent
	if input.Priority > 0 {
		existing.Priority = input.Priority
	}
	existing.StartAt = input.StartAt
	existing.EndAt = input.EndAt
	existing.MinOrderAmount = input.MinOrderAmount
	existing.MaxDiscountCap = input.MaxDiscountCap
	existing.MaxTotalBurn = input.MaxTotalBurn
	existing.MaxUses = input.MaxUses
	if input.MaxUsesPerUser > 0 {
		existing.MaxUsesPerUser = input.MaxUsesPerUser
	}
	existing.Targets = nil
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	targets := make([]models.PromotionTarget, 0, len(input.Targets))
	for _, target := range input.Targets {
		targets = append(targets, models.PromotionTarget{
			TargetType: target.TargetType,
			TargetID:   target.TargetID,
		})
	}
	if err := s.repo.ReplaceTargets(existing.ID, targets); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.GetByID(existing.ID)
}

// Delete 删除活动
func (s *PromotionAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrPromotionNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPromotionNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Get 活动详情
func (s *PromotionAdminService) Get(id uint) (*models.Promotion, error) {
	promotion, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// List 活动列表
func (s *PromotionAdminService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	return s.repo.List(filter)
}

func (s *PromotionAdminService) invalidate() {
	if s.cache != nil {
		s.cache.InvalidateActiveDeals()
	}
}
