package service

import (
	"strings"
	"time"

	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountCodeAdminService 折扣码管理服务
type DiscountCodeAdminService struct {
	repo repository.DiscountCodeRepository
}

// NewDiscountCodeAdminService 创建折扣码管理服务
func NewDiscountCodeAdminService(repo repository.DiscountCodeRepository) *DiscountCodeAdminService {
	return &DiscountCodeAdminService{repo: repo}
}

// DiscountCodeInput 创建/更新折扣码输入
type DiscountCodeInput struct {
	Code            string
	Description     string
	DiscountPercent *models.Money
	DiscountAmount  *models.Money
	MinOrderAmount  models.Money
	MaxUses         *int
	StartAt         time.Time
	EndAt           time.Time
	CreatedByID     uint
}

// validateDiscountCodeInput 校验折扣码输入：
// 百分比与固定金额二选一且为正，时间窗口正序。
func validateDiscountCodeInput(input *DiscountCodeInput) error {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if input.Code == "" {
		return ErrDiscountCodeNotFound
	}
	hasPercent := input.DiscountPercent != nil && input.DiscountPercent.Decimal.GreaterThan(decimal.Zero)
	hasAmount := input.DiscountAmount != nil && input.DiscountAmount.Decimal.GreaterThan(decimal.Zero)
	if hasPercent == hasAmount {
		return ErrDiscountValueInvalid
	}
	if hasPercent && input.DiscountPercent.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrDiscountValueInvalid
	}
	if !input.StartAt.Before(input.EndAt) {
		return ErrPromotionWindowInvalid
	}
	return nil
}

// Create 创建折扣码
func (s *DiscountCodeAdminService) Create(input DiscountCodeInput) (*models.DiscountCode, error) {
	if err := validateDiscountCodeInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDiscountCodeExists
	}

	code := &models.DiscountCode{
		Code:            input.Code,
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		MinOrderAmount:  input.MinOrderAmount,
		MaxUses:         input.MaxUses,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		CreatedByID:     input.CreatedByID,
	}
	if err := s.repo.Create(code); err != nil {
		return nil, err
	}
	return code, nil
}

// Update 更新折扣码（已用次数不可改写）
func (s *DiscountCodeAdminService) Update(id uint, input DiscountCodeInput) (*models.DiscountCode, error) {
	if id == 0 {
		return nil, ErrDiscountCodeNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrDiscountCodeNotFound
	}
	if err := validateDiscountCodeInput(&input); err != nil {
		return nil, err
	}
	if input.Code != existing.Code {
		dup, err := s.repo.GetByCode(input.Code)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrDiscountCodeExists
		}
	}

	existing.Code = input.Code
	existing.Description = input.Description
	existing.DiscountPercent = input.DiscountPercent
	existing.DiscountAmount = input.DiscountAmount
	existing.MinOrderAmount = input.MinOrderAmount
	existing.MaxUses = input.MaxUses
	existing.StartAt = input.StartAt
	existing.EndAt = input.EndAt
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除折扣码
func (s *DiscountCodeAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrDiscountCodeNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrDiscountCodeNotFound
	}
	return s.repo.Delete(id)
}

// Get 折扣码详情
func (s *DiscountCodeAdminService) Get(id uint) (*models.DiscountCode, error) {
	code, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrDiscountCodeNotFound
	}
	return code, nil
}

// List 折扣码列表
func (s *DiscountCodeAdminService) List(filter repository.DiscountCodeListFilter) ([]models.DiscountCode, int64, error) {
	return s.repo.List(filter)
}
