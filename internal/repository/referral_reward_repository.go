package repository

import (
	"errors"

	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
)

// ReferralRewardRepository 推荐奖励数据访问接口
type ReferralRewardRepository interface {
	GetByReferee(refereeID uint) (*models.ReferralReward, error)
	Create(reward *models.ReferralReward) error
	ListByReferrer(referrerID uint) ([]models.ReferralReward, error)
	WithTx(tx *gorm.DB) *GormReferralRewardRepository
}

// GormReferralRewardRepository GORM 实现
type GormReferralRewardRepository struct {
	db *gorm.DB
}

// NewReferralRewardRepository 创建推荐奖励仓库
func NewReferralRewardRepository(db *gorm.DB) *GormReferralRewardRepository {
	return &GormReferralRewardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReferralRewardRepository) WithTx(tx *gorm.DB) *GormReferralRewardRepository {
	if tx == nil {
		return r
	}
	return &GormReferralRewardRepository{db: tx}
}

// GetByReferee 根据被推荐人获取奖励记录（唯一）
func (r *GormReferralRewardRepository) GetByReferee(refereeID uint) (*models.ReferralReward, error) {
	var reward models.ReferralReward
	if err := r.db.Where("referee_id = ?", refereeID).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// Create 写入奖励记录
func (r *GormReferralRewardRepository) Create(reward *models.ReferralReward) error {
	return r.db.Create(reward).Error
}

// ListByReferrer 推荐人的奖励记录列表
func (r *GormReferralRewardRepository) ListByReferrer(referrerID uint) ([]models.ReferralReward, error) {
	var rewards []models.ReferralReward
	if err := r.db.Where("referrer_id = ?", referrerID).
		Order("id DESC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}
