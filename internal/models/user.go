package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                                // 主键
	Email                string         `gorm:"uniqueIndex;not null" json:"email"`                                   // 邮箱
	PasswordHash         string         `gorm:"not null" json:"-"`                                                   // 密码哈希（不返回给前端）
	DisplayName          string         `gorm:"default:''" json:"display_name"`                                      // 昵称
	Status               string         `gorm:"default:'active'" json:"status"`                                      // 账号状态
	ReferralCode         string         `gorm:"type:varchar(12);uniqueIndex" json:"referral_code"`                   // 推荐码
	ReferredByID         *uint          `gorm:"index" json:"referred_by_id,omitempty"`                               // 推荐人ID
	LoyaltyPointsBalance Money          `gorm:"type:decimal(20,2);not null;default:0" json:"loyalty_points_balance"` // 积分余额（1 积分 = 1 TZS）
	LastLoginAt          *time.Time     `json:"last_login_at"`                                                       // 最后登录时间
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                             // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                                             // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                                      // 软删除时间

	ReferredBy *User `gorm:"foreignKey:ReferredByID" json:"referred_by,omitempty"` // 关联推荐人
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
