package models

import (
	"time"

	"gorm.io/gorm"
)

// SellerProfile 卖家档案表
type SellerProfile struct {
	ID          uint           `gorm:"primarykey" json:"id"`                      // 主键
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`       // 关联用户ID
	ShopName    string         `gorm:"not null" json:"shop_name"`                 // 店铺名称
	Description string         `gorm:"type:text" json:"description"`              // 店铺简介
	IsVerified  bool           `gorm:"not null;default:false" json:"is_verified"` // 是否已认证
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                            // 软删除时间

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 关联用户
}

// TableName 指定表名
func (SellerProfile) TableName() string {
	return "seller_profiles"
}
