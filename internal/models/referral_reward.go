package models

import "time"

// ReferralReward 推荐奖励表
//
// 被推荐人首单完成时双方各得 1000 积分，
// referee_id 唯一索引保证同一被推荐人只发一次。
type ReferralReward struct {
	ID         uint      `gorm:"primarykey" json:"id"`                      // 主键
	ReferrerID uint      `gorm:"index;not null" json:"referrer_id"`         // 推荐人ID
	RefereeID  uint      `gorm:"uniqueIndex;not null" json:"referee_id"`    // 被推荐人ID
	OrderID    uint      `gorm:"index;not null" json:"order_id"`            // 触发奖励的订单ID
	Points     Money     `gorm:"type:decimal(20,2);not null" json:"points"` // 双方各自获得的积分数
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                   // 创建时间
}

// TableName 指定表名
func (ReferralReward) TableName() string {
	return "referral_rewards"
}
