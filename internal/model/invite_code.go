package model

import "time"

// InviteCode 注册邀请码，注册流程本身在外部系统，这里只管发放和核销状态
type InviteCode struct {
	BaseModel
	Code      string     `gorm:"size:20;uniqueIndex;not null" json:"code"`
	CreatedBy uint       `gorm:"index" json:"createdBy"`
	UsedBy    *uint      `json:"usedBy,omitempty"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

func (InviteCode) TableName() string {
	return "invite_codes"
}

// Usable 未使用且未过期
func (c *InviteCode) Usable(now time.Time) bool {
	return c.UsedBy == nil && now.Before(c.ExpiresAt)
}
