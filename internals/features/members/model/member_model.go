package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MemberStatusActive    = "active"
	MemberStatusInactive  = "inactive"
	MemberStatusSuspended = "suspended"
)

type MemberModel struct {
	MemberID uuid.UUID `gorm:"column:member_id;type:uuid;primaryKey" json:"member_id"`

	MemberFullName string  `gorm:"column:member_full_name;type:varchar(150);not null" json:"member_full_name"`
	MemberEmail    *string `gorm:"column:member_email;type:varchar(150);uniqueIndex:uq_members_email" json:"member_email,omitempty"`
	MemberPhone    *string `gorm:"column:member_phone;type:varchar(30)" json:"member_phone,omitempty"`
	MemberAddress  *string `gorm:"column:member_address;type:text" json:"member_address,omitempty"`

	MemberStatus   string    `gorm:"column:member_status;type:varchar(20);not null;index" json:"member_status"`
	MemberJoinedAt time.Time `gorm:"column:member_joined_at;not null" json:"member_joined_at"`

	MemberCreatedAt time.Time `gorm:"column:member_created_at;autoCreateTime" json:"member_created_at"`
	MemberUpdatedAt time.Time `gorm:"column:member_updated_at;autoUpdateTime" json:"member_updated_at"`
}

func (MemberModel) TableName() string { return "members" }

func (m *MemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.MemberID == uuid.Nil {
		m.MemberID = uuid.New()
	}
	if m.MemberStatus == "" {
		m.MemberStatus = MemberStatusActive
	}
	if m.MemberJoinedAt.IsZero() {
		m.MemberJoinedAt = time.Now().UTC()
	}
	return nil
}

func (m *MemberModel) IsActive() bool { return m.MemberStatus == MemberStatusActive }

func IsValidMemberStatus(s string) bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive, MemberStatusSuspended:
		return true
	}
	return false
}
