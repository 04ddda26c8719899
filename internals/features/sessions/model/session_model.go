package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionModel struct {
	SessionID uuid.UUID `gorm:"column:session_id;type:uuid;primaryKey" json:"session_id"`

	SessionTontineID uuid.UUID `gorm:"column:session_tontine_id;type:uuid;not null;uniqueIndex:uq_sessions_tontine_number,priority:1" json:"session_tontine_id"`
	SessionNumber    int       `gorm:"column:session_number;not null;uniqueIndex:uq_sessions_tontine_number,priority:2" json:"session_number"`

	SessionDate     time.Time `gorm:"column:session_date;not null" json:"session_date"`
	SessionLocation *string   `gorm:"column:session_location;type:varchar(200)" json:"session_location,omitempty"`
	SessionStatus   string    `gorm:"column:session_status;type:varchar(20);not null;index" json:"session_status"`

	SessionTotalContributions decimal.Decimal `gorm:"column:session_total_contributions;type:numeric(14,2);not null" json:"session_total_contributions"`
	SessionTotalPenalties     decimal.Decimal `gorm:"column:session_total_penalties;type:numeric(14,2);not null" json:"session_total_penalties"`
	SessionAttendanceCount    int             `gorm:"column:session_attendance_count;not null" json:"session_attendance_count"`

	// Snapshot written at close time (absentees, penalty amount used).
	SessionCloseSummary datatypes.JSONMap `gorm:"column:session_close_summary" json:"session_close_summary,omitempty"`
	SessionClosedAt     *time.Time        `gorm:"column:session_closed_at" json:"session_closed_at,omitempty"`

	SessionCreatedAt time.Time `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt time.Time `gorm:"column:session_updated_at;autoUpdateTime" json:"session_updated_at"`
}

func (SessionModel) TableName() string { return "sessions" }

func (s *SessionModel) BeforeCreate(tx *gorm.DB) error {
	if s.SessionID == uuid.Nil {
		s.SessionID = uuid.New()
	}
	if s.SessionStatus == "" {
		s.SessionStatus = SessionStatusScheduled
	}
	return nil
}

type AttendanceModel struct {
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`

	AttendanceSessionID uuid.UUID `gorm:"column:attendance_session_id;type:uuid;not null;uniqueIndex:uq_attendance_session_member,priority:1" json:"attendance_session_id"`
	AttendanceMemberID  uuid.UUID `gorm:"column:attendance_member_id;type:uuid;not null;uniqueIndex:uq_attendance_session_member,priority:2" json:"attendance_member_id"`
	AttendancePresent   bool      `gorm:"column:attendance_present;not null" json:"attendance_present"`

	AttendanceRecordedAt time.Time `gorm:"column:attendance_recorded_at;not null" json:"attendance_recorded_at"`
}

func (AttendanceModel) TableName() string { return "session_attendances" }

func (a *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if a.AttendanceID == uuid.Nil {
		a.AttendanceID = uuid.New()
	}
	return nil
}
