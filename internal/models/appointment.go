package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	PatientID   string `gorm:"size:36;index" json:"patient_id"`
	ClinicianID string `gorm:"size:36;index" json:"clinician_id"`

	StartTime time.Time `gorm:"column:start_time;index" json:"start"`
	EndTime   time.Time `gorm:"column:end_time" json:"end"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`
	Type   string `gorm:"size:50" json:"type"`
	Title  string `gorm:"size:255" json:"title,omitempty"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
