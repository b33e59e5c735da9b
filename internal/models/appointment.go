package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `json:"client"`

	// Calendar date (YYYY-MM-DD) and wall-clock time (HH:MM) in the business timezone.
	Date string `gorm:"size:10;not null;index" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	Reason string `gorm:"size:300;not null" json:"reason"`
	State  string `gorm:"size:20;not null;default:'pending';index" json:"state"`

	Token    string `gorm:"size:36;not null;uniqueIndex" json:"-"`
	Attended *bool  `json:"attended"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
