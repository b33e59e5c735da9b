package models

import "time"

// Cliente atendido pela clínica; sem login, contatado por WhatsApp.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name   string  `gorm:"size:200;not null;index" json:"name"`
	Phone  string  `gorm:"size:20;not null" json:"phone"`
	Email  *string `gorm:"size:254" json:"email"`
	Notes  string  `gorm:"type:text" json:"notes"`
	Active bool    `gorm:"not null" json:"active"`

	Appointments []Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
