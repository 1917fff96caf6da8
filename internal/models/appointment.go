package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RequesterID uint `gorm:"index;not null" json:"paciente_id"`
	Requester   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"paciente"`

	PractitionerID uint `gorm:"index;not null" json:"medico_id"`
	Practitioner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"medico"`

	ScheduledAt time.Time `gorm:"index;not null" json:"data_hora"`
	Status      string    `gorm:"size:20;default:'requested'" json:"status"`
	Notes       string    `gorm:"type:text" json:"observacoes"`

	CancelledAt *time.Time `json:"cancelado_em"`
	CompletedAt *time.Time `json:"concluido_em"`

	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE;" json:"anexos,omitempty"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}
