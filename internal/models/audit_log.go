package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `gorm:"index" json:"usuario_id"`
	Action string `gorm:"size:50;not null" json:"acao"`

	Entity   string `gorm:"size:50" json:"entidade"`
	EntityID *uint  `json:"entidade_id"`
	Metadata string `gorm:"type:text" json:"metadados"`

	CreatedAt time.Time `json:"criado_em"`
}
