package models

import (
	"time"

	"gorm.io/datatypes"
)

type AvailabilityWindow struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	PractitionerID uint `gorm:"index;not null" json:"medico_id"`

	Weekday    string                      `gorm:"size:10;not null" json:"dia_semana"`
	StartTimes datatypes.JSONSlice[string] `json:"horarios"`
	Location   string                      `gorm:"size:150" json:"local"`

	DurationMinutes int  `gorm:"not null" json:"duracao_consulta_minutos"`
	BufferMinutes   int  `gorm:"not null;default:0" json:"intervalo_consulta_minutos"`
	Unavailable     bool `gorm:"default:false" json:"indisponivel"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}
