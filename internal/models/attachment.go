package models

import "time"

type Attachment struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"agendamento_id"`

	StorageKey   string `gorm:"size:255;not null" json:"-"`
	OriginalName string `gorm:"size:255;not null" json:"nome_original"`
	ContentType  string `gorm:"size:100" json:"tipo_conteudo"`
	Size         int64  `json:"tamanho"`

	UploadedAt time.Time `gorm:"not null" json:"enviado_em"`
}
