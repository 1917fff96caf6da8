package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name         string `gorm:"size:150" json:"nome"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'comum';index" json:"tipo"`

	CPF       *string    `gorm:"size:11;uniqueIndex" json:"cpf"`
	BirthDate *time.Time `gorm:"type:date" json:"data_nascimento"`
	Sex       string     `gorm:"size:20" json:"sexo"`
	Address   string     `gorm:"size:255" json:"endereco"`
	City      string     `gorm:"size:100" json:"cidade"`
	State     string     `gorm:"size:100" json:"estado"`
	Phone     string     `gorm:"size:20" json:"telefone"`

	// Practitioner only
	CRM       string `gorm:"size:20" json:"crm,omitempty"`
	Specialty string `gorm:"size:100;index" json:"especialidade,omitempty"`
	PhotoKey  string `gorm:"size:255" json:"-"`

	Active bool `gorm:"not null" json:"ativo"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}
