package dto

import (
	"time"

	"github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

type UserDTO struct {
	ID             uint    `json:"id"`
	Email          string  `json:"email"`
	Nome           string  `json:"nome"`
	Tipo           string  `json:"tipo"`
	CPF            string  `json:"cpf,omitempty"`
	DataNascimento *string `json:"data_nascimento"`
	Sexo           string  `json:"sexo"`
	Endereco       string  `json:"endereco"`
	Cidade         string  `json:"cidade"`
	Estado         string  `json:"estado"`
	Telefone       string  `json:"telefone"`

	CRM           string `json:"crm,omitempty"`
	Especialidade string `json:"especialidade,omitempty"`
	TemFoto       bool   `json:"tem_foto,omitempty"`

	CriadoEm time.Time `json:"criado_em"`
}

func FromUser(u *models.User) UserDTO {
	out := UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Nome:     u.Name,
		Tipo:     u.Role,
		Sexo:     u.Sex,
		Endereco: u.Address,
		Cidade:   u.City,
		Estado:   u.State,
		Telefone: u.Phone,
		CriadoEm: u.CreatedAt,
	}
	if u.BirthDate != nil {
		d := u.BirthDate.Format("2006-01-02")
		out.DataNascimento = &d
	}

	if p, ok := account.ProfileOf(u).(account.PractitionerProfile); ok {
		out.CRM = p.CRM
		out.Especialidade = p.Specialty
		out.TemFoto = p.PhotoKey != ""
	}
	if u.CPF != nil {
		out.CPF = account.FormatCPF(*u.CPF)
	}
	return out
}

func FromUsers(us []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(us))
	for i := range us {
		out = append(out, FromUser(&us[i]))
	}
	return out
}
