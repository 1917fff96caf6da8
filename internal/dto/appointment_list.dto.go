package dto

import (
	"time"

	"github.com/BruksfildServices01/medagenda/internal/models"
)

type PartySummary struct {
	ID            uint   `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Especialidade string `json:"especialidade,omitempty"`
}

type AppointmentDTO struct {
	ID          uint         `json:"id"`
	DataHora    time.Time    `json:"data_hora"`
	Status      string       `json:"status"`
	Observacoes string       `json:"observacoes"`
	Paciente    PartySummary `json:"paciente"`
	Medico      PartySummary `json:"medico"`
	CanceladoEm *time.Time   `json:"cancelado_em,omitempty"`
	ConcluidoEm *time.Time   `json:"concluido_em,omitempty"`
	CriadoEm    time.Time    `json:"criado_em"`
}

func summary(u models.User, fallbackID uint) PartySummary {
	id := u.ID
	if id == 0 {
		id = fallbackID
	}
	return PartySummary{
		ID:            id,
		Nome:          u.Name,
		Email:         u.Email,
		Especialidade: u.Specialty,
	}
}

// FromAppointment renders times in loc.
func FromAppointment(ap *models.Appointment, loc *time.Location) AppointmentDTO {
	out := AppointmentDTO{
		ID:          ap.ID,
		DataHora:    ap.ScheduledAt.In(loc),
		Status:      ap.Status,
		Observacoes: ap.Notes,
		Paciente:    summary(ap.Requester, ap.RequesterID),
		Medico:      summary(ap.Practitioner, ap.PractitionerID),
		CanceladoEm: ap.CancelledAt,
		ConcluidoEm: ap.CompletedAt,
		CriadoEm:    ap.CreatedAt,
	}
	return out
}

func FromAppointments(aps []models.Appointment, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i], loc))
	}
	return out
}
