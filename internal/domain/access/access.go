// Package access holds the authorization predicates used before every
// mutating operation. Nothing here touches storage.
package access

import (
	"github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uint
	Role   account.Role
}

func IsPractitioner(a Actor) bool {
	return a.Role == account.RolePractitioner
}

func IsParticipant(ap *models.Appointment, a Actor) bool {
	if ap == nil || a.UserID == 0 {
		return false
	}
	return ap.RequesterID == a.UserID || ap.PractitionerID == a.UserID
}

func OwnsWindow(w *models.AvailabilityWindow, a Actor) bool {
	if w == nil || a.UserID == 0 {
		return false
	}
	return IsPractitioner(a) && w.PractitionerID == a.UserID
}

var (
	errNotParticipant = httperr.Permission(
		"forbidden",
		"Você não tem permissão para acessar este agendamento.",
	)
	errNotPractitioner = httperr.Permission(
		"not_practitioner",
		"Apenas médicos podem gerenciar horários de atendimento.",
	)
	errNotWindowOwner = httperr.Permission(
		"forbidden",
		"Você não tem permissão para alterar este horário.",
	)
)

func RequireParticipant(ap *models.Appointment, a Actor) error {
	if !IsParticipant(ap, a) {
		return errNotParticipant
	}
	return nil
}

func RequirePractitioner(a Actor) error {
	if !IsPractitioner(a) {
		return errNotPractitioner
	}
	return nil
}

func RequireWindowOwner(w *models.AvailabilityWindow, a Actor) error {
	if !OwnsWindow(w, a) {
		return errNotWindowOwner
	}
	return nil
}
