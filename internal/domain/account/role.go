package account

import (
	"strings"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

type Role string

const (
	RolePatient      Role = "comum"
	RolePractitioner Role = "medico"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RolePatient:
		return RolePatient, nil
	case RolePractitioner:
		return RolePractitioner, nil
	default:
		return "", httperr.Validation("invalid_role", "Tipo de usuário inválido.")
	}
}

// Profile is the role-specific part of a user. The set of implementations is
// closed: only PatientProfile and PractitionerProfile satisfy it.
type Profile interface {
	Role() Role
	sealed()
}

type PatientProfile struct {
	CPF string
}

type PractitionerProfile struct {
	CRM       string
	Specialty string
	PhotoKey  string
}

func (PatientProfile) Role() Role      { return RolePatient }
func (PractitionerProfile) Role() Role { return RolePractitioner }

func (PatientProfile) sealed()      {}
func (PractitionerProfile) sealed() {}

func ProfileOf(u *models.User) Profile {
	switch Role(u.Role) {
	case RolePractitioner:
		return PractitionerProfile{
			CRM:       u.CRM,
			Specialty: u.Specialty,
			PhotoKey:  u.PhotoKey,
		}
	default:
		p := PatientProfile{}
		if u.CPF != nil {
			p.CPF = *u.CPF
		}
		return p
	}
}

func IsPractitionerUser(u *models.User) bool {
	_, ok := ProfileOf(u).(PractitionerProfile)
	return ok
}
