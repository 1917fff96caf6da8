package account

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/infra/imaging"
	"github.com/BruksfildServices01/medagenda/internal/infra/storage"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

// ProfilePatch carries only the fields being changed. E-mail and role are
// not editable.
type ProfilePatch struct {
	Name      *string
	CPF       *string
	BirthDate *string
	Sex       *string
	Address   *string
	City      *string
	State     *string
	Phone     *string
	CRM       *string
	Specialty *string
}

func (s *Service) Profile(ctx context.Context, actor access.Actor) (*models.User, error) {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

func trimmed(p *string) string {
	return strings.TrimSpace(*p)
}

func (s *Service) UpdateProfile(ctx context.Context, actor access.Actor, p ProfilePatch) (*models.User, error) {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if p.Name != nil {
		u.Name = trimmed(p.Name)
	}
	if p.Sex != nil {
		u.Sex = trimmed(p.Sex)
	}
	if p.Address != nil {
		u.Address = trimmed(p.Address)
	}
	if p.City != nil {
		u.City = trimmed(p.City)
	}
	if p.State != nil {
		u.State = trimmed(p.State)
	}
	if p.Phone != nil {
		u.Phone = trimmed(p.Phone)
	}

	if p.CPF != nil {
		if trimmed(p.CPF) == "" {
			u.CPF = nil
		} else {
			cpf, err := s.checkCPF(ctx, *p.CPF, u.ID)
			if err != nil {
				return nil, err
			}
			u.CPF = &cpf
		}
	}

	if p.BirthDate != nil {
		if u.BirthDate, err = s.parseBirthDate(*p.BirthDate); err != nil {
			return nil, err
		}
	}

	switch domain.ProfileOf(u).(type) {
	case domain.PractitionerProfile:
		if p.CRM != nil {
			if trimmed(p.CRM) == "" {
				return nil, httperr.Validation("crm_required", "Informe o CRM do médico.")
			}
			u.CRM = trimmed(p.CRM)
		}
		if p.Specialty != nil {
			u.Specialty = trimmed(p.Specialty)
		}
	case domain.PatientProfile:
		if p.CRM != nil || p.Specialty != nil {
			return nil, httperr.Validation("practitioner_only_field", "CRM e especialidade são exclusivos de médicos.")
		}
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "profile_updated",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return u, nil
}

// ======================================================
// PHOTO
// ======================================================

func (s *Service) UploadPhoto(ctx context.Context, actor access.Actor, r io.Reader) (*models.User, error) {
	if !access.IsPractitioner(actor) {
		return nil, httperr.Permission("not_practitioner", "Apenas médicos podem enviar foto de perfil.")
	}

	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	data, err := imaging.NormalizePhoto(r)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			return nil, httperr.Validation("invalid_image", "Envie uma imagem JPEG ou PNG.")
		}
		return nil, err
	}

	key := storage.NewKey(fmt.Sprintf("fotos/%d", u.ID), "foto.webp")
	if err := s.blobs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), imaging.PhotoMediaType); err != nil {
		return nil, httperr.Storage("upload_failed", "Falha ao salvar a foto.", err)
	}

	old := u.PhotoKey
	u.PhotoKey = key
	if err := s.users.Update(ctx, u); err != nil {
		_ = s.blobs.Delete(ctx, key)
		return nil, err
	}

	if old != "" {
		if err := s.blobs.Delete(ctx, old); err != nil {
			s.opts.Log.Warn("old photo not removed", zap.String("key", old), zap.Error(err))
		}
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "photo_updated",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return u, nil
}

// Photo returns the stored webp of userID. The caller closes the reader.
func (s *Service) Photo(ctx context.Context, userID uint) (io.ReadCloser, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if u.PhotoKey == "" {
		return nil, httperr.NotFoundErr("photo_not_found", "Foto não cadastrada.")
	}

	body, err := s.blobs.Get(ctx, u.PhotoKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, httperr.Storage("file_missing", "Foto não encontrada no armazenamento.", err)
		}
		return nil, httperr.Storage("download_failed", "Falha ao ler a foto.", err)
	}
	return body, nil
}

// ======================================================
// PRACTITIONERS
// ======================================================

func (s *Service) ListPractitioners(ctx context.Context, specialty string) ([]models.User, error) {
	return s.users.ListPractitioners(ctx, specialty)
}
