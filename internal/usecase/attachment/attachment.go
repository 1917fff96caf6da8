package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/attachment"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/infra/storage"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

var (
	errAppointmentNotFound = httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")
	errAttachmentNotFound  = httperr.NotFoundErr("attachment_not_found", "Anexo não encontrado.")
)

type Options struct {
	MaxBytes int64
	Now      func() time.Time
	Log      *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxBytes <= 0 {
		o.MaxBytes = 10 << 20
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

// Service groups the attachment operations; they share the same
// collaborators and the same participant check.
type Service struct {
	repo  domain.Repository
	blobs storage.Store
	audit audit.Recorder
	opts  Options
}

func NewService(
	repo domain.Repository,
	blobs storage.Store,
	audit audit.Recorder,
	opts Options,
) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		audit: audit,
		opts:  opts.withDefaults(),
	}
}

type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Download struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

func (s *Service) participantAppointment(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := s.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAppointmentNotFound
		}
		return nil, err
	}
	if err := access.RequireParticipant(ap, actor); err != nil {
		return nil, err
	}
	return ap, nil
}

func (s *Service) ownedAttachment(
	ctx context.Context,
	actor access.Actor,
	attachmentID uint,
) (*models.Attachment, error) {

	f, err := s.repo.GetAttachment(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAttachmentNotFound
		}
		return nil, err
	}
	if _, err := s.participantAppointment(ctx, actor, f.AppointmentID); err != nil {
		return nil, err
	}
	return f, nil
}

func cleanName(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "arquivo"
	}
	return name
}

// ======================================================
// UPLOAD
// ======================================================

// Upload stores every file and returns the records in input order. When any
// step fails the files already stored are removed again.
func (s *Service) Upload(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
	files []File,
) ([]models.Attachment, error) {

	ap, err := s.participantAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, httperr.Validation("no_files", "Envie ao menos um arquivo.")
	}
	for _, f := range files {
		if f.Size > s.opts.MaxBytes {
			return nil, httperr.Validation(
				"file_too_large",
				fmt.Sprintf("O arquivo %s excede o limite de %d MB.", cleanName(f.Name), s.opts.MaxBytes>>20),
			)
		}
	}

	now := s.opts.Now()
	records := make([]models.Attachment, 0, len(files))
	stored := make([]string, 0, len(files))

	rollback := func() {
		for _, key := range stored {
			if err := s.blobs.Delete(ctx, key); err != nil {
				s.opts.Log.Warn("orphan attachment file", zap.String("key", key), zap.Error(err))
			}
		}
	}

	for _, f := range files {
		name := cleanName(f.Name)
		key := storage.NewKey(fmt.Sprintf("anexos/%d", ap.ID), name)

		counter := &countingReader{r: io.LimitReader(f.Body, s.opts.MaxBytes+1)}
		if err := s.blobs.Put(ctx, key, counter, f.Size, f.ContentType); err != nil {
			rollback()
			return nil, httperr.Storage("upload_failed", "Falha ao salvar o arquivo.", err)
		}
		stored = append(stored, key)

		if counter.n > s.opts.MaxBytes {
			rollback()
			return nil, httperr.Validation("file_too_large", "Arquivo excede o tamanho permitido.")
		}

		records = append(records, models.Attachment{
			AppointmentID: ap.ID,
			StorageKey:    key,
			OriginalName:  name,
			ContentType:   f.ContentType,
			Size:          counter.n,
			UploadedAt:    now,
		})
	}

	if err := s.repo.CreateAttachments(ctx, records); err != nil {
		rollback()
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "attachments_uploaded",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"count": len(records)},
	})

	return records, nil
}

// ======================================================
// LIST / DOWNLOAD / DELETE
// ======================================================

func (s *Service) List(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
) ([]models.Attachment, error) {

	ap, err := s.participantAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAttachments(ctx, ap.ID)
}

// Download hands back the stored bytes under the original file name. The
// caller closes Body.
func (s *Service) Download(
	ctx context.Context,
	actor access.Actor,
	attachmentID uint,
) (*Download, error) {

	f, err := s.ownedAttachment(ctx, actor, attachmentID)
	if err != nil {
		return nil, err
	}

	body, err := s.blobs.Get(ctx, f.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, httperr.Storage("file_missing", "Arquivo não encontrado no armazenamento.", err)
		}
		return nil, httperr.Storage("download_failed", "Falha ao ler o arquivo.", err)
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Download{
		Name:        f.OriginalName,
		ContentType: contentType,
		Size:        f.Size,
		Body:        body,
	}, nil
}

func (s *Service) Delete(
	ctx context.Context,
	actor access.Actor,
	attachmentID uint,
) error {

	f, err := s.ownedAttachment(ctx, actor, attachmentID)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
		return httperr.Storage("delete_failed", "Falha ao remover o arquivo.", err)
	}

	if err := s.repo.DeleteAttachment(ctx, f.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errAttachmentNotFound
		}
		return err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "attachment_deleted",
		Entity:   "attachment",
		EntityID: &f.ID,
	})

	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
