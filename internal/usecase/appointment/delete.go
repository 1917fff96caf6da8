package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/appointment"
	"github.com/BruksfildServices01/medagenda/internal/infra/storage"
)

type DeleteAppointment struct {
	repo  domain.Repository
	blobs storage.Store
	audit audit.Recorder
	opts  Options
}

func NewDeleteAppointment(
	repo domain.Repository,
	blobs storage.Store,
	audit audit.Recorder,
	opts Options,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		blobs: blobs,
		audit: audit,
		opts:  opts.withDefaults(),
	}
}

// Execute removes the appointment with its attachments. Stored files are
// removed after the rows; a leftover file is logged, not reported.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return notFoundOr(err, errAppointmentNotFound)
	}

	if err := access.RequireParticipant(ap, actor); err != nil {
		return err
	}

	files, err := uc.repo.ListAttachments(ctx, ap.ID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return notFoundOr(err, errAppointmentNotFound)
	}

	for _, f := range files {
		if err := uc.blobs.Delete(ctx, f.StorageKey); err != nil {
			uc.opts.Log.Warn("attachment file not removed",
				zap.Uint("attachment_id", f.ID),
				zap.String("key", f.StorageKey),
				zap.Error(err),
			)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"attachments": len(files)},
	})

	return nil
}
