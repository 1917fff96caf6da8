package attachment

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	"github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/infra/repository"
	"github.com/BruksfildServices01/medagenda/internal/infra/storage"
	"github.com/BruksfildServices01/medagenda/internal/models"
	"github.com/BruksfildServices01/medagenda/internal/testutil"
)

func setup(t *testing.T) (*Service, *storage.MemoryStore, *models.Appointment, access.Actor, access.Actor, access.Actor) {
	t.Helper()
	db := testutil.NewDB(t)

	r := testutil.CreatePatient(t, db, "r@x.com")
	p := testutil.CreatePractitioner(t, db, "p@x.com")
	u := testutil.CreatePatient(t, db, "u@x.com")

	ap := &models.Appointment{
		RequesterID:    r.ID,
		PractitionerID: p.ID,
		ScheduledAt:    time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		Status:         "requested",
	}
	if err := db.Create(ap).Error; err != nil {
		t.Fatalf("appointment: %v", err)
	}

	blobs := storage.NewMemoryStore()
	svc := NewService(repository.NewAttachmentGormRepository(db), blobs, audit.Nop{}, Options{MaxBytes: 16})

	return svc, blobs, ap,
		access.Actor{UserID: r.ID, Role: account.RolePatient},
		access.Actor{UserID: p.ID, Role: account.RolePractitioner},
		access.Actor{UserID: u.ID, Role: account.RolePatient}
}

func file(name, body string) File {
	return File{Name: name, ContentType: "text/plain", Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestUploadDownloadDelete(t *testing.T) {
	svc, blobs, ap, requester, practitioner, stranger := setup(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, requester, ap.ID, nil); !httperr.IsBusiness(err, "no_files") {
		t.Fatalf("expected no_files, got %v", err)
	}
	if _, err := svc.Upload(ctx, stranger, ap.ID, []File{file("a.txt", "a")}); !httperr.IsKind(err, httperr.KindPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, err := svc.Upload(ctx, requester, 9999, []File{file("a.txt", "a")}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	recs, err := svc.Upload(ctx, requester, ap.ID, []File{
		file("C:\\exames\\hemograma.txt", "hemo"),
		file("receita.txt", "rx"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(recs) != 2 || recs[0].OriginalName != "hemograma.txt" || recs[1].OriginalName != "receita.txt" {
		t.Fatalf("records must keep input order and original names: %+v", recs)
	}
	if recs[0].StorageKey == recs[0].OriginalName || recs[0].UploadedAt.IsZero() {
		t.Fatalf("storage key must differ from name and upload time must be set: %+v", recs[0])
	}

	listed, err := svc.List(ctx, practitioner, ap.ID)
	if err != nil || len(listed) != 2 {
		t.Fatalf("practitioner should list 2, got %d %v", len(listed), err)
	}

	if _, err := svc.Download(ctx, stranger, recs[0].ID); !httperr.IsKind(err, httperr.KindPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	dl, err := svc.Download(ctx, practitioner, recs[0].ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	body, _ := io.ReadAll(dl.Body)
	dl.Body.Close()
	if string(body) != "hemo" || dl.Name != "hemograma.txt" {
		t.Fatalf("unexpected download %q %q", dl.Name, body)
	}

	_ = blobs.Delete(ctx, recs[1].StorageKey)
	if _, err := svc.Download(ctx, requester, recs[1].ID); !httperr.IsKind(err, httperr.KindStorage) {
		t.Fatalf("missing file must be a storage error, got %v", err)
	}

	if err := svc.Delete(ctx, stranger, recs[0].ID); !httperr.IsKind(err, httperr.KindPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if err := svc.Delete(ctx, requester, recs[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if blobs.Has(recs[0].StorageKey) {
		t.Fatalf("file must be removed")
	}
	if _, err := svc.Download(ctx, requester, recs[0].ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpload_TooLargeRollsBack(t *testing.T) {
	svc, blobs, ap, requester, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, requester, ap.ID, []File{
		file("ok.txt", "ok"),
		{Name: "big.txt", Size: 1, Body: strings.NewReader(strings.Repeat("x", 64))},
	})
	if !httperr.IsBusiness(err, "file_too_large") {
		t.Fatalf("expected file_too_large, got %v", err)
	}

	listed, _ := svc.List(ctx, requester, ap.ID)
	if len(listed) != 0 {
		t.Fatalf("no record must be kept, got %d", len(listed))
	}
	if len(blobs.Keys()) != 0 {
		t.Fatalf("stored files must be rolled back")
	}
}
