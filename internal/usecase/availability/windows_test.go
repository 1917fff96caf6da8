package availability

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	"github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/infra/repository"
	"github.com/BruksfildServices01/medagenda/internal/testutil"
)

func TestWindowLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAvailabilityGormRepository(db)
	ctx := context.Background()

	doc := testutil.CreatePractitioner(t, db, "p@x.com")
	other := testutil.CreatePractitioner(t, db, "o@x.com")
	patient := testutil.CreatePatient(t, db, "r@x.com")

	docActor := access.Actor{UserID: doc.ID, Role: account.RolePractitioner}
	otherActor := access.Actor{UserID: other.ID, Role: account.RolePractitioner}
	patientActor := access.Actor{UserID: patient.ID, Role: account.RolePatient}

	create := NewCreateWindow(repo, audit.Nop{})

	if _, err := create.Execute(ctx, patientActor, WindowInput{Weekday: "segunda", StartTimes: []string{"09:00"}, DurationMinutes: 30}); !httperr.IsKind(err, httperr.KindPermission) {
		t.Fatalf("patients must not create windows, got %v", err)
	}

	invalid := []WindowInput{
		{Weekday: "segunda", StartTimes: []string{"09:00"}, DurationMinutes: 0},
		{Weekday: "segunda", StartTimes: []string{"09:00"}, DurationMinutes: 30, BufferMinutes: -5},
		{Weekday: "segunda", StartTimes: []string{"9h"}, DurationMinutes: 30},
		{Weekday: "feriado", StartTimes: []string{"09:00"}, DurationMinutes: 30},
	}
	for _, in := range invalid {
		if _, err := create.Execute(ctx, docActor, in); !httperr.IsKind(err, httperr.KindValidation) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}

	w, err := create.Execute(ctx, docActor, WindowInput{
		Weekday:         "Segunda-Feira",
		StartTimes:      []string{"10:00", "09:00"},
		DurationMinutes: 30,
		BufferMinutes:   10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Weekday != "segunda" || w.StartTimes[0] != "09:00" || w.PractitionerID != doc.ID {
		t.Fatalf("window not normalized: %+v", w)
	}
	if _, err := create.Execute(ctx, otherActor, WindowInput{Weekday: "terca", StartTimes: []string{"14:00"}, DurationMinutes: 20}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	list := NewListWindows(repo)
	own, _ := list.Execute(ctx, docActor, other.ID)
	if len(own) != 1 || own[0].PractitionerID != doc.ID {
		t.Fatalf("practitioner must only see own windows, got %+v", own)
	}
	all, _ := list.Execute(ctx, patientActor, 0)
	if len(all) != 2 {
		t.Fatalf("patients browse every window, got %d", len(all))
	}
	filtered, _ := list.Execute(ctx, patientActor, other.ID)
	if len(filtered) != 1 || filtered[0].PractitionerID != other.ID {
		t.Fatalf("expected filter by practitioner, got %+v", filtered)
	}

	update := NewUpdateWindow(repo, audit.Nop{})
	dur := 45
	if _, err := update.Execute(ctx, otherActor, w.ID, WindowPatch{DurationMinutes: &dur}); !httperr.IsKind(err, httperr.KindPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	bad := -1
	if _, err := update.Execute(ctx, docActor, w.ID, WindowPatch{DurationMinutes: &bad}); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("patched window must be revalidated, got %v", err)
	}
	updated, err := update.Execute(ctx, docActor, w.ID, WindowPatch{DurationMinutes: &dur})
	if err != nil || updated.DurationMinutes != 45 || updated.BufferMinutes != 10 {
		t.Fatalf("unexpected update result %+v %v", updated, err)
	}
	if _, err := update.Execute(ctx, docActor, 9999, WindowPatch{}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	del := NewDeleteWindow(repo, audit.Nop{})
	if err := del.Execute(ctx, patientActor, w.ID); !httperr.IsKind(err, httperr.KindPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if err := del.Execute(ctx, docActor, w.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := del.Execute(ctx, docActor, w.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
