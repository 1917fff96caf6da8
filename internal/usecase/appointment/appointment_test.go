package appointment

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	"github.com/BruksfildServices01/medagenda/internal/domain/account"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/appointment"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/infra/repository"
	"github.com/BruksfildServices01/medagenda/internal/infra/storage"
	"github.com/BruksfildServices01/medagenda/internal/models"
	"github.com/BruksfildServices01/medagenda/internal/notify"
	"github.com/BruksfildServices01/medagenda/internal/testutil"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (n *fakeNotifier) Notify(msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *fakeNotifier) to(addr string) []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notify.Message
	for _, m := range n.sent {
		if m.To == addr {
			out = append(out, m)
		}
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	repo     *repository.AppointmentGormRepository
	notifier *fakeNotifier
	blobs    *storage.MemoryStore
	opts     Options

	requester    *models.User
	practitioner *models.User
	stranger     *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:           db,
		repo:         repository.NewAppointmentGormRepository(db),
		notifier:     &fakeNotifier{},
		blobs:        storage.NewMemoryStore(),
		opts:         Options{Location: time.UTC},
		requester:    testutil.CreatePatient(t, db, "r@x.com"),
		practitioner: testutil.CreatePractitioner(t, db, "p@x.com"),
		stranger:     testutil.CreatePatient(t, db, "u@x.com"),
	}
}

func actorOf(u *models.User) access.Actor {
	return access.Actor{UserID: u.ID, Role: account.Role(u.Role)}
}

func (f *fixture) create(t *testing.T, at time.Time) *models.Appointment {
	t.Helper()
	uc := NewCreateAppointment(f.repo, audit.Nop{}, f.notifier, f.opts)
	ap, err := uc.Execute(context.Background(), actorOf(f.requester), CreateAppointmentInput{
		PractitionerID: f.practitioner.ID,
		ScheduledAt:    at,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return ap
}

// 2025-03-03 is a Monday.
var monday9 = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func TestScenario_RequestScheduleCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.db.Create(&models.AvailabilityWindow{
		PractitionerID:  f.practitioner.ID,
		Weekday:         "segunda",
		StartTimes:      []string{"09:00", "10:00"},
		DurationMinutes: 30,
	}).Error; err != nil {
		t.Fatalf("window: %v", err)
	}

	f.opts.EnforceAvailability = true
	ap := f.create(t, monday9)
	if ap.Status != string(domain.StatusRequested) {
		t.Fatalf("expected requested, got %s", ap.Status)
	}
	if len(f.notifier.to("p@x.com")) != 1 {
		t.Fatalf("expected practitioner to be notified of the request")
	}

	update := NewUpdateStatus(f.repo, audit.Nop{}, f.notifier, f.opts)
	ap, err := update.Execute(ctx, actorOf(f.practitioner), ap.ID, "scheduled")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if ap.Status != string(domain.StatusScheduled) {
		t.Fatalf("expected scheduled, got %s", ap.Status)
	}
	if msgs := f.notifier.to("r@x.com"); len(msgs) != 1 || msgs[0].Subject != "Consulta confirmada" {
		t.Fatalf("expected requester to be notified, got %+v", msgs)
	}

	cancel := NewCancelAppointment(update)
	ap, err = cancel.Execute(ctx, actorOf(f.requester), ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if ap.Status != string(domain.StatusCancelled) || ap.CancelledAt == nil {
		t.Fatalf("expected cancelled with timestamp, got %+v", ap)
	}

	for _, st := range []string{"scheduled", "cancelled", "completed"} {
		if _, err := update.Execute(ctx, actorOf(f.stranger), ap.ID, st); !httperr.IsKind(err, httperr.KindPermission) {
			t.Fatalf("stranger must get permission error for %s, got %v", st, err)
		}
	}
}

func TestCancel_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ap := f.create(t, monday9)

	cancel := NewCancelAppointment(NewUpdateStatus(f.repo, audit.Nop{}, f.notifier, f.opts))
	for i := 0; i < 2; i++ {
		got, err := cancel.Execute(context.Background(), actorOf(f.practitioner), ap.ID)
		if err != nil {
			t.Fatalf("cancel #%d: %v", i+1, err)
		}
		if got.Status != string(domain.StatusCancelled) {
			t.Fatalf("expected cancelled, got %s", got.Status)
		}
	}

	if n := len(f.notifier.to("r@x.com")); n != 1 {
		t.Fatalf("second cancel must not notify again, got %d messages", n)
	}
}

func TestUpdateStatus_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.create(t, monday9)
	update := NewUpdateStatus(f.repo, audit.Nop{}, f.notifier, f.opts)

	if _, err := update.Execute(ctx, actorOf(f.requester), ap.ID, "marcado"); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
	if _, err := update.Execute(ctx, actorOf(f.requester), 9999, "cancelled"); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := update.Execute(ctx, actorOf(f.requester), 9999, "bogus"); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("missing appointment must be not found before the status is read, got %v", err)
	}
	if _, err := update.Execute(ctx, actorOf(f.stranger), ap.ID, "bogus"); !httperr.IsKind(err, httperr.KindPermission) {
		t.Fatalf("outsider must get a permission error whatever the status, got %v", err)
	}
	if _, err := update.Execute(ctx, actorOf(f.requester), ap.ID, "completed"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := update.Execute(ctx, actorOf(f.requester), ap.ID, "scheduled"); !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("terminal state must not be left, got %v", err)
	}
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewCreateAppointment(f.repo, audit.Nop{}, f.notifier, f.opts)

	cases := []struct {
		name  string
		actor access.Actor
		in    CreateAppointmentInput
		code  string
	}{
		{"missing practitioner", actorOf(f.requester), CreateAppointmentInput{ScheduledAt: monday9}, "practitioner_required"},
		{"missing date", actorOf(f.requester), CreateAppointmentInput{PractitionerID: f.practitioner.ID}, "invalid_date_or_time"},
		{"not a practitioner", actorOf(f.requester), CreateAppointmentInput{PractitionerID: f.stranger.ID, ScheduledAt: monday9}, "practitioner_not_found"},
		{"self booking", actorOf(f.practitioner), CreateAppointmentInput{PractitionerID: f.practitioner.ID, ScheduledAt: monday9}, "self_booking"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tc.actor, tc.in)
			if !httperr.IsBusiness(err, tc.code) || !httperr.IsKind(err, httperr.KindValidation) {
				t.Fatalf("expected validation %s, got %v", tc.code, err)
			}
		})
	}

	f.create(t, monday9)
	_, err := uc.Execute(ctx, actorOf(f.stranger), CreateAppointmentInput{PractitionerID: f.practitioner.ID, ScheduledAt: monday9})
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}

	f.opts.EnforceAvailability = true
	strict := NewCreateAppointment(f.repo, audit.Nop{}, f.notifier, f.opts)
	_, err = strict.Execute(ctx, actorOf(f.requester), CreateAppointmentInput{PractitionerID: f.practitioner.ID, ScheduledAt: monday9.Add(time.Hour)})
	if !httperr.IsBusiness(err, "outside_availability") {
		t.Fatalf("expected outside_availability, got %v", err)
	}
}

func TestList_ByRoleAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.create(t, monday9)
	f.create(t, monday9.Add(24*time.Hour))

	update := NewUpdateStatus(f.repo, audit.Nop{}, f.notifier, f.opts)
	if _, err := update.Execute(ctx, actorOf(f.practitioner), first.ID, "scheduled"); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	list := NewListAppointments(f.repo)

	mine, err := list.Execute(ctx, actorOf(f.requester), ListFilters{})
	if err != nil || len(mine) != 2 {
		t.Fatalf("requester should see 2, got %d %v", len(mine), err)
	}
	theirs, _ := list.Execute(ctx, actorOf(f.practitioner), ListFilters{Status: "scheduled"})
	if len(theirs) != 1 || theirs[0].ID != first.ID {
		t.Fatalf("practitioner filter by status failed: %+v", theirs)
	}
	none, _ := list.Execute(ctx, actorOf(f.stranger), ListFilters{})
	if len(none) != 0 {
		t.Fatalf("stranger must see nothing, got %d", len(none))
	}

	from, to := monday9, monday9
	exact, _ := list.Execute(ctx, actorOf(f.requester), ListFilters{From: &from, To: &to})
	if len(exact) != 1 {
		t.Fatalf("bounds must be inclusive, got %d", len(exact))
	}

	if _, err := list.Execute(ctx, actorOf(f.requester), ListFilters{Status: "x"}); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDelete_CascadesAndChecksPermission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.create(t, monday9)

	key := "anexos/1/file.pdf"
	_ = f.blobs.Put(ctx, key, strings.NewReader("pdf"), 3, "application/pdf")
	if err := f.db.Create(&models.Attachment{
		AppointmentID: ap.ID, StorageKey: key, OriginalName: "file.pdf", UploadedAt: time.Now(),
	}).Error; err != nil {
		t.Fatalf("attachment: %v", err)
	}

	uc := NewDeleteAppointment(f.repo, f.blobs, audit.Nop{}, f.opts)

	if err := uc.Execute(ctx, actorOf(f.stranger), ap.ID); !httperr.IsKind(err, httperr.KindPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if err := uc.Execute(ctx, actorOf(f.requester), ap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.blobs.Has(key) {
		t.Fatalf("stored file must be removed")
	}
	if err := uc.Execute(ctx, actorOf(f.requester), ap.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFreeSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.db.Create(&models.AvailabilityWindow{
		PractitionerID:  f.practitioner.ID,
		Weekday:         "segunda",
		StartTimes:      []string{"09:00", "10:00"},
		DurationMinutes: 30,
		Location:        "Sala 2",
	}).Error; err != nil {
		t.Fatalf("window: %v", err)
	}

	uc := NewFreeSlots(f.repo, f.opts)

	slots, err := uc.Execute(ctx, f.practitioner.ID, monday9)
	if err != nil || len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d %v", len(slots), err)
	}

	f.create(t, monday9)
	slots, _ = uc.Execute(ctx, f.practitioner.ID, monday9)
	if len(slots) != 1 || slots[0].Start.Hour() != 10 {
		t.Fatalf("expected only 10:00 left, got %+v", slots)
	}

	tuesday := monday9.Add(24 * time.Hour)
	slots, _ = uc.Execute(ctx, f.practitioner.ID, tuesday)
	if len(slots) != 0 {
		t.Fatalf("expected no slots on tuesday, got %d", len(slots))
	}

	if _, err := uc.Execute(ctx, f.requester.ID, monday9); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found for non practitioner, got %v", err)
	}
}

func TestFreeSlots_PreviousDayOverrun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.db.Create(&models.AvailabilityWindow{
		PractitionerID:  f.practitioner.ID,
		Weekday:         "terca",
		StartTimes:      []string{"00:00", "02:00"},
		DurationMinutes: 60,
		BufferMinutes:   15,
	}).Error; err != nil {
		t.Fatalf("window: %v", err)
	}

	// Monday 23:30 plus 75 minutes reaches Tuesday 00:45.
	f.create(t, monday9.Add(14*time.Hour+30*time.Minute))

	slots, err := NewFreeSlots(f.repo, f.opts).Execute(ctx, f.practitioner.ID, monday9.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("free slots: %v", err)
	}
	if len(slots) != 1 || slots[0].Start.Hour() != 2 {
		t.Fatalf("expected only 02:00 left, got %+v", slots)
	}
}
