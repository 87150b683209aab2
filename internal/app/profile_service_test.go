package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

type fixture struct {
	db       *memory.DB
	session  *app.Session
	weights  *app.WeightService
	profiles *app.ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.New()
	session, err := app.NewSession(context.Background(), memory.NewSession())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	weights := app.NewWeightService(db)
	return &fixture{
		db:       db,
		session:  session,
		weights:  weights,
		profiles: app.NewProfileService(db, weights, session),
	}
}

func TestSetup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, entry, err := f.profiles.Setup(ctx, app.ProfileInput{
		Name:        "  Ada  ",
		StartWeight: 80,
		GoalWeight:  ptr(70.0),
		TargetWeeks: ptr(12),
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if p.Name != "Ada" {
		t.Errorf("name = %q; want trimmed", p.Name)
	}
	if p.TargetDate == nil || domain.DaysBetween(p.StartDate, *p.TargetDate, nil) != 84 {
		t.Errorf("target date = %v; want start + 12 weeks", p.TargetDate)
	}
	if entry.Weight != 80 || entry.Note == nil || *entry.Note != domain.InitialEntryNote {
		t.Errorf("unexpected initial entry: %+v", entry)
	}
	if id, ok := f.session.ID(); !ok || id != p.ID {
		t.Errorf("session = %d, %v; want %d bound", id, ok, p.ID)
	}

	current, err := f.profiles.Current(ctx)
	if err != nil || current.ID != p.ID {
		t.Fatalf("Current = %+v, %v", current, err)
	}
}

func TestSetup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    app.ProfileInput
		field string
	}{
		{"missing name", app.ProfileInput{Name: "   ", StartWeight: 80}, "name"},
		{"zero start", app.ProfileInput{Name: "A", StartWeight: 0}, "startWeight"},
		{"negative goal", app.ProfileInput{Name: "A", StartWeight: 80, GoalWeight: ptr(-1.0)}, "goalWeight"},
		{"too few weeks", app.ProfileInput{Name: "A", StartWeight: 80, TargetWeeks: ptr(3)}, "targetWeeks"},
		{"too many weeks", app.ProfileInput{Name: "A", StartWeight: 80, TargetWeeks: ptr(53)}, "targetWeeks"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, _, err := f.profiles.Setup(context.Background(), tc.in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q; want %q", verr.Field, tc.field)
			}
			if _, ok := f.session.ID(); ok {
				t.Error("session must stay unbound")
			}
		})
	}
}

func TestSetup_InitialEntryFailureRollsBack(t *testing.T) {
	deleted := int64(0)
	profiles := &mockProfileRepo{
		deleteFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	weights := app.NewWeightService(&mockWeightRepo{
		createFn: func(_ context.Context, _ int64, _ float64, _ *string, _ time.Time) (*domain.WeightEntry, error) {
			return nil, errors.New("db down")
		},
	})
	session, _ := app.NewSession(context.Background(), memory.NewSession())
	svc := app.NewProfileService(profiles, weights, session)

	if _, _, err := svc.Setup(context.Background(), app.ProfileInput{Name: "A", StartWeight: 80}); err == nil {
		t.Fatal("expected error")
	}
	if deleted != 1 {
		t.Errorf("expected profile 1 to be rolled back, got %d", deleted)
	}
	if _, ok := session.ID(); ok {
		t.Error("session must stay unbound")
	}
}

type failingSessionStore struct {
	saveErr error
}

func (f failingSessionStore) Load(context.Context) (int64, bool, error) { return 0, false, nil }
func (f failingSessionStore) Save(context.Context, int64) error { return f.saveErr }
func (f failingSessionStore) Clear(context.Context) error { return nil }

func TestSetup_SessionFailureRollsBack(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	session, err := app.NewSession(ctx, failingSessionStore{saveErr: errors.New("disk full")})
	if err != nil {
		t.Fatal(err)
	}
	svc := app.NewProfileService(db, app.NewWeightService(db), session)

	_, _, err = svc.Setup(ctx, app.ProfileInput{Name: "Ada", StartWeight: 80})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, err := db.GetProfile(ctx, 1); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected profile to be rolled back, got %v", err)
	}
	if entries, _ := db.ListEntries(ctx, 1); len(entries) != 0 {
		t.Errorf("expected no entries after rollback, got %d", len(entries))
	}
	if _, ok := session.ID(); ok {
		t.Error("session must stay unbound")
	}
}

func TestReset_DeletesEntriesAndUnbinds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, _, err := f.profiles.Setup(ctx, app.ProfileInput{Name: "A", StartWeight: 80})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := f.profiles.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	entries, _ := f.db.ListEntries(ctx, p.ID)
	if len(entries) != 0 {
		t.Errorf("expected no entries after reset, got %d", len(entries))
	}
	if _, ok := f.session.ID(); ok {
		t.Error("session still bound after reset")
	}
	if err := f.profiles.Reset(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestCurrent_NotFoundUnbinds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.profiles.Current(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	// Bound to an id the store has never seen.
	if err := f.session.Bind(ctx, 404); err != nil {
		t.Fatal(err)
	}
	if _, err := f.profiles.Current(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok := f.session.ID(); ok {
		t.Error("session must be unbound after not-found")
	}
}

func TestBind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.db.CreateProfile(ctx, domain.NewProfile{Name: "Existing", StartWeight: 70})
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.profiles.Bind(ctx, p.ID)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("bound %d; want %d", got.ID, p.ID)
	}
	if id, err := f.profiles.UserID(); err != nil || id != p.ID {
		t.Errorf("UserID = %d, %v", id, err)
	}
	if _, err := f.profiles.Bind(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if id, _ := f.profiles.UserID(); id != p.ID {
		t.Error("failed Bind must keep the previous binding")
	}
}
