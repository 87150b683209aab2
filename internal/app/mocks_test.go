package app_test

import (
	"context"
	"time"

	"weighttrack/internal/domain"
)

type mockWeightRepo struct {
	createFn    func(ctx context.Context, userID int64, w float64, note *string, date time.Time) (*domain.WeightEntry, error)
	listFn      func(ctx context.Context, userID int64) ([]domain.WeightEntry, error)
	forDayFn    func(ctx context.Context, userID int64, day time.Time) (*domain.WeightEntry, error)
	updateFn    func(ctx context.Context, userID, id int64, w float64, note *string, date time.Time) (*domain.WeightEntry, error)
	deleteFn    func(ctx context.Context, userID, id int64) error
	deleteAllFn func(ctx context.Context, userID int64) error
}

func (m *mockWeightRepo) CreateEntry(ctx context.Context, userID int64, w float64, note *string, date time.Time) (*domain.WeightEntry, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, w, note, date)
	}
	return &domain.WeightEntry{ID: 1, UserID: userID, Weight: w, Note: note, Date: date}, nil
}

func (m *mockWeightRepo) ListEntries(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightRepo) EntryForDay(ctx context.Context, userID int64, day time.Time) (*domain.WeightEntry, error) {
	if m.forDayFn != nil {
		return m.forDayFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockWeightRepo) UpdateEntry(ctx context.Context, userID, id int64, w float64, note *string, date time.Time) (*domain.WeightEntry, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, w, note, date)
	}
	return &domain.WeightEntry{ID: id, UserID: userID, Weight: w, Note: note, Date: date}, nil
}

func (m *mockWeightRepo) DeleteEntry(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockWeightRepo) DeleteAllEntries(ctx context.Context, userID int64) error {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx, userID)
	}
	return nil
}

type mockProfileRepo struct {
	createFn func(ctx context.Context, np domain.NewProfile) (*domain.Profile, error)
	getFn    func(ctx context.Context, id int64) (*domain.Profile, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockProfileRepo) CreateProfile(ctx context.Context, np domain.NewProfile) (*domain.Profile, error) {
	if m.createFn != nil {
		return m.createFn(ctx, np)
	}
	return &domain.Profile{ID: 1, Name: np.Name, StartWeight: np.StartWeight, GoalWeight: np.GoalWeight, StartDate: np.StartDate, TargetDate: np.TargetDate}, nil
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &domain.Profile{ID: id, Name: "Test", StartWeight: 80}, nil
}

func (m *mockProfileRepo) DeleteProfile(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
