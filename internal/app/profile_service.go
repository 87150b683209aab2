package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"weighttrack/internal/domain"
)

// ProfileInput is the setup form.
type ProfileInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	StartWeight float64  `json:"startWeight" validate:"gt=0"`
	GoalWeight  *float64 `json:"goalWeight" validate:"omitempty,gt=0"`
	TargetWeeks *int     `json:"targetWeeks" validate:"omitempty,min=4,max=52"`
}

// ProfileService owns the profile lifecycle: setup, lookup and reset.
type ProfileService struct {
	profiles domain.ProfileRepository
	weights  *WeightService
	session  *Session
	validate *validator.Validate
	now      func() time.Time
}

// NewProfileService wires the profile lifecycle to its collaborators.
func NewProfileService(profiles domain.ProfileRepository, weights *WeightService, session *Session) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		weights:  weights,
		session:  session,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Setup creates a profile and its starting entry, then binds the session to
// it. If either later step fails the profile is removed again.
func (s *ProfileService) Setup(ctx context.Context, in ProfileInput) (*domain.Profile, *domain.WeightEntry, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validateInput(in); err != nil {
		return nil, nil, err
	}

	start := s.now()
	np := domain.NewProfile{
		Name:        in.Name,
		StartWeight: in.StartWeight,
		GoalWeight:  in.GoalWeight,
		StartDate:   start,
	}
	if in.TargetWeeks != nil {
		target := domain.TargetDateFor(start, *in.TargetWeeks)
		np.TargetDate = &target
	}

	p, err := s.profiles.CreateProfile(ctx, np)
	if err != nil {
		return nil, nil, fmt.Errorf("create profile: %w", err)
	}

	entry, err := s.weights.CreateInitialEntry(ctx, p.ID, in.StartWeight)
	if err != nil {
		return nil, nil, s.rollback(ctx, p.ID, err)
	}
	if err := s.session.Bind(ctx, p.ID); err != nil {
		return nil, nil, s.rollback(ctx, p.ID, err)
	}
	return p, entry, nil
}

// rollback removes a half-created profile, entries included, and joins any
// failure to do so onto cause.
func (s *ProfileService) rollback(ctx context.Context, id int64, cause error) error {
	if err := s.profiles.DeleteProfile(ctx, id); err != nil {
		return errors.Join(cause, fmt.Errorf("roll back profile %d: %w", id, err))
	}
	return cause
}

// Current returns the bound profile. A profile the store does not know any
// more unbinds the session.
func (s *ProfileService) Current(ctx context.Context) (*domain.Profile, error) {
	id, ok := s.session.ID()
	if !ok {
		return nil, domain.ErrNoSession
	}
	p, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, s.Forget(ctx, err)
	}
	return p, nil
}

// UserID returns the bound profile id without a store round trip.
func (s *ProfileService) UserID() (int64, error) {
	id, ok := s.session.ID()
	if !ok {
		return 0, domain.ErrNoSession
	}
	return id, nil
}

// Bind selects an existing profile.
func (s *ProfileService) Bind(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.session.Bind(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset deletes the bound profile with all of its entries and unbinds the
// session.
func (s *ProfileService) Reset(ctx context.Context) error {
	id, ok := s.session.ID()
	if !ok {
		return domain.ErrNoSession
	}
	if err := s.profiles.DeleteProfile(ctx, id); err != nil {
		return s.Forget(ctx, err)
	}
	return s.session.Clear(ctx)
}

// Forget unbinds the session when err says the bound profile is gone and
// returns err unchanged otherwise.
func (s *ProfileService) Forget(ctx context.Context, err error) error {
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}
	if cerr := s.session.Clear(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

func (s *ProfileService) validateInput(in ProfileInput) error {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &domain.ValidationError{Field: fe.Field(), Reason: reason(fe)}
		}
		return err
	}
	if err := domain.ValidateWeight("startWeight", in.StartWeight); err != nil {
		return err
	}
	if in.GoalWeight != nil {
		return domain.ValidateWeight("goalWeight", *in.GoalWeight)
	}
	return nil
}
