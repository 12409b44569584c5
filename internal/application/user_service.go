package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-studio/internal/domain/user"
)

type UserService struct {
	Repo      user.Repository
	Publisher EventPublisher
	Logger    *logrus.Logger
}

func NewUserService(repo user.Repository, pub EventPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Publisher: pub, Logger: logger}
}

// Register creates a user. When ExternalID is set and already known the
// existing user is returned unchanged, so identity-provider callbacks can be
// replayed.
func (s *UserService) Register(ctx context.Context, in user.NewInput) (*user.User, error) {
	if ext := strings.TrimSpace(in.ExternalID); ext != "" {
		existing, err := s.Repo.FindByExternalID(ctx, ext)
		if err != nil {
			return nil, fmt.Errorf("find user by external id: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}
	if in.ID != "" {
		exists, err := s.Repo.Exists(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("check user: %w", err)
		}
		if exists {
			return nil, user.NewAlreadyExistsError(in.ID)
		}
	}

	u, err := user.New(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.Create(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID().Value()).Error("create user failed")
		return nil, fmt.Errorf("create user: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, u.DomainEvents())
	s.Logger.WithField("user_id", u.ID().Value()).Info("user registered")
	return u.ClearDomainEvents(), nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || u.IsDeleted() {
		return nil, user.NewNotFoundError(userID)
	}
	return u, nil
}

type UpdateProfileInput struct {
	FullName *string
	Locale   *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*user.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.EnsureCanAct("update profile"); err != nil {
		return nil, err
	}
	if in.FullName != nil {
		if u, err = u.UpdateFullName(*in.FullName); err != nil {
			return nil, err
		}
	}
	if in.Locale != nil {
		if u, err = u.UpdateLocale(*in.Locale); err != nil {
			return nil, err
		}
	}
	return s.save(ctx, u)
}

// SetOwnStatus lets a user switch themselves between ACTIVE and INACTIVE.
// Suspension is not self-service in either direction.
func (s *UserService) SetOwnStatus(ctx context.Context, userID, status string) (*user.User, error) {
	target, err := user.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target == user.StatusSuspended || u.Status() == user.StatusSuspended {
		return nil, user.NewInsufficientPermissionsError(userID, userID)
	}
	next, err := u.UpdateStatus(target)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, next)
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	_, err = s.save(ctx, u.Delete())
	return err
}

func (s *UserService) Restore(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, user.NewNotFoundError(userID)
	}
	return s.save(ctx, u.Restore())
}

func (s *UserService) save(ctx context.Context, u *user.User) (*user.User, error) {
	events := u.DomainEvents()
	if len(events) == 0 {
		return u, nil
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID().Value()).Error("update user failed")
		return nil, fmt.Errorf("update user: %w", err)
	}
	publishEvents(ctx, s.Publisher, s.Logger, events)
	return u.ClearDomainEvents(), nil
}
