package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	"github.com/oksasatya/user-management-api/pkg/helpers"
	"github.com/oksasatya/user-management-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrAccountDeactivated = errors.New("account has been deactivated")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrForbidden          = errors.New("forbidden")
)

type Service struct {
	Repo   repo.UserRepository
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
}

func NewService(r repo.UserRepository, tokens *helpers.TokenManager, logger *logrus.Logger, pub *helpers.RabbitPublisher) *Service {
	return &Service{Repo: r, Tokens: tokens, Logger: logger, Pub: pub}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

// Register creates a user record with the default role and issues a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Age:          in.Age,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, _, err := s.Tokens.Generate(u.ID, string(u.Role))
	if err != nil {
		return nil, "", err
	}

	s.enqueueWelcomeEmail(ctx, u)

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}
	return u, token, nil
}

// enqueueWelcomeEmail publishes a welcome email job. Delivery is best-effort;
// a queue failure never fails the registration.
func (s *Service) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

// Login validates credentials, refuses deactivated accounts, records the
// login time and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmail(normalizeEmail(email))
	if err != nil || u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, "", ErrAccountDeactivated
	}

	now := time.Now()
	if err := s.Repo.SetLastLogin(u.ID, now); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("last login update failed")
	}
	u.LastLogin = &now

	token, _, err := s.Tokens.Generate(u.ID, string(u.Role))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdatePassword verifies the current password before storing a new hash,
// then issues a fresh token.
func (s *Service) UpdatePassword(ctx context.Context, userID, current, newPassword string) (string, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return "", ErrUserNotFound
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, current) {
		return "", ErrWrongPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdatePassword(u.ID, hash); err != nil {
		return "", err
	}
	token, _, err := s.Tokens.Generate(u.ID, string(u.Role))
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) GetByID(id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) List(q repo.ListQuery) ([]*entity.User, int64, error) {
	return s.Repo.List(q)
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
	Role     entity.Role
	IsActive *bool
}

// AdminCreate creates a user with an explicit role, on behalf of an admin.
func (s *Service) AdminCreate(adminID string, in CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Age:          in.Age,
		Role:         role,
		IsActive:     active,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"created_user_id": u.ID, "admin_id": adminID}).Info("user created by admin")
	}
	return u, nil
}

// UpdateInput carries the mutable fields of an update request. Nil fields
// are left untouched.
type UpdateInput struct {
	Name     *string
	Email    *string
	Age      *int
	IsActive *bool
}

// mutableFields is the explicit per-role allow-list of updatable attributes.
// Password and role are never mutable through this path.
var mutableFields = map[entity.Role][]string{
	entity.RoleUser:  {"name", "email", "age"},
	entity.RoleAdmin: {"name", "email", "age", "isActive"},
}

// Update applies an update on behalf of the caller. Non-admin callers may
// only update their own record, and only the fields allow-listed for their
// role are merged in.
func (s *Service) Update(caller *entity.User, targetID string, in UpdateInput) (*entity.User, error) {
	if caller.Role != entity.RoleAdmin && caller.ID != targetID {
		return nil, ErrForbidden
	}
	u, err := s.Repo.GetByID(targetID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	for _, f := range mutableFields[caller.Role] {
		switch f {
		case "name":
			if in.Name != nil {
				u.Name = strings.TrimSpace(*in.Name)
			}
		case "email":
			if in.Email != nil {
				u.Email = normalizeEmail(*in.Email)
			}
		case "age":
			if in.Age != nil {
				u.Age = in.Age
			}
		case "isActive":
			if in.IsActive != nil {
				u.IsActive = *in.IsActive
			}
		}
	}

	if err := s.Repo.Update(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "updated_by": caller.ID}).Info("user updated")
	}
	return u, nil
}

// Delete removes a user record. The role gate restricts this to admins.
func (s *Service) Delete(adminID, targetID string) error {
	if err := s.Repo.Delete(targetID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"deleted_user_id": targetID, "deleted_by": adminID}).Info("user deleted")
	}
	return nil
}

// Deactivate flips the active flag instead of deleting the record.
// A deactivated user still exists but is denied login.
func (s *Service) Deactivate(adminID, targetID string) (*entity.User, error) {
	u, err := s.Repo.Deactivate(targetID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": targetID, "deactivated_by": adminID}).Info("user deactivated")
	}
	return u, nil
}
