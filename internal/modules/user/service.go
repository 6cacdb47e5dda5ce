package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sportarea/internal/domain"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10,14}$`)
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) ListUsers(ctx context.Context, actorRole string) ([]domain.User, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id, actorID int64, actorRole string) (*domain.User, error) {
	if id != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	u.PasswordHash = ""
	return u, nil
}

// UpdateUser applies an admin-driven sparse patch. Email and phone
// uniqueness are re-checked against every other account; role changes
// go through here only, which is the administrative side channel the
// booking core treats role as immutable against.
func (s *Service) UpdateUser(ctx context.Context, id int64, actorRole string, req UpdateUserRequest) (*domain.User, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		updates["name"] = name
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailRe.MatchString(email) {
			return nil, ErrValidation
		}
		if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != id {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["email"] = email
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if !phoneRe.MatchString(phone) {
			return nil, ErrValidation
		}
		if existing, err := s.users.GetByPhone(ctx, phone); err == nil && existing.ID != id {
			return nil, ErrPhoneTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["phone"] = phone
	}

	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, ErrValidation
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}

	if req.Role != nil {
		if *req.Role != string(domain.RoleUser) && *req.Role != string(domain.RoleAdmin) {
			return nil, ErrValidation
		}
		updates["role"] = *req.Role
	}

	if len(updates) > 0 {
		if err := s.users.UpdateFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64, actorRole string) error {
	if actorRole != string(domain.RoleAdmin) {
		return ErrForbidden
	}

	err := s.users.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
