package services

import (
	"context"
	"errors"

	"github.com/car-service/apiserver/internal/auth"
	"github.com/car-service/apiserver/internal/store"
	"github.com/car-service/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	Get(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// enumerationGuardHash is verified whenever a login names an unknown
// email, so both login failure modes run the same argon2 work and the
// response cannot be timed to enumerate accounts.
var enumerationGuardHash = func() string {
	hash, err := auth.HashPassword("enumeration-guard")
	if err != nil {
		return ""
	}
	return hash
}()

// UserService encapsulates user use-cases, including login.
type UserService struct {
	repo   UserRepository
	tokens *auth.TokenIssuer
}

func NewUserService(repo UserRepository, tokens *auth.TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int) (types.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUserNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// Create registers a user. The plaintext password is hashed before
// anything is persisted.
func (s *UserService) Create(ctx context.Context, user types.User, password string) (types.User, error) {
	if user.Role == "" {
		user.Role = types.RoleCustomer
	}
	if !types.ValidUserRole(user.Role) {
		return types.User{}, ErrInvalidRole
	}

	if exists, err := s.repo.ExistsByEmail(ctx, user.Email, 0); err != nil {
		return types.User{}, err
	} else if exists {
		return types.User{}, store.ErrDuplicateEmail
	}
	if exists, err := s.repo.ExistsByName(ctx, user.Name, 0); err != nil {
		return types.User{}, err
	} else if exists {
		return types.User{}, store.ErrDuplicateName
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, err
	}
	user.PasswordHash = hash

	return s.repo.Create(ctx, user)
}

// Update applies a partial update. Uniqueness is re-checked only for the
// fields actually changing, excluding the record itself.
func (s *UserService) Update(ctx context.Context, id int, patch types.UserPatch) (types.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if exists, err := s.repo.ExistsByEmail(ctx, *patch.Email, id); err != nil {
			return types.User{}, err
		} else if exists {
			return types.User{}, store.ErrDuplicateEmail
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil && *patch.Name != user.Name {
		if exists, err := s.repo.ExistsByName(ctx, *patch.Name, id); err != nil {
			return types.User{}, err
		} else if exists {
			return types.User{}, store.ErrDuplicateName
		}
		user.Name = *patch.Name
	}
	if patch.Role != nil {
		if !types.ValidUserRole(*patch.Role) {
			return types.User{}, ErrInvalidRole
		}
		user.Role = *patch.Role
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUserNotFound
		}
		return types.User{}, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Authenticate verifies credentials and issues a session token. An
// unknown email and a wrong password both yield ErrInvalidCredentials;
// the password verification step runs in either case.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.VerifyPassword(password, enumerationGuardHash)
			return types.User{}, "", ErrInvalidCredentials
		}
		return types.User{}, "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return types.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return types.User{}, "", err
	}
	return user, token, nil
}
