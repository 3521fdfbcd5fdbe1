package service

import (
	"context"
	"errors"
	"fmt"

	"delivery-service/internal/common"
	"delivery-service/internal/model"
	"delivery-service/pkg/jwtutil"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the credential-store surface the auth service depends on.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	AssignRole(ctx context.Context, userID uint, roleName string) error
	UpdateSessionToken(ctx context.Context, userID uint, token string) error
}

// RegisterInput is the validated payload for a registration request.
type RegisterInput struct {
	Email    string
	Name     string
	Lastname string
	Phone    string
	Password string
	Image    *string
}

// AuthResult carries the outcome of a successful register or login: the
// user profile and the session token in its "JWT <token>" wire form.
type AuthResult struct {
	User         *model.User
	SessionToken string
}

// AuthService verifies credentials and mints session tokens.
type AuthService struct {
	users UserStore
	jwt   *jwtutil.JWTUtil
}

// NewAuthService creates a new auth service.
func NewAuthService(users UserStore, jwt *jwtutil.JWTUtil) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Register creates a new user. The plaintext password is hashed before the
// record reaches the store and is never retained. The session token is
// minted from the id the store assigned, not from anything the client sent.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:    in.Email,
		Name:     in.Name,
		Lastname: in.Lastname,
		Phone:    in.Phone,
		Image:    in.Image,
		Password: string(hash),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, &common.PersistenceError{Err: err}
	}

	if err := s.users.AssignRole(ctx, created.ID, model.RoleClient); err != nil {
		return nil, &common.PersistenceError{Err: err}
	}

	return s.issueToken(ctx, created)
}

// Login authenticates by email and password. Both a missing account and a
// wrong password are reported with distinct errors internally; callers are
// expected to render them identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNoSuchAccount) {
			return nil, err
		}
		return nil, &common.PersistenceError{Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, common.ErrBadCredentials
	}

	return s.issueToken(ctx, user)
}

// issueToken mints a session token for the user, records it on the user row
// and attaches it to the returned profile.
func (s *AuthService) issueToken(ctx context.Context, user *model.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	sessionToken := jwtutil.TokenScheme + " " + token
	if err := s.users.UpdateSessionToken(ctx, user.ID, sessionToken); err != nil {
		return nil, &common.PersistenceError{Err: err}
	}

	user.SessionToken = &sessionToken
	return &AuthResult{User: user, SessionToken: sessionToken}, nil
}

func (in *RegisterInput) validate() error {
	switch {
	case in.Email == "":
		return common.NewValidationError("email is required")
	case in.Name == "":
		return common.NewValidationError("name is required")
	case in.Lastname == "":
		return common.NewValidationError("lastname is required")
	case in.Phone == "":
		return common.NewValidationError("phone is required")
	case in.Password == "":
		return common.NewValidationError("password is required")
	}
	return nil
}
