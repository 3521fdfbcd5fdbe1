package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"delivery-service/internal/common"
	"delivery-service/internal/model"
	"delivery-service/pkg/config"
	"delivery-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- fakes ---

type fakeUserStore struct {
	users  map[string]*model.User
	nextID uint

	createErr error
	findErr   error
	roleErr   error
	tokenErr  error

	assignedRoles map[uint]string
	sessionTokens map[uint]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:         map[string]*model.User{},
		nextID:        1,
		assignedRoles: map[uint]string{},
		sessionTokens: map[uint]string{},
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.users[user.Email]; exists {
		return nil, common.ErrEmailTaken
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	user, ok := f.users[email]
	if !ok {
		return nil, common.ErrNoSuchAccount
	}
	return user, nil
}

func (f *fakeUserStore) AssignRole(ctx context.Context, userID uint, roleName string) error {
	if f.roleErr != nil {
		return f.roleErr
	}
	f.assignedRoles[userID] = roleName
	return nil
}

func (f *fakeUserStore) UpdateSessionToken(ctx context.Context, userID uint, token string) error {
	if f.tokenErr != nil {
		return f.tokenErr
	}
	f.sessionTokens[userID] = token
	return nil
}

func newAuthService(store *fakeUserStore) *AuthService {
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key"})
	return NewAuthService(store, jwt)
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:    "a@b.com",
		Name:     "A",
		Lastname: "B",
		Phone:    "555-0100",
		Password: "secret",
	}
}

// --- tests ---

func TestRegister_HashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	stored := store.users["a@b.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
	assert.Equal(t, uint(1), result.User.ID)
}

func TestRegister_AssignsDefaultRole(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, model.RoleClient, store.assignedRoles[result.User.ID])
}

func TestRegister_TokenUsesStoreAssignedID(t *testing.T) {
	store := newFakeUserStore()
	store.nextID = 42
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key"})
	svc := NewAuthService(store, jwt)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(result.SessionToken, "JWT "))

	claims, err := jwt.ValidateToken(strings.TrimPrefix(result.SessionToken, "JWT "))
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestRegister_PersistsSessionToken(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, result.SessionToken, store.sessionTokens[result.User.ID])
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"missing name", func(in *RegisterInput) { in.Name = "" }},
		{"missing lastname", func(in *RegisterInput) { in.Lastname = "" }},
		{"missing phone", func(in *RegisterInput) { in.Phone = "" }},
		{"missing password", func(in *RegisterInput) { in.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore()
			svc := newAuthService(store)

			in := validInput()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			var vErr *common.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Empty(t, store.users)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestRegister_StoreFailure(t *testing.T) {
	store := newFakeUserStore()
	store.createErr = errors.New("connection refused")
	svc := newAuthService(store)

	_, err := svc.Register(context.Background(), validInput())
	var pErr *common.PersistenceError
	require.ErrorAs(t, err, &pErr)
}

func TestLogin_Success(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.SessionToken, "JWT "))
	require.NotNil(t, result.User.SessionToken)
	assert.Equal(t, result.SessionToken, *result.User.SessionToken)
}

func TestLogin_NoSuchAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	_, err := svc.Login(context.Background(), "nobody@b.com", "secret")
	assert.ErrorIs(t, err, common.ErrNoSuchAccount)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@b.com", "not-the-password")
	assert.ErrorIs(t, err, common.ErrBadCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Login(context.Background(), "", "secret")
	var vErr *common.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Login(context.Background(), "a@b.com", "")
	assert.ErrorAs(t, err, &vErr)
}

func TestLogin_StoreFailure(t *testing.T) {
	store := newFakeUserStore()
	store.findErr = errors.New("connection refused")
	svc := newAuthService(store)

	_, err := svc.Login(context.Background(), "a@b.com", "secret")
	var pErr *common.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.False(t, common.IsAuthError(err))
}
