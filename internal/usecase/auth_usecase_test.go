package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"healthconnect/config"
	"healthconnect/internal/delivery/dto"
	"healthconnect/internal/domain/entity"
	"healthconnect/internal/service"
	"healthconnect/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]bool
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]bool)}
}

func (s *memTokenStore) Store(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[service.TokenKey(userID, tokenID, tokenType)] = true
	return nil
}

func (s *memTokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[service.TokenKey(userID, tokenID, tokenType)], nil
}

func (s *memTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, service.TokenKey(userID, tokenID, tokenType))
	return nil
}

func (s *memTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.tokens {
		if strings.Contains(key, ":"+userID.String()+":") {
			delete(s.tokens, key)
		}
	}
	return nil
}

type authFixture struct {
	uc     AuthUsecase
	users  *mockUserRepo
	tokens *memTokenStore
	jwt    *jwt.JWTService
	audit  *mockAuditLogRepo
}

func newAuthFixture() *authFixture {
	log := quietLogger()
	users := newMockUserRepo()
	tokens := newMemTokenStore()
	audit := &mockAuditLogRepo{}
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})

	return &authFixture{
		uc: NewAuthUsecase(log, users, jwtService, tokens,
			service.NewProfessionalDirectory(log, users, nil, 0),
			service.NewAuditService(log, audit)),
		users:  users,
		tokens: tokens,
		jwt:    jwtService,
		audit:  audit,
	}
}

func register(t *testing.T, f *authFixture, email, userType string) *dto.UserResponse {
	t.Helper()
	user, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Someone",
		Email:    email,
		Password: "secret1",
		UserType: userType,
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()

	user := register(t, f, " Pat@Example.com ", "adult")
	assert.Equal(t, "pat@example.com", user.Email)
	assert.Equal(t, "patient", user.Role)
	assert.True(t, user.IsActive)

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)

	prof := register(t, f, "h@example.com", "health_prof")
	assert.Equal(t, "health_professional", prof.UserType)
	assert.Equal(t, "health_professional", prof.Role)
}

func TestRegister_Rejections(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "pat@example.com", "adult")

	_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{Name: "Dup", Email: "PAT@example.com", Password: "secret1", UserType: "adult"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = f.uc.Register(context.Background(), &dto.RegisterRequest{Name: "Admin", Email: "x@example.com", Password: "secret1", UserType: "admin"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.uc.Register(context.Background(), &dto.RegisterRequest{Name: "Short", Email: "y@example.com", Password: "12345", UserType: "adult"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLogin_IssuesStoredTokensWithRole(t *testing.T) {
	f := newAuthFixture()
	user := register(t, f, "h@example.com", "health_professional")

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "h@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, tokens.User)
	assert.Equal(t, user.ID, tokens.User.ID)
	assert.Equal(t, int64(900), tokens.ExpiresIn)

	claims, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProfessional, claims.Role)

	ok, err := f.tokens.Exists(context.Background(), user.ID, claims.TokenID, jwt.AccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_Failures(t *testing.T) {
	f := newAuthFixture()
	user := register(t, f, "pat@example.com", "adult")

	_, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "pat@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	f.users.mu.Lock()
	f.users.users[user.ID].IsActive = false
	f.users.mu.Unlock()

	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{Email: "pat@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRefreshToken_RotatesAndRevokes(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "pat@example.com", "adult")
	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "pat@example.com", Password: "secret1"})
	require.NoError(t, err)

	rotated, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: rotated.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_DeactivatedAccountLosesAllSessions(t *testing.T) {
	f := newAuthFixture()
	user := register(t, f, "pat@example.com", "adult")
	register(t, f, "ada@example.com", "adolescent")
	login := func(email string) *dto.TokenResponse {
		tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: email, Password: "secret1"})
		require.NoError(t, err)
		return tokens
	}
	laptop, phone, other := login("pat@example.com"), login("pat@example.com"), login("ada@example.com")

	f.users.mu.Lock()
	f.users.users[user.ID].IsActive = false
	f.users.mu.Unlock()

	_, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: laptop.RefreshToken})
	assert.ErrorIs(t, err, ErrAccountInactive)

	exists := func(token string, tokenType jwt.TokenType) bool {
		claims, err := f.jwt.ValidateToken(token)
		require.NoError(t, err)
		ok, err := f.tokens.Exists(context.Background(), claims.UserID, claims.TokenID, tokenType)
		require.NoError(t, err)
		return ok
	}
	assert.False(t, exists(laptop.AccessToken, jwt.AccessToken))
	assert.False(t, exists(phone.AccessToken, jwt.AccessToken))
	assert.False(t, exists(phone.RefreshToken, jwt.RefreshToken))
	assert.True(t, exists(other.AccessToken, jwt.AccessToken))
	assert.True(t, exists(other.RefreshToken, jwt.RefreshToken))
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "pat@example.com", "adult")
	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "pat@example.com", Password: "secret1"})
	require.NoError(t, err)

	access, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)

	err = f.uc.Logout(context.Background(), access.UserID, access.TokenID, &dto.LogoutRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	ok, err := f.tokens.Exists(context.Background(), access.UserID, access.TokenID, jwt.AccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestGetCurrentUser(t *testing.T) {
	f := newAuthFixture()
	user := register(t, f, "pat@example.com", "adolescent")

	me, err := f.uc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "adolescent", me.UserType)

	_, err = f.uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
