package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/pkg/apperrors"
	"github.com/adisharma/clubhub/internal/pkg/auth"
)

// AccountStore is the account persistence boundary used by AuthService
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	Create(ctx context.Context, acct *models.Account) (primitive.ObjectID, error)
	UpsertProvider(ctx context.Context, provider, subject, email, displayName string) (*models.Account, error)
}

// TokenStore is the refresh token persistence boundary used by AuthService
type TokenStore interface {
	Store(ctx context.Context, token *models.RefreshToken) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

// AuthService handles authentication and session management
type AuthService interface {
	SignUp(ctx context.Context, email, password, displayName string) (*models.SessionUser, *models.TokenPair, error)
	SignIn(ctx context.Context, email, password string) (*models.SessionUser, *models.TokenPair, error)
	SignInWithProvider(ctx context.Context, provider, subject, email, displayName string) (*models.SessionUser, *models.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*models.SessionUser, *models.TokenPair, error)
	CurrentUser(ctx context.Context, accessToken string) (*models.SessionUser, error)
	Subscribe(fn func(*models.SessionUser)) (unsubscribe func())
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	accounts   AccountStore
	tokens     TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]func(*models.SessionUser)
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts AccountStore, tokens TokenStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		accounts:    accounts,
		tokens:      tokens,
		jwtService:  jwtService,
		logger:      logger,
		subscribers: make(map[int]func(*models.SessionUser)),
	}
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

// validateEmail validates an email address
func (s *authServiceImpl) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return apperrors.New(apperrors.ErrInvalidEmail, "invalid email format")
	}
	return nil
}

// validatePassword checks if a password meets requirements
func (s *authServiceImpl) validatePassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("password cannot be empty")
	}
	if len(password) < 8 {
		return apperrors.New(apperrors.ErrInvalidPassword, "password must be at least 8 characters long")
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return apperrors.New(apperrors.ErrInvalidPassword, "password must contain at least one letter")
	}
	if !hasDigit {
		return apperrors.New(apperrors.ErrInvalidPassword, "password must contain at least one digit")
	}

	return nil
}

// SignUp registers a new account with email/password credentials
func (s *authServiceImpl) SignUp(ctx context.Context, email, password, displayName string) (*models.SessionUser, *models.TokenPair, error) {
	if err := s.validateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := s.validatePassword(password); err != nil {
		return nil, nil, err
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if existing != nil {
		return nil, nil, apperrors.New(apperrors.ErrEmailAlreadyExists, "email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	acct := &models.Account{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	id, err := s.accounts.Create(ctx, acct)
	if err != nil {
		return nil, nil, fmt.Errorf("account creation error: %w", err)
	}

	session := &models.SessionUser{
		ID:          id.Hex(),
		DisplayName: displayName,
		Email:       email,
	}
	return s.openSession(ctx, session)
}

// SignIn authenticates email/password credentials
func (s *authServiceImpl) SignIn(ctx context.Context, email, password string) (*models.SessionUser, *models.TokenPair, error) {
	if err := s.validateEmail(email); err != nil {
		return nil, nil, err
	}
	if password == "" {
		return nil, nil, apperrors.NewValidationError("password cannot be empty")
	}

	acct, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("error finding account: %w", err)
	}
	if acct == nil || !auth.CheckPassword(acct.PasswordHash, password) {
		return nil, nil, apperrors.NewAuthenticationError("invalid email or password")
	}

	session := sessionFromAccount(acct)
	return s.openSession(ctx, session)
}

// SignInWithProvider authenticates an identity assertion already verified
// by an external provider, creating the account on first sign-in.
func (s *authServiceImpl) SignInWithProvider(ctx context.Context, provider, subject, email, displayName string) (*models.SessionUser, *models.TokenPair, error) {
	if provider == "" || subject == "" {
		return nil, nil, apperrors.NewValidationError("provider and subject are required")
	}

	acct, err := s.accounts.UpsertProvider(ctx, provider, subject, email, displayName)
	if err != nil {
		return nil, nil, fmt.Errorf("provider sign-in failed: %w", err)
	}

	session := sessionFromAccount(acct)
	return s.openSession(ctx, session)
}

// SignOut revokes the refresh token and notifies session subscribers
func (s *authServiceImpl) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		if err := s.tokens.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("sign out failed: %w", err)
		}
	}
	s.notify(nil)
	return nil
}

// Refresh exchanges a refresh token for a new token pair, rotating the
// refresh token
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*models.SessionUser, *models.TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, apperrors.New(apperrors.ErrTokenInvalid, "refresh token is required")
	}

	rt, err := s.tokens.Find(ctx, refreshToken)
	if err != nil {
		return nil, nil, fmt.Errorf("error finding refresh token: %w", err)
	}
	if rt == nil {
		return nil, nil, apperrors.New(apperrors.ErrTokenNotFound, "refresh token not found")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, nil, apperrors.New(apperrors.ErrTokenExpired, "refresh token expired")
	}

	oid, err := primitive.ObjectIDFromHex(rt.UserID)
	if err != nil {
		return nil, nil, apperrors.New(apperrors.ErrTokenInvalid, "refresh token is malformed")
	}
	acct, err := s.accounts.FindByID(ctx, oid)
	if err != nil {
		return nil, nil, fmt.Errorf("error finding account: %w", err)
	}
	if acct == nil {
		return nil, nil, apperrors.New(apperrors.ErrAccountNotFound, "account no longer exists")
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, nil, fmt.Errorf("error rotating refresh token: %w", err)
	}

	session := sessionFromAccount(acct)
	pair, err := s.issueTokens(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	return session, pair, nil
}

// CurrentUser returns the session user for a valid access token
func (s *authServiceImpl) CurrentUser(ctx context.Context, accessToken string) (*models.SessionUser, error) {
	claims, err := s.jwtService.ValidateToken(accessToken)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrTokenInvalid, err.Error())
	}
	return claims.SessionUser(), nil
}

// Subscribe registers a callback invoked with the session user on
// sign-in and with nil on sign-out. The returned func unsubscribes.
func (s *authServiceImpl) Subscribe(fn func(*models.SessionUser)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// openSession issues tokens for an authenticated user and notifies
// session subscribers
func (s *authServiceImpl) openSession(ctx context.Context, session *models.SessionUser) (*models.SessionUser, *models.TokenPair, error) {
	pair, err := s.issueTokens(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	s.notify(session)
	return session, pair, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, session *models.SessionUser) (*models.TokenPair, error) {
	pair, err := s.jwtService.GenerateTokenPair(session)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	rt := &models.RefreshToken{
		Token:     pair.RefreshToken,
		UserID:    session.ID,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	}
	if err := s.tokens.Store(ctx, rt); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return pair, nil
}

func (s *authServiceImpl) notify(session *models.SessionUser) {
	s.mu.Lock()
	fns := make([]func(*models.SessionUser), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

func sessionFromAccount(acct *models.Account) *models.SessionUser {
	return &models.SessionUser{
		ID:          acct.ID.Hex(),
		DisplayName: acct.DisplayName,
		Email:       acct.Email,
	}
}
