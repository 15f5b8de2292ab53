package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/pkg/apperrors"
	"github.com/adisharma/clubhub/internal/pkg/auth"
)

type fakeAccountStore struct {
	byID    map[primitive.ObjectID]*models.Account
	byEmail map[string]*models.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		byID:    make(map[primitive.ObjectID]*models.Account),
		byEmail: make(map[string]*models.Account),
	}
}

func (f *fakeAccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return f.byEmail[email], nil
}

func (f *fakeAccountStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return f.byID[id], nil
}

func (f *fakeAccountStore) Create(ctx context.Context, acct *models.Account) (primitive.ObjectID, error) {
	acct.ID = primitive.NewObjectID()
	acct.CreatedAt = time.Now().UTC()
	f.byID[acct.ID] = acct
	f.byEmail[acct.Email] = acct
	return acct.ID, nil
}

func (f *fakeAccountStore) UpsertProvider(ctx context.Context, provider, subject, email, displayName string) (*models.Account, error) {
	for _, acct := range f.byID {
		if acct.Provider == provider && acct.ProviderSubject == subject {
			acct.Email = email
			acct.DisplayName = displayName
			return acct, nil
		}
	}
	acct := &models.Account{
		ID:              primitive.NewObjectID(),
		Email:           email,
		DisplayName:     displayName,
		Provider:        provider,
		ProviderSubject: subject,
	}
	f.byID[acct.ID] = acct
	f.byEmail[email] = acct
	return acct, nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenStore) Store(ctx context.Context, token *models.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenStore) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	return f.tokens[token], nil
}

func (f *fakeTokenStore) Delete(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "clubhub-test",
	})
}

func newAuthService(accounts AccountStore, tokens TokenStore) AuthService {
	return NewAuthService(accounts, tokens, newTestJWTService(), zerolog.Nop())
}

func TestSignUp_AndSignIn(t *testing.T) {
	accounts := newFakeAccountStore()
	tokens := newFakeTokenStore()
	svc := newAuthService(accounts, tokens)
	ctx := context.Background()

	session, pair, err := svc.SignUp(ctx, "asha@example.com", "passw0rd", "Asha")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if session.Email != "asha@example.com" || session.DisplayName != "Asha" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if _, ok := tokens.tokens[pair.RefreshToken]; !ok {
		t.Fatal("refresh token was not persisted")
	}

	again, _, err := svc.SignIn(ctx, "asha@example.com", "passw0rd")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if again.ID != session.ID {
		t.Fatalf("sign-in returned a different identity: %q vs %q", again.ID, session.ID)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeAccountStore(), newFakeTokenStore())
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "dup@example.com", "passw0rd", "First"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, _, err := svc.SignUp(ctx, "dup@example.com", "passw0rd", "Second")
	if !apperrors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestSignUp_WeakPassword(t *testing.T) {
	svc := newAuthService(newFakeAccountStore(), newFakeTokenStore())

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "ab1"},
		{"no digit", "passwords"},
		{"no letter", "12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.SignUp(context.Background(), "weak@example.com", tc.password, "W")
			if !apperrors.Is(err, apperrors.ErrInvalidPassword) {
				t.Fatalf("expected ErrInvalidPassword, got %v", err)
			}
		})
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc := newAuthService(newFakeAccountStore(), newFakeTokenStore())
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "asha@example.com", "passw0rd", "Asha"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, _, err := svc.SignIn(ctx, "asha@example.com", "wrongpass1")
	if !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignIn_UnknownAccount(t *testing.T) {
	svc := newAuthService(newFakeAccountStore(), newFakeTokenStore())

	_, _, err := svc.SignIn(context.Background(), "nobody@example.com", "passw0rd")
	if !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignInWithProvider_ReusesAccount(t *testing.T) {
	accounts := newFakeAccountStore()
	svc := newAuthService(accounts, newFakeTokenStore())
	ctx := context.Background()

	first, _, err := svc.SignInWithProvider(ctx, "google", "sub-1", "g@example.com", "G User")
	if err != nil {
		t.Fatalf("SignInWithProvider: %v", err)
	}
	second, _, err := svc.SignInWithProvider(ctx, "google", "sub-1", "g@example.com", "G User")
	if err != nil {
		t.Fatalf("SignInWithProvider repeat: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("provider sign-in created a second account: %q vs %q", first.ID, second.ID)
	}
	if len(accounts.byID) != 1 {
		t.Fatalf("expected one account, got %d", len(accounts.byID))
	}
}

func TestCurrentUser_RoundTrip(t *testing.T) {
	svc := newAuthService(newFakeAccountStore(), newFakeTokenStore())
	ctx := context.Background()

	session, pair, err := svc.SignUp(ctx, "asha@example.com", "passw0rd", "Asha")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	got, err := svc.CurrentUser(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got.ID != session.ID || got.Email != session.Email {
		t.Fatalf("token round-trip mismatch: %+v vs %+v", got, session)
	}

	if _, err := svc.CurrentUser(ctx, "not-a-token"); !apperrors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	tokens := newFakeTokenStore()
	svc := newAuthService(newFakeAccountStore(), tokens)
	ctx := context.Background()

	session, pair, err := svc.SignUp(ctx, "asha@example.com", "passw0rd", "Asha")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	refreshed, next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.ID != session.ID {
		t.Fatalf("refresh changed identity: %q vs %q", refreshed.ID, session.ID)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}
	if _, ok := tokens.tokens[pair.RefreshToken]; ok {
		t.Fatal("old refresh token still stored after rotation")
	}

	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); !apperrors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound for rotated token, got %v", err)
	}
}

func TestRefresh_ExpiredToken(t *testing.T) {
	tokens := newFakeTokenStore()
	accounts := newFakeAccountStore()
	svc := newAuthService(accounts, tokens)
	ctx := context.Background()

	_, pair, err := svc.SignUp(ctx, "asha@example.com", "passw0rd", "Asha")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	tokens.tokens[pair.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); !apperrors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSignOut_RevokesAndNotifies(t *testing.T) {
	tokens := newFakeTokenStore()
	svc := newAuthService(newFakeAccountStore(), tokens)
	ctx := context.Background()

	var events []*models.SessionUser
	unsubscribe := svc.Subscribe(func(u *models.SessionUser) {
		events = append(events, u)
	})

	session, pair, err := svc.SignUp(ctx, "asha@example.com", "passw0rd", "Asha")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if err := svc.SignOut(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, ok := tokens.tokens[pair.RefreshToken]; ok {
		t.Fatal("refresh token survived sign-out")
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 session events, got %d", len(events))
	}
	if events[0] == nil || events[0].ID != session.ID {
		t.Fatalf("first event should carry the session, got %+v", events[0])
	}
	if events[1] != nil {
		t.Fatalf("sign-out should notify nil, got %+v", events[1])
	}

	unsubscribe()
	if _, _, err := svc.SignIn(ctx, "asha@example.com", "passw0rd"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("subscriber still notified after unsubscribe, got %d events", len(events))
	}
}
