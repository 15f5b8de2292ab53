package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/adisharma/clubhub/internal/app/models"
)

type fakeProfileStore struct {
	docs     map[string]bson.M
	getErr   error
	setErr   error
	mergeErr error
	writes   int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{docs: make(map[string]bson.M)}
}

func (f *fakeProfileStore) Get(ctx context.Context, userID string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[userID]
	if !ok {
		return nil, nil
	}
	user := &models.User{ID: userID}
	if v, ok := doc["name"].(string); ok {
		user.Name = v
	}
	if v, ok := doc["email"].(string); ok {
		user.Email = v
	}
	if v, ok := doc["role"].(string); ok {
		user.Role = models.RoleType(v)
	}
	if v, ok := doc["roll_no"].(string); ok {
		user.RollNo = v
	}
	return user, nil
}

func (f *fakeProfileStore) GetRaw(ctx context.Context, userID string) (bson.M, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.docs[userID], nil
}

func (f *fakeProfileStore) Set(ctx context.Context, userID string, doc bson.M) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.writes++
	f.docs[userID] = doc
	return nil
}

func (f *fakeProfileStore) Merge(ctx context.Context, userID string, fields bson.M) error {
	if f.mergeErr != nil {
		return f.mergeErr
	}
	f.writes++
	doc, ok := f.docs[userID]
	if !ok {
		doc = bson.M{}
		f.docs[userID] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func newProfileService(store ProfileStore) ProfileService {
	return NewProfileService(store, zerolog.Nop())
}

func TestProfileUpdate_AllFieldsAbsent_NoWrite(t *testing.T) {
	store := newFakeProfileStore()
	svc := newProfileService(store)

	if err := svc.Update(context.Background(), "u1", &models.ProfilePatch{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.writes != 0 {
		t.Fatalf("expected no write, got %d", store.writes)
	}
}

func TestProfileUpdate_NilPatch_NoWrite(t *testing.T) {
	store := newFakeProfileStore()
	svc := newProfileService(store)

	if err := svc.Update(context.Background(), "u1", nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.writes != 0 {
		t.Fatalf("expected no write, got %d", store.writes)
	}
}

func TestProfileUpdate_MergesOnlySuppliedFields(t *testing.T) {
	store := newFakeProfileStore()
	store.docs["u1"] = bson.M{"name": "Asha", "role": "student"}
	svc := newProfileService(store)

	err := svc.Update(context.Background(), "u1", &models.ProfilePatch{RollNo: "21CS042"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	doc := store.docs["u1"]
	if doc["roll_no"] != "21CS042" {
		t.Fatalf("roll_no not merged: %v", doc)
	}
	if doc["name"] != "Asha" {
		t.Fatalf("existing name clobbered: %v", doc)
	}
}

func TestProfileCreate_StripsAbsentFields(t *testing.T) {
	store := newFakeProfileStore()
	svc := newProfileService(store)

	session := &models.SessionUser{ID: "u1", DisplayName: "Asha", Email: "asha@example.com"}
	user, err := svc.Create(context.Background(), session, &models.ProfilePatch{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	doc := store.docs["u1"]
	for _, key := range []string{"roll_no", "year", "branch", "mobile", "is_guest", "admin_clubs"} {
		if _, ok := doc[key]; ok {
			t.Fatalf("absent field %q was written: %v", key, doc)
		}
	}
	if user.Name != "Asha" {
		t.Fatalf("name = %q, want session display name", user.Name)
	}
	if user.Role != models.RoleStudent {
		t.Fatalf("role = %q, want student", user.Role)
	}
}

func TestProfileCreate_DefaultsNameWhenSessionHasNone(t *testing.T) {
	store := newFakeProfileStore()
	svc := newProfileService(store)

	session := &models.SessionUser{ID: "u1", Email: "anon@example.com"}
	user, err := svc.Create(context.Background(), session, &models.ProfilePatch{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Name != "User" {
		t.Fatalf("name = %q, want %q", user.Name, "User")
	}
}

func TestProfileGet_DefaultsRoleAndName(t *testing.T) {
	store := newFakeProfileStore()
	store.docs["u1"] = bson.M{"email": "x@example.com"}
	svc := newProfileService(store)

	user := svc.Get(context.Background(), "u1")
	if user == nil {
		t.Fatal("expected a profile")
	}
	if user.Role != models.RoleStudent {
		t.Fatalf("role = %q, want student", user.Role)
	}
	if user.Name != "User" {
		t.Fatalf("name = %q, want User", user.Name)
	}
}

func TestProfileGet_MissingDocument(t *testing.T) {
	svc := newProfileService(newFakeProfileStore())

	if user := svc.Get(context.Background(), "ghost"); user != nil {
		t.Fatalf("expected nil for missing profile, got %+v", user)
	}
}

func TestProfileGet_SwallowsReadErrors(t *testing.T) {
	store := newFakeProfileStore()
	store.getErr = errors.New("connection reset")
	svc := newProfileService(store)

	if user := svc.Get(context.Background(), "u1"); user != nil {
		t.Fatalf("expected nil on read failure, got %+v", user)
	}
}

func TestProfileGetOrCreate_CreatesMinimalProfile(t *testing.T) {
	store := newFakeProfileStore()
	svc := newProfileService(store)

	session := &models.SessionUser{ID: "u1", DisplayName: "Asha", Email: "asha@example.com"}
	user := svc.GetOrCreate(context.Background(), session)
	if user == nil {
		t.Fatal("expected a created profile")
	}
	if user.Role != models.RoleStudent || user.Email != "asha@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}
	if _, ok := store.docs["u1"]; !ok {
		t.Fatal("profile document was not written")
	}
}

func TestProfileGetOrCreate_ReturnsExisting(t *testing.T) {
	store := newFakeProfileStore()
	store.docs["u1"] = bson.M{"name": "Existing", "role": "admin"}
	svc := newProfileService(store)

	user := svc.GetOrCreate(context.Background(), &models.SessionUser{ID: "u1"})
	if user == nil || user.Name != "Existing" {
		t.Fatalf("expected existing profile, got %+v", user)
	}
	if store.writes != 0 {
		t.Fatalf("expected no write for existing profile, got %d", store.writes)
	}
}

func TestProfileGetOrCreate_SwallowsCreateFailure(t *testing.T) {
	store := newFakeProfileStore()
	store.setErr = errors.New("write denied")
	svc := newProfileService(store)

	user := svc.GetOrCreate(context.Background(), &models.SessionUser{ID: "u1"})
	if user != nil {
		t.Fatalf("expected nil on create failure, got %+v", user)
	}
}
