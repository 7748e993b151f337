package service

import (
	"context"
	"testing"

	"github.com/noreyni/webhook-api/internal/user/domain"
	"github.com/noreyni/webhook-api/pkg/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	users map[bson.ObjectID]*domain.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[bson.ObjectID]*domain.User{}}
}

func (f *fakeRepo) Insert(ctx context.Context, u *domain.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	u.ID = bson.NewObjectID()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) List(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Active {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := f.FindByEmail(ctx, email)
	return u != nil, nil
}

func (f *fakeRepo) ExistsByEmailExcluding(ctx context.Context, email string, excludeID bson.ObjectID) (bool, error) {
	for id, u := range f.users {
		if id != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *domain.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func newService(repo *fakeRepo) (domain.Service, *fakeRepo) {
	return New(Params{Log: zap.NewNop(), Repo: repo}), repo
}

func validCreate() domain.CreateRequest {
	return domain.CreateRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
		Role:      "MEMBER",
	}
}

func TestCreateHashesPassword(t *testing.T) {
	svc, repo := newService(newFakeRepo())

	view, err := svc.Create(context.Background(), validCreate(), "actor-1")
	require.NoError(t, err)
	assert.True(t, view.Active)

	id, err := bson.ObjectIDFromHex(view.ID)
	require.NoError(t, err)
	stored := repo.users[id]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")))
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	req := validCreate()
	req.FirstName = "  "
	_, err := svc.Create(context.Background(), req, "actor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidFirstName)

	req = validCreate()
	req.Email = "not-an-email"
	_, err = svc.Create(context.Background(), req, "actor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	req = validCreate()
	req.Password = "short"
	_, err = svc.Create(context.Background(), req, "actor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	req = validCreate()
	req.Role = "OVERLORD"
	_, err = svc.Create(context.Background(), req, "actor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	_, err := svc.Create(context.Background(), validCreate(), "actor-1")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreate(), "actor-1")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateEmailConflict(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	_, err := svc.Create(context.Background(), validCreate(), "actor-1")
	require.NoError(t, err)

	second := validCreate()
	second.Email = "grace@example.com"
	created, err := svc.Create(context.Background(), second, "actor-1")
	require.NoError(t, err)

	email := "ada@example.com"
	_, err = svc.Update(context.Background(), created.ID, domain.UpdateRequest{Email: &email}, "actor-1")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	created, err := svc.Create(context.Background(), validCreate(), "actor-1")
	require.NoError(t, err)

	last := "Byron"
	updated, err := svc.Update(context.Background(), created.ID, domain.UpdateRequest{LastName: &last}, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Byron", updated.LastName)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestDeleteUnknownIsNotFound(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	err := svc.Delete(context.Background(), bson.NewObjectID().Hex(), "actor-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(context.Background(), "garbage", "actor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListMeta(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		req := validCreate()
		req.Email = email
		_, err := svc.Create(context.Background(), req, "actor-1")
		require.NoError(t, err)
	}

	_, meta, err := svc.List(context.Background(), paging.Request{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), meta.TotalElements)
	assert.Equal(t, 2, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)
}

func TestStatsCountsActiveUsers(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	created, err := svc.Create(context.Background(), validCreate(), "actor-1")
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(context.Background(), created.ID, domain.UpdateRequest{Active: &inactive}, "actor-1")
	require.NoError(t, err)

	req := validCreate()
	req.Email = "grace@example.com"
	_, err = svc.Create(context.Background(), req, "actor-1")
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ActiveUsersCount)
}
