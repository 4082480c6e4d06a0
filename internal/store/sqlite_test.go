package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestNew_CreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)
	defer st.Close()

	_, err = os.Stat(filepath.Join(dir, DirName, DBName))
	assert.NoError(t, err)
	assert.Equal(t, dir, st.RootDir())
}

func TestKV_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, ok, err := st.Get(ctx, "symptomsData")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, "symptomsData", "[]"))
	require.NoError(t, st.Set(ctx, "symptomsData", `[{"date":"2024-01-01","symptoms":"Fatigue (Mild)"}]`))

	v, ok, err := st.Get(ctx, "symptomsData")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"date":"2024-01-01","symptoms":"Fatigue (Mild)"}]`, v)

	require.NoError(t, st.Delete(ctx, "symptomsData"))
	_, ok, err = st.Get(ctx, "symptomsData")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "k", "v"))
	require.NoError(t, st.Close())

	st, err = New(dir)
	require.NoError(t, err)
	defer st.Close()

	v, ok, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	type profile struct {
		Name     string `json:"name"`
		Severity string `json:"severity"`
	}

	var got profile
	err := st.GetDocument(ctx, "users", "u1", &got)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.SetDocument(ctx, "users", "u1", profile{Name: "Ann", Severity: "Mild"}))
	require.NoError(t, st.SetDocument(ctx, "users", "u1", profile{Name: "Ann", Severity: "Moderate"}))

	require.NoError(t, st.GetDocument(ctx, "users", "u1", &got))
	assert.Equal(t, profile{Name: "Ann", Severity: "Moderate"}, got)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u, err := st.CreateUser(ctx, "id-1", "a@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)

	_, err = st.CreateUser(ctx, "id-2", "a@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := st.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)

	_, err = st.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.UpdatePassword(ctx, "id-1", "hash2"))
	got, err = st.GetUser(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "hash2", got.PasswordHash)

	assert.ErrorIs(t, st.UpdatePassword(ctx, "missing", "x"), ErrNotFound)
}

func TestPasswordReset_SingleUse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.CreateUser(ctx, "id-1", "a@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, st.CreatePasswordReset(ctx, "tok", "id-1", time.Now().Add(time.Hour)))

	r, err := st.TakePasswordReset(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "id-1", r.UserID)

	_, err = st.TakePasswordReset(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessages_NewestWindowOldestFirst(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for _, id := range []string{"m1", "m2", "m3"} {
		_, err := st.AddMessage(ctx, id, "u1", "Ann", "hello "+id)
		require.NoError(t, err)
	}

	msgs, err := st.ListMessages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m2", msgs[0].ID)
	assert.Equal(t, "m3", msgs[1].ID)
}

func TestPushTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.GetPushToken(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.SavePushToken(ctx, "u1", "tok-1", true)
	require.NoError(t, err)

	p, err := st.GetPushToken(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", p.Token)
	assert.True(t, p.Granted)
}
