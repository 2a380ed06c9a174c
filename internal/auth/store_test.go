package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)
	return s
}

func TestStore_RegisterAndCheck(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Register("alice", "s3cret"))

	ok, err := s.Check("alice", "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Check("alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Check("nobody", "s3cret")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RegisterDuplicate(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Register("alice", "one"))
	assert.Error(t, s.Register("alice", "two"))
}

func TestStore_RegisterEmpty(t *testing.T) {
	s := newTestStore(t)

	assert.Error(t, s.Register("", "pw"))
	assert.Error(t, s.Register("bob", ""))
}

func TestStore_PasswordsNotStoredInPlaintext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Register("alice", "s3cret"))

	creds, err := s.load()
	require.NoError(t, err)
	require.Len(t, creds.Users, 1)
	assert.NotContains(t, creds.Users[0].PasswordHash, "s3cret")
}

func TestStore_Usernames(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", "a"))
	require.NoError(t, s.Register("bob", "b"))

	names, err := s.Usernames()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")

	s1, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Register("alice", "pw"))

	s2, err := NewStore(path)
	require.NoError(t, err)
	ok, err := s2.Check("alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}
