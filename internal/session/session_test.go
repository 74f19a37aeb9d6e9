package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-cli/moneta/internal/common"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	_, err := Load()
	assert.True(t, errors.Is(err, common.ErrNotLoggedIn))

	saved := &Session{
		Token:      "bearer-token-123",
		UserID:     "user-1",
		Email:      "user@example.com",
		LoggedInAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, Save(saved))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, saved.UserID, loaded.UserID)
	assert.Equal(t, saved.Email, loaded.Email)
	assert.True(t, loaded.Valid())
}

func TestClear(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	require.NoError(t, Save(&Session{Token: "tok", UserID: "u"}))
	require.NoError(t, Clear())

	_, err := Load()
	assert.True(t, errors.Is(err, common.ErrNotLoggedIn))

	// Clearing again is fine.
	assert.NoError(t, Clear())
}

func TestLoadRejectsEmptyToken(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	require.NoError(t, Save(&Session{UserID: "u"}))
	_, err := Load()
	assert.True(t, errors.Is(err, common.ErrNotLoggedIn))
}
