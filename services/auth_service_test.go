package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaultsGoal(t *testing.T) {
	users := NewUserService(newTestDB(t))

	user, err := users.Register("alice", "alice@x.com", "pw123456", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDailyCalorieGoal, user.DailyCalorieGoal)
	assert.NotEqual(t, "pw123456", user.PasswordHash)
}

func TestRegisterDuplicates(t *testing.T) {
	users := NewUserService(newTestDB(t))

	_, err := users.Register("alice", "alice@x.com", "pw123456", nil)
	require.NoError(t, err)

	_, err = users.Register("alice", "other@x.com", "pw123456", nil)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = users.Register("bob", "alice@x.com", "pw123456", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterGoalBounds(t *testing.T) {
	users := NewUserService(newTestDB(t))

	low, high := 499, 10001
	_, err := users.Register("alice", "alice@x.com", "pw123456", &low)
	assert.ErrorIs(t, err, ErrGoalOutOfRange)
	_, err = users.Register("alice", "alice@x.com", "pw123456", &high)
	assert.ErrorIs(t, err, ErrGoalOutOfRange)

	edge := 500
	user, err := users.Register("alice", "alice@x.com", "pw123456", &edge)
	require.NoError(t, err)
	assert.Equal(t, 500, user.DailyCalorieGoal)
}

func TestAuthenticate(t *testing.T) {
	users := NewUserService(newTestDB(t))
	_, err := users.Register("alice", "alice@x.com", "pw123456", nil)
	require.NoError(t, err)

	user, err := users.Authenticate("alice", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = users.Authenticate("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate("nobody", "pw123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateGoal(t *testing.T) {
	users := NewUserService(newTestDB(t))
	user, err := users.Register("alice", "alice@x.com", "pw123456", nil)
	require.NoError(t, err)

	require.NoError(t, users.UpdateGoal(user.ID, 1800))

	updated, err := users.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, 1800, updated.DailyCalorieGoal)

	assert.ErrorIs(t, users.UpdateGoal(user.ID, 100), ErrGoalOutOfRange)
	assert.ErrorIs(t, users.UpdateGoal(user.ID+99, 1800), ErrUserNotFound)
}

func TestGetByUsernameMissing(t *testing.T) {
	users := NewUserService(newTestDB(t))
	_, err := users.GetByUsername("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
