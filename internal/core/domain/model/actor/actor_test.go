package actor_test

import (
	"testing"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	testCases := []struct {
		input    string
		expected actor.Role
	}{
		{"customer", actor.RoleCustomer},
		{"Vendor", actor.RoleVendor},
		{"GROWER", actor.RoleGrower},
		{" admin ", actor.RoleAdmin},
	}

	for _, tc := range testCases {
		role, err := actor.RoleFromString(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, role)
	}

	for _, input := range []string{"", "unknown", "supplier"} {
		_, err := actor.RoleFromString(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestRole_IsFulfiller(t *testing.T) {
	assert.True(t, actor.RoleVendor.IsFulfiller())
	assert.True(t, actor.RoleGrower.IsFulfiller())
	assert.False(t, actor.RoleCustomer.IsFulfiller())
	assert.False(t, actor.RoleAdmin.IsFulfiller())
}

func TestNewActor(t *testing.T) {
	t.Run("valid_actor", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := actor.NewActor(id, actor.RoleCustomer, "  Maria Gomez ")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsEqual(id))
		assert.Equal(t, actor.RoleCustomer, a.Role())
		assert.Equal(t, "Maria Gomez", a.Name())
		assert.False(t, a.IsAdmin())
	})

	t.Run("admin_actor", func(t *testing.T) {
		a, err := actor.NewActor(kernel.NewUUID(), actor.RoleAdmin, "ops")

		require.NoError(t, err)
		assert.True(t, a.IsAdmin())
	})

	t.Run("invalid_inputs", func(t *testing.T) {
		_, err := actor.NewActor(kernel.UUID{}, actor.RoleCustomer, "x")
		require.Error(t, err)

		_, err = actor.NewActor(kernel.NewUUID(), actor.RoleUnknown, "x")
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var a actor.Actor
		require.Error(t, a.Validate())
	})
}
