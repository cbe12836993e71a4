package status_test

import (
	"testing"

	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []status.Status {
	return []status.Status{
		status.Pending,
		status.PickedUp,
		status.InTransit,
		status.OutForDelivery,
		status.Delivered,
		status.Cancelled,
	}
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   status.Status
		expected string
	}{
		{status.Unknown, "Unknown"},
		{status.Pending, "Pending"},
		{status.PickedUp, "Picked Up"},
		{status.InTransit, "In Transit"},
		{status.OutForDelivery, "Out for Delivery"},
		{status.Delivered, "Delivered"},
		{status.Cancelled, "Cancelled"},
		{status.Status(99), "Unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses() {
		require.NoError(t, s.Validate())
	}

	require.Error(t, status.Unknown.Validate())
	require.Error(t, status.Status(99).Validate())
}

func TestFromString(t *testing.T) {
	t.Run("canonical_forms", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := status.FromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("normalizes_case_and_separators", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected status.Status
		}{
			{"picked_up", status.PickedUp},
			{"PICKED-UP", status.PickedUp},
			{"  picked   up ", status.PickedUp},
			{"in_transit", status.InTransit},
			{"out_for_delivery", status.OutForDelivery},
			{"OUT FOR DELIVERY", status.OutForDelivery},
			{"pending", status.Pending},
			{"delivered", status.Delivered},
			{"cancelled", status.Cancelled},
		}

		for _, tc := range testCases {
			parsed, err := status.FromString(tc.input)
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.expected, parsed, "input %q", tc.input)
		}
	})

	t.Run("rejects_unrecognized_tokens", func(t *testing.T) {
		for _, input := range []string{"", "shipped", "unknown", "pen ding"} {
			_, err := status.FromString(input)
			require.Error(t, err, "input %q", input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

// TestStatus_TransitionTo_Soundness walks every (current, requested) pair:
// pairs on a graph edge must be allowed, every other distinct pair denied.
func TestStatus_TransitionTo_Soundness(t *testing.T) {
	allowed := map[status.Status][]status.Status{
		status.Pending:        {status.PickedUp, status.Cancelled},
		status.PickedUp:       {status.InTransit},
		status.InTransit:      {status.OutForDelivery},
		status.OutForDelivery: {status.Delivered},
		status.Delivered:      {},
		status.Cancelled:      {},
	}

	isAllowed := func(from, to status.Status) bool {
		for _, next := range allowed[from] {
			if next == to {
				return true
			}
		}
		return false
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			got, err := from.TransitionTo(to)

			switch {
			case from == to:
				require.ErrorIs(t, err, status.ErrAlreadyInStatus,
					"%s -> %s must be reported as already-in-status", from, to)
			case isAllowed(from, to):
				require.NoError(t, err, "%s -> %s must be allowed", from, to)
				assert.Equal(t, to, got)
			default:
				require.ErrorIs(t, err, status.ErrIllegalTransition,
					"%s -> %s must be denied", from, to)
			}
		}
	}
}

func TestStatus_TransitionTo_RejectsUnknownTarget(t *testing.T) {
	_, err := status.Pending.TransitionTo(status.Unknown)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, status.Delivered.IsTerminal())
	assert.True(t, status.Cancelled.IsTerminal())
	assert.False(t, status.Pending.IsTerminal())
	assert.False(t, status.OutForDelivery.IsTerminal())
	assert.False(t, status.Unknown.IsTerminal())
}

func TestIllegalTransitionError_Message(t *testing.T) {
	err := status.NewIllegalTransitionError(status.PickedUp, status.Delivered)

	assert.Equal(t, "illegal status transition: Picked Up -> Delivered", err.Error())
	require.ErrorIs(t, err, status.ErrIllegalTransition)
}

func TestAppendChange(t *testing.T) {
	t.Run("initializes_nil_ledger", func(t *testing.T) {
		ledger := status.AppendChange(nil, status.NewChange(status.Pending, "customer-1", ""))

		require.Len(t, ledger, 1)
		assert.Equal(t, status.Pending, ledger[0].Status)
		assert.Equal(t, "customer-1", ledger[0].By)
		assert.False(t, ledger[0].At.IsZero())
	})

	t.Run("appends_in_order", func(t *testing.T) {
		ledger := status.AppendChange(nil, status.NewChange(status.Pending, "", ""))
		ledger = status.AppendChange(ledger, status.NewChange(status.PickedUp, "vendor-1", "left the farm"))

		require.Len(t, ledger, 2)
		assert.Equal(t, status.Pending, ledger[0].Status)
		assert.Equal(t, status.PickedUp, ledger[1].Status)
		assert.Equal(t, "left the farm", ledger[1].Note)
		assert.False(t, ledger[1].At.Before(ledger[0].At))
	})
}
