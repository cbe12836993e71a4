package commands_test

import (
	"testing"

	"freshmarket/internal/core/application/usecases/commands"
	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand_ValidInput(t *testing.T) {
	customer := testCustomer(t)
	addr := testAddress(t)
	items := []commands.PlaceOrderItem{{ListingID: kernel.NewUUID(), Quantity: 2}}

	cmd, err := commands.NewPlaceOrderCommand(customer, items, 1000, addr)
	require.NoError(t, err)
	assert.Equal(t, customer, cmd.Purchaser())
	assert.Equal(t, items, cmd.Items())
	assert.Equal(t, int64(1000), cmd.TotalCents())
	assert.Equal(t, addr, cmd.DeliveryAddress())
}

func TestNewPlaceOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(testCustomer(t), nil, 1000, testAddress(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewPlaceOrderCommand_NonPositiveQuantity(t *testing.T) {
	items := []commands.PlaceOrderItem{{ListingID: kernel.NewUUID(), Quantity: 0}}
	_, err := commands.NewPlaceOrderCommand(testCustomer(t), items, 1000, testAddress(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewPlaceOrderCommand_NegativeTotal(t *testing.T) {
	items := []commands.PlaceOrderItem{{ListingID: kernel.NewUUID(), Quantity: 1}}
	_, err := commands.NewPlaceOrderCommand(testCustomer(t), items, -1, testAddress(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewPlaceOrderCommand_UnconstructedPurchaser(t *testing.T) {
	items := []commands.PlaceOrderItem{{ListingID: kernel.NewUUID(), Quantity: 1}}
	_, err := commands.NewPlaceOrderCommand(actor.Actor{}, items, 1000, testAddress(t))
	require.Error(t, err)
}

func TestNewPlaceOrderCommand_UnconstructedAddress(t *testing.T) {
	items := []commands.PlaceOrderItem{{ListingID: kernel.NewUUID(), Quantity: 1}}
	_, err := commands.NewPlaceOrderCommand(testCustomer(t), items, 1000, kernel.Address{})
	require.Error(t, err)
}

func TestPlaceOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.PlaceOrderCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}
