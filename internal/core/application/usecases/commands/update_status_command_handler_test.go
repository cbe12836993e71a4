package commands_test

import (
	"fmt"
	"testing"

	"freshmarket/internal/core/application/usecases/commands"
	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/delivery"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/order"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testPair builds an order in Pending with an assigned vendor, its paired
// delivery, and the vendor actor entitled to advance both.
func testPair(t *testing.T) (*order.Order, *delivery.Delivery, actor.Actor) {
	t.Helper()

	vendorID := kernel.NewUUID()
	vendor, err := actor.NewActor(vendorID, actor.RoleVendor, "Green Valley Farm")
	require.NoError(t, err)

	item, err := order.NewLineItem(kernel.NewUUID(), "Heirloom Tomatoes", 2, 500)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), "FM-TEST000001", kernel.NewUUID(), "Ada Vance",
		[]order.LineItem{item}, 1000, testAddress(t),
	)
	require.NoError(t, err)
	require.NoError(t, o.AssignVendor(vendorID, "Green Valley Farm"))

	d, err := delivery.NewFromOrder(kernel.NewUUID(), o)
	require.NoError(t, err)

	return o, d, vendor
}

func updateCmd(t *testing.T, kind commands.RecordKind, id kernel.UUID,
	requested status.Status, requester actor.Actor,
) commands.UpdateStatusCommand {
	t.Helper()
	cmd, err := commands.NewUpdateStatusCommand(kind, id, requested, "", requester)
	require.NoError(t, err)
	return cmd
}

func TestUpdateStatusCommandHandler_Handle_OrderSuccessWithPropagation(t *testing.T) {
	ctx := t.Context()
	o, d, vendor := testPair(t)
	cmd := updateCmd(t, commands.RecordOrder, o.ID(), status.PickedUp, vendor)

	orderRepo := new(MockOrderRepository)
	uow1 := new(MockUoW)
	mock.InOrder(
		uow1.On("Begin", ctx).Return(nil).Once(),
		uow1.On("OrderRepository").Return(orderRepo).Twice(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("UpdateStatusGuarded",
			mock.Anything, o.ID(), status.Pending, mock.AnythingOfType("status.Change")).Return(nil).Once(),
		uow1.On("Commit", ctx).Return(nil).Once(),
	)

	orderID := o.ID()
	deliveryRepo := new(MockDeliveryRepository)
	uow2 := new(MockUoW)
	mock.InOrder(
		uow2.On("Begin", ctx).Return(nil).Once(),
		uow2.On("DeliveryRepository").Return(deliveryRepo).Twice(),
		deliveryRepo.On("GetByOrderRef", mock.Anything, &orderID, o.Number()).Return(d, nil).Once(),
		deliveryRepo.On("UpdateStatusGuarded",
			mock.Anything, d.ID(), status.Pending, mock.AnythingOfType("status.Change")).Return(nil).Once(),
		uow2.On("Commit", ctx).Return(nil).Once(),
		uow2.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow1).Once()
	factory.On("Create").Return(uow2).Once()

	h := commands.NewUpdateStatusCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.AlreadyInStatus)
	assert.False(t, result.PropagationIncomplete)
	require.NotNil(t, result.Order)
	assert.Equal(t, status.PickedUp, result.Order.Status())
	assert.Equal(t, "Green Valley Farm", result.Order.LastChange().By)

	orderRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow1.AssertExpectations(t)
	uow2.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_AlreadyInStatus(t *testing.T) {
	ctx := t.Context()
	o, _, vendor := testPair(t)
	cmd := updateCmd(t, commands.RecordOrder, o.ID(), status.Pending, vendor)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStatusCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.AlreadyInStatus)
	assert.Equal(t, status.Pending, result.Order.Status())
	require.Len(t, result.Order.History(), 1)
	uow.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_UnrelatedActor(t *testing.T) {
	ctx := t.Context()
	o, _, _ := testPair(t)
	stranger, err := actor.NewActor(kernel.NewUUID(), actor.RoleCustomer, "Mallory")
	require.NoError(t, err)
	cmd := updateCmd(t, commands.RecordOrder, o.ID(), status.Cancelled, stranger)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFoundOrUnauthorized)
}

func TestUpdateStatusCommandHandler_Handle_RecordNotFound(t *testing.T) {
	ctx := t.Context()
	_, _, vendor := testPair(t)
	missingID := kernel.NewUUID()
	cmd := updateCmd(t, commands.RecordOrder, missingID, status.PickedUp, vendor)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, missingID).
			Return(nil, fmt.Errorf("order: %w", errs.ErrObjectNotFound)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStatusCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFoundOrUnauthorized)
}

func TestUpdateStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	o, _, vendor := testPair(t)
	cmd := updateCmd(t, commands.RecordOrder, o.ID(), status.Delivered, vendor)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStatusCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrIllegalTransition)
}

func TestUpdateStatusCommandHandler_Handle_PropagationIncomplete(t *testing.T) {
	ctx := t.Context()
	o, _, vendor := testPair(t)
	cmd := updateCmd(t, commands.RecordOrder, o.ID(), status.PickedUp, vendor)

	orderRepo := new(MockOrderRepository)
	uow1 := new(MockUoW)
	mock.InOrder(
		uow1.On("Begin", ctx).Return(nil).Once(),
		uow1.On("OrderRepository").Return(orderRepo).Twice(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("UpdateStatusGuarded",
			mock.Anything, o.ID(), status.Pending, mock.AnythingOfType("status.Change")).Return(nil).Once(),
		uow1.On("Commit", ctx).Return(nil).Once(),
	)

	orderID := o.ID()
	deliveryRepo := new(MockDeliveryRepository)
	uow2 := new(MockUoW)
	mock.InOrder(
		uow2.On("Begin", ctx).Return(nil).Once(),
		uow2.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrderRef", mock.Anything, &orderID, o.Number()).
			Return(nil, fmt.Errorf("delivery: %w", errs.ErrObjectNotFound)).Once(),
		uow2.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow1).Once()
	factory.On("Create").Return(uow2).Once()

	h := commands.NewUpdateStatusCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.PropagationIncomplete)
	assert.Equal(t, status.PickedUp, result.Order.Status())
	uow1.AssertExpectations(t)
	uow2.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_ConflictRetriesOnce(t *testing.T) {
	ctx := t.Context()
	o, _, vendor := testPair(t)
	cmd := updateCmd(t, commands.RecordOrder, o.ID(), status.PickedUp, vendor)

	// A racing caller lands PickedUp between this caller's read and write.
	// The retry re-reads the advanced record and resolves as already-in-status.
	advanced, err := order.RestoreOrder(
		o.ID(), o.Number(), o.PurchaserID(), o.PurchaserName(), o.VendorID(), o.VendorName(),
		o.Items(), o.TotalCents(), o.DeliveryAddress(), status.PickedUp,
		append(o.History(), status.NewChange(status.PickedUp, "rival", "")), o.CreatedAt(),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow1 := new(MockUoW)
	mock.InOrder(
		uow1.On("Begin", ctx).Return(nil).Once(),
		uow1.On("OrderRepository").Return(orderRepo).Twice(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("UpdateStatusGuarded",
			mock.Anything, o.ID(), status.Pending, mock.AnythingOfType("status.Change")).
			Return(errs.ErrStatusConflict).Once(),
		uow1.On("Rollback", ctx).Return(nil).Once(),
	)

	uow2 := new(MockUoW)
	mock.InOrder(
		uow2.On("Begin", ctx).Return(nil).Once(),
		uow2.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(advanced, nil).Once(),
		uow2.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow1).Once()
	factory.On("Create").Return(uow2).Once()

	h := commands.NewUpdateStatusCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.AlreadyInStatus)
	assert.Equal(t, status.PickedUp, result.Order.Status())
	uow1.AssertExpectations(t)
	uow2.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_DeliverySuccess(t *testing.T) {
	ctx := t.Context()
	o, d, vendor := testPair(t)
	cmd := updateCmd(t, commands.RecordDelivery, d.ID(), status.PickedUp, vendor)

	deliveryRepo := new(MockDeliveryRepository)
	uow1 := new(MockUoW)
	mock.InOrder(
		uow1.On("Begin", ctx).Return(nil).Once(),
		uow1.On("DeliveryRepository").Return(deliveryRepo).Twice(),
		deliveryRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		deliveryRepo.On("UpdateStatusGuarded",
			mock.Anything, d.ID(), status.Pending, mock.AnythingOfType("status.Change")).Return(nil).Once(),
		uow1.On("Commit", ctx).Return(nil).Once(),
	)

	orderRepo := new(MockOrderRepository)
	uow2 := new(MockUoW)
	mock.InOrder(
		uow2.On("Begin", ctx).Return(nil).Once(),
		uow2.On("OrderRepository").Return(orderRepo).Twice(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("UpdateStatusGuarded",
			mock.Anything, o.ID(), status.Pending, mock.AnythingOfType("status.Change")).Return(nil).Once(),
		uow2.On("Commit", ctx).Return(nil).Once(),
		uow2.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow1).Once()
	factory.On("Create").Return(uow2).Once()

	h := commands.NewUpdateStatusCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.PropagationIncomplete)
	require.NotNil(t, result.Delivery)
	assert.Equal(t, status.PickedUp, result.Delivery.Status())
	require.Len(t, result.Delivery.Timeline(), 2)
	uow1.AssertExpectations(t)
	uow2.AssertExpectations(t)
}
