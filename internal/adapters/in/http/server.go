// Package http exposes the order and delivery lifecycle over REST.
package http

import (
	"errors"
	"net/http"

	"freshmarket/internal/core/application/usecases/commands"
	"freshmarket/internal/core/application/usecases/queries"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	placeOrderHandler     commands.PlaceOrderCommandHandler
	updateStatusHandler   commands.UpdateStatusCommandHandler
	listOrdersHandler     queries.ListOrdersQueryHandler
	getOrderHandler       queries.GetOrderQueryHandler
	listDeliveriesHandler queries.ListDeliveriesQueryHandler
	getDeliveryHandler    queries.GetDeliveryQueryHandler
}

// NewServer creates a Server with all required handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listDeliveriesHandler queries.ListDeliveriesQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:     placeOrderHandler,
		updateStatusHandler:   updateStatusHandler,
		listOrdersHandler:     listOrdersHandler,
		getOrderHandler:       getOrderHandler,
		listDeliveriesHandler: listDeliveriesHandler,
		getDeliveryHandler:    getDeliveryHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance. Middleware
// passed here applies to the API group only, so routes registered directly
// on the echo instance, like health checks, stay outside it.
func (s *Server) RegisterRoutes(e *echo.Echo, middleware ...echo.MiddlewareFunc) {
	api := e.Group("/api/v1", middleware...)

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)

	api.GET("/deliveries", s.ListDeliveries)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.PATCH("/deliveries/:id/status", s.UpdateDeliveryStatus)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	requester, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	items := make([]commands.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		listingID, err := kernel.UUIDFromString(item.ListingID)
		if err != nil {
			return errorResponse(c, err)
		}
		items = append(items, commands.PlaceOrderItem{
			ListingID: listingID,
			Quantity:  item.Quantity,
		})
	}

	addr, err := kernel.NewAddress(req.Address.Street, req.Address.City,
		req.Address.Region, req.Address.PostalCode)
	if err != nil {
		return errorResponse(c, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(requester, items, req.TotalCents, addr)
	if err != nil {
		return errorResponse(c, err)
	}

	o, err := s.placeOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, orderPayload(o))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	requester, err := actorFromContext(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(requester)
	if err != nil {
		return errorResponse(c, err)
	}

	rows, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorResponse(c, err)
	}

	payloads := make([]OrderSummaryPayload, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, OrderSummaryPayload{
			ID:         row.ID.String(),
			Number:     row.Number,
			Status:     row.Status,
			TotalCents: row.TotalCents,
			VendorName: row.VendorName,
			CreatedAt:  row.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, payloads)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	requester, err := actorFromContext(c)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, requester)
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, OrderPayload{
		ID:            result.ID.String(),
		Number:        result.Number,
		PurchaserName: result.PurchaserName,
		VendorName:    result.VendorName,
		Status:        result.Status,
		TotalCents:    result.TotalCents,
		Items:         queryItemPayloads(result.Items),
		Address:       queryAddressPayload(result.Address),
		History:       queryChangePayloads(result.History),
		CreatedAt:     result.CreatedAt,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	return s.updateStatus(c, commands.RecordOrder)
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(c echo.Context) error {
	requester, err := actorFromContext(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListDeliveriesQuery(requester)
	if err != nil {
		return errorResponse(c, err)
	}

	rows, err := s.listDeliveriesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorResponse(c, err)
	}

	payloads := make([]DeliverySummaryPayload, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, DeliverySummaryPayload{
			ID:           row.ID.String(),
			OrderNumber:  row.OrderNumber,
			Status:       row.Status,
			CustomerName: row.CustomerName,
			VendorName:   row.VendorName,
			CreatedAt:    row.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, payloads)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(c echo.Context) error {
	requester, err := actorFromContext(c)
	if err != nil {
		return err
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID, requester)
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := s.getDeliveryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorResponse(c, err)
	}

	var orderID string
	if result.OrderID != nil {
		orderID = result.OrderID.String()
	}

	return c.JSON(http.StatusOK, DeliveryPayload{
		ID:            result.ID.String(),
		OrderID:       orderID,
		OrderNumber:   result.OrderNumber,
		CustomerName:  result.CustomerName,
		VendorName:    result.VendorName,
		Status:        result.Status,
		TotalCents:    result.TotalCents,
		Items:         queryItemPayloads(result.Items),
		Address:       queryAddressPayload(result.Address),
		Timeline:      queryChangePayloads(result.Timeline),
		StatusHistory: queryChangePayloads(result.StatusHistory),
		CreatedAt:     result.CreatedAt,
	})
}

// UpdateDeliveryStatus handles PATCH /api/v1/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	return s.updateStatus(c, commands.RecordDelivery)
}

// updateStatus is the shared body of both PATCH status endpoints. A request
// that finds the record already in the target status answers 200 like a
// successful change. A change whose counterpart record could not be
// converged still answers 200, with a warning the client may surface.
func (s *Server) updateStatus(c echo.Context, kind commands.RecordKind) error {
	requester, err := actorFromContext(c)
	if err != nil {
		return err
	}

	recordID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	requested, err := status.FromString(req.Status)
	if err != nil {
		return errorResponse(c, err)
	}

	cmd, err := commands.NewUpdateStatusCommand(kind, recordID, requested, req.Note, requester)
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := s.updateStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return errorResponse(c, err)
	}

	response := UpdateStatusResponse{
		AlreadyInStatus: result.AlreadyInStatus,
	}
	if result.Order != nil {
		response.Order = orderPayload(result.Order)
	}
	if result.Delivery != nil {
		response.Delivery = deliveryPayload(result.Delivery)
	}
	if result.PropagationIncomplete {
		response.Warnings = append(response.Warnings, WarningPropagationIncomplete)
	}

	return c.JSON(http.StatusOK, response)
}

// errorResponse maps domain errors to HTTP answers. Missing records and
// inaccessible records share the 404 answer on purpose.
func errorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrNotFoundOrUnauthorized),
		errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, status.ErrIllegalTransition),
		errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	return c.JSON(code, ErrorResponse{Code: code, Message: message})
}
