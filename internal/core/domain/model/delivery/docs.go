// Package delivery implements the Delivery aggregate: the fulfillment-side
// mirror of an order. Deliveries denormalize the order's number, customer,
// address, items, and total at creation time and track their own status
// through the shared lifecycle graph. The application layer converges the
// pair after every accepted transition; convergence is eventual, not
// transactional.
package delivery
