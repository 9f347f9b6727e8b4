// Package order provides the Order aggregate root for the marketplace
// fulfillment workflow. The aggregate owns the order lifecycle from placement
// through payment, admin approval, delivery-agent assignment, pickup, and
// delivery or cancellation.
//
// The package includes:
//   - Order: the aggregate root holding identity, items, status, history,
//     approval, assignment, and cancellation state
//   - Status: a state machine enforcing the legal transition graph
//   - Approval: the admin approval sub-state with time-based auto-approval
//   - Assignment: the delivery-agent binding and its accept/reject handshake
//
// Key business rules:
//   - Status follows the fixed graph: Pending -> Processing -> Pickup_Ready ->
//     Out_for_Delivery -> Delivered, with Cancelled reachable from every
//     non-terminal state; Delivered and Cancelled are terminal
//   - Every accepted transition appends exactly one history entry; rejected
//     attempts leave the aggregate untouched
//   - Cancellation is refused once the assigned agent has reached the buyer,
//     regardless of the graph
//   - Assignment requires granted approval, an unassigned order, and happens
//     in lockstep with the agent record
//
// All mutation goes through validated methods; direct struct construction is
// prevented by the constructor guard.
package order
