// Package agent provides the DeliveryAgent aggregate: the party that picks
// orders up from sellers and delivers them to buyers. The Assignment
// Coordinator mutates agent records in lockstep with order aggregates so the
// two never disagree about who carries what.
package agent
