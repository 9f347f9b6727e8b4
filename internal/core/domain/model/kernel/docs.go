// Package kernel provides shared value objects used across the fulfillment
// domain model: strongly typed UUIDs, party roles, and actors. Value objects
// here are immutable, validated at construction, and safe for concurrent use.
package kernel
