package cmd

import "time"

// Config carries everything the composition root needs to wire the
// application: HTTP, database, Kafka, collaborator endpoints, and the
// approval policy.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost             string
	KafkaOrderEventsTopic string

	InventoryServiceURL string
	BillingServiceURL   string

	// ApprovalWindow is how long an order waits for an admin decision
	// before the sweep auto-approves it.
	ApprovalWindow time.Duration
	// AutoApprovalCron is a six-field cron expression (with seconds) for
	// the sweep schedule.
	AutoApprovalCron string

	// AdminIDs are the identities allowed to join the admin notification
	// audience.
	AdminIDs []string
}
