package ports

import "time"

// MetricsSink receives business events from the core services. Injected so
// services never touch a process-wide registry directly.
type MetricsSink interface {
	// AuthAttempt records a registration or login outcome.
	AuthAttempt(success bool)
	// Logout records a session ending.
	Logout()
	// PizzaPurchase records an order fulfillment attempt with its end-to-end
	// factory latency and, on success, the order revenue.
	PizzaPurchase(success bool, latency time.Duration, revenue float64)
}
