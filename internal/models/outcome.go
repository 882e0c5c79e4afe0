package models

import "time"

type ProtectionKind string

const (
	ProtectionPlaced            ProtectionKind = "placed"
	ProtectionSkippedUnfilled   ProtectionKind = "skipped_unfilled"
	ProtectionCancelledUnfilled ProtectionKind = "cancelled_unfilled"
	ProtectionFailed            ProtectionKind = "failed"
)

// ProtectionOutcome is the terminal result of one entry order's background
// task. It never travels back to the original caller.
type ProtectionOutcome struct {
	Kind            ProtectionKind
	ExchangeOrderID string
	Detail          string
}

// TrackedFill is the polling state for one entry order. Owned by exactly one
// goroutine, never shared.
type TrackedFill struct {
	OrderID    string
	Elapsed    time.Duration
	LastQty    float64
	LastStatus string
}
