package contracts

import (
	"context"
)

// SlotUsecase is the sole authority for slot state transitions.
type SlotUsecase interface {
	// Reserve atomically claims an open slot for a patient and snapshots the
	// price. Losing a reservation race yields ErrSlotUnavailable.
	Reserve(ctx context.Context, practitionerID, date, slotID, patientID string, price float64) error
	// AttachOrder correlates a reserved slot with the provider order id.
	AttachOrder(ctx context.Context, slotID, orderID string) error
	// Finalize applies an out-of-band payment outcome. It is idempotent per
	// transaction id: replaying an already-applied outcome is a no-op.
	Finalize(ctx context.Context, orderID string, success bool, transactionID string) error
	// Release is the compensating action undoing a reservation after a
	// downstream failure. It addresses the slot directly because the failure
	// may have happened before an order id was attached.
	Release(ctx context.Context, slotID string) error
	// ReleaseByCancellation returns a booked slot to open on behalf of the
	// owning patient.
	ReleaseByCancellation(ctx context.Context, scheduleID, slotID, patientID string) error
	// ExpireStalePending sweeps reservations older than the configured TTL
	// back to open.
	ExpireStalePending(ctx context.Context) (int64, error)
}
