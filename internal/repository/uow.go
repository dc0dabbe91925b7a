package repository

import "context"

// Repositories is the set of transaction-scoped repositories handed to a
// unit-of-work closure. Every repository in the set operates on the same
// underlying transaction.
type Repositories struct {
	Vehicles    VehicleRepository
	Drivers     DriverRepository
	Trips       TripRepository
	Maintenance MaintenanceRepository
}

// UnitOfWork runs a closure against a single atomic transaction. If the
// closure returns an error the transaction is rolled back and no partial
// state is observable; otherwise it is committed. The handle is passed
// explicitly into services so transaction lifecycle stays scoped to the
// call, not to the process.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
