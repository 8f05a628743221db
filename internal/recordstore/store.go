// Package recordstore persists the portal's record collections. The
// contract is deliberately coarse: whole-collection reads and whole-
// collection rewrites, never partial patches. Engines do a full
// read-modify-write cycle per operation.
package recordstore

import "context"

// Collection names. The file backend keeps the original portal's JSON
// file names, one file per collection.
const (
	CollectionUsers         = "users"
	CollectionLeaveRequests = "leave-requests"
	CollectionAttendance    = "attendance"
	CollectionGoals         = "goals"
	CollectionOutbox        = "outbox"
)

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	// ReadAll decodes the entire collection into out (a pointer to a
	// slice). A collection that was never written reads as empty.
	ReadAll(ctx context.Context, collection string, out any) error

	// WriteAll replaces the entire collection with records (a slice).
	WriteAll(ctx context.Context, collection string, records any) error
}
