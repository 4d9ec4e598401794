package domain

import "time"

// ItemRequest is an open call for an item that does not yet exist in the
// catalog. Items created in answer to it carry its id in RequestID.
type ItemRequest struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}
