package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// BookingState narrows booking listings. WAITING and REJECTED match the
// booking status, the rest are time-window filters against "now".
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState normalizes a wire value case-insensitively.
// An empty value defaults to ALL.
func ParseBookingState(s string) (BookingState, bool) {
	if s == "" {
		return StateAll, true
	}
	switch state := BookingState(strings.ToUpper(s)); state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, true
	default:
		return "", false
	}
}

type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	ItemID   int64
	BookerID int64
	Status   BookingStatus

	// Loaded alongside the booking row for views and authorization.
	Item   Item
	Booker User
}

// BookingDates is the projection the availability engine works on:
// just the interval and the item it belongs to.
type BookingDates struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}
