package models

import "slices"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

type CleaningStatus string

const (
	CleaningClean     CleaningStatus = "clean"
	CleaningDirty     CleaningStatus = "dirty"
	CleaningInspected CleaningStatus = "inspected"
)

func (s CleaningStatus) Valid() bool {
	switch s {
	case CleaningClean, CleaningDirty, CleaningInspected:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// StayStatus is the occupancy lifecycle of a reservation.
type StayStatus string

const (
	StayNotArrived StayStatus = "not_arrived"
	StayInHouse    StayStatus = "in_house"
	StayDeparted   StayStatus = "departed"
	StayCancelled  StayStatus = "cancelled"
)

var stayTransitions = map[StayStatus][]StayStatus{
	StayNotArrived: {StayInHouse, StayCancelled},
	StayInHouse:    {StayDeparted, StayCancelled},
}

func (s StayStatus) Valid() bool {
	switch s {
	case StayNotArrived, StayInHouse, StayDeparted, StayCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a reservation may move from s to next.
// Departed and cancelled are terminal.
func (s StayStatus) CanTransition(next StayStatus) bool {
	return slices.Contains(stayTransitions[s], next)
}

// roomTransitions lists the moves a manual (housekeeping) status update may
// make. Occupancy changes only through check-in and check-out.
var roomTransitions = map[RoomStatus][]RoomStatus{
	RoomAvailable:   {RoomMaintenance},
	RoomMaintenance: {RoomAvailable},
}

func (s RoomStatus) CanSetManually(next RoomStatus) bool {
	if s == next {
		return next != RoomOccupied
	}
	return slices.Contains(roomTransitions[s], next)
}

type LoyaltyTier string

const (
	TierStandard LoyaltyTier = "standard"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

func (t LoyaltyTier) Valid() bool {
	switch t {
	case TierStandard, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}
