package game

import "errors"

var (
	ErrSpotOccupied = errors.New("spot already occupied")
	ErrSpotVacant   = errors.New("spot already vacant")
	ErrNoSuchSpot   = errors.New("spot not found")
	ErrNoFreeSpot   = errors.New("no free spot")

	ErrNoSuchNPC  = errors.New("npc not found")
	ErrNotWaiting = errors.New("npc is not waiting for a delivery")

	ErrNothingHeld = errors.New("player holds nothing")
	ErrItemRemoval = errors.New("held item could not be removed")
)
