package db

import "gopkg.in/guregu/null.v4"

// Block is a parking zone. Capacity is the declared number of spaces; the
// live availability is derived from active sessions and never stored.
type Block struct {
	ID          int64
	Name        string
	Capacity    int
	HourlyRate  int64
	Floor       int
	VehicleType string
}

// ParkingSession is one vehicle's stay in a block. Checkin and Checkout are
// RFC 3339 text as persisted; Checkout is null while the session is active.
type ParkingSession struct {
	ID        int64
	VehicleID string
	BlockID   int64
	Checkin   string
	Checkout  null.String
}

func (p *ParkingSession) Active() bool {
	return !p.Checkout.Valid
}
