package entities

import "parkinglot/internal/db"

type EnterRequest struct {
	VehicleID string `json:"vehicle_id"`
	BlockID   int64  `json:"block_id"`
}

type ParkingSessionResponse struct {
	ID        int64  `json:"id"`
	VehicleID string `json:"vehicle_id"`
	Checkin   string `json:"checkin"`
	BlockID   int64  `json:"block_id"`
}

func NewParkingSessionResponse(s *db.ParkingSession) ParkingSessionResponse {
	return ParkingSessionResponse{
		ID:        s.ID,
		VehicleID: s.VehicleID,
		Checkin:   s.Checkin,
		BlockID:   s.BlockID,
	}
}
