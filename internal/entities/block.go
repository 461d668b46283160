package entities

import "parkinglot/internal/db"

// CreateBlockRequest is the body of POST /block. Availability is the block's capacity.
type CreateBlockRequest struct {
	Name         string `json:"name"`
	Availability int    `json:"availability"`
	HourlyRate   int64  `json:"hourly_rate"`
	Floor        int    `json:"floor"`
	VehicleType  string `json:"vehicle_type"`
}

type BlockResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Availability int    `json:"availability"`
	HourlyRate   int64  `json:"hourly_rate"`
	Floor        int    `json:"floor"`
	VehicleType  string `json:"vehicle_type"`
}

func NewBlockResponse(b *db.Block) BlockResponse {
	return BlockResponse{
		ID:           b.ID,
		Name:         b.Name,
		Availability: b.Capacity,
		HourlyRate:   b.HourlyRate,
		Floor:        b.Floor,
		VehicleType:  b.VehicleType,
	}
}
