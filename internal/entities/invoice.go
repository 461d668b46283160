package entities

type Invoice struct {
	DurationHour int64 `json:"duration_hour"`
	Amount       int64 `json:"amount"`
}

type CheckoutInvoice struct {
	VehicleID string  `json:"vehicle_id"`
	Checkin   string  `json:"checkin"`
	Checkout  string  `json:"checkout"`
	BlockID   int64   `json:"block_id"`
	Invoice   Invoice `json:"invoice"`
}
