package entities

// BlockAvailability is one row of the availability listing. Availability is
// the block's capacity minus its active sessions at the time of the request.
type BlockAvailability struct {
	Name         string `json:"name"`
	Availability int64  `json:"availability"`
	HourlyRate   int64  `json:"hourly_rate"`
	Floor        int    `json:"floor"`
}
