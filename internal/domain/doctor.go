package domain

// Doctor is a bookable clinician. AvailableTimes holds a JSON-encoded list of
// "HH:MM" slots exactly as the backend stores it.
type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialty      string `json:"specialty"`
	AvailableTimes string `json:"available_times"`
}
