package dto

type VehicleRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Year        string `json:"year"`
	PlateNumber string `json:"plate_number"`
}

type CreateLeadRequest struct {
	FullName    string           `json:"full_name"`
	PhoneNumber string           `json:"phone_number"`
	Email       string           `json:"email"`
	Address     string           `json:"address"`
	State       string           `json:"state"`
	LeadSource  string           `json:"lead_source"`
	DOB         string           `json:"dob"` // YYYY-MM-DD, optional
	Vehicles    []VehicleRequest `json:"vehicles"`
}

type UpdateClientRequest struct {
	FullName    string           `json:"full_name"`
	PhoneNumber string           `json:"phone_number"`
	Email       string           `json:"email"`
	Address     string           `json:"address"`
	State       string           `json:"state"`
	LeadSource  string           `json:"lead_source"`
	DOB         string           `json:"dob"`
	Vehicles    []VehicleRequest `json:"vehicles"`
}

type ScheduleRequest struct {
	InstallDate string `json:"install_date"` // RFC 3339 or YYYY-MM-DD
}

type MarkLostRequest struct {
	Reason string `json:"reason"`
}
