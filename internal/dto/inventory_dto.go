package dto

type AddDeviceRequest struct {
	IMEI string `json:"imei"`
}

type AddSimCardRequest struct {
	SimNumber string `json:"sim_number"`
	Network   string `json:"network"`
}
