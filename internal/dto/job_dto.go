package dto

type SubmitInstallationRequest struct {
	DeviceID    string `json:"device_id"`
	SimCardID   string `json:"sim_card_id"`
	PlateNumber string `json:"plate_number"`
	VehicleName string `json:"vehicle_name"`
}

type CompleteConfigurationRequest struct {
	IMEI          string `json:"imei"`
	SimNumber     string `json:"sim_number"`
	PlatformID    string `json:"platform_id"`
	InstallerName string `json:"installer_name"`
}

type RecordPaymentRequest struct {
	Amount    float64 `json:"amount"`
	Collector string  `json:"collector"`
}
