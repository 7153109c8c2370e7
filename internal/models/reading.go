package models

// SensorReading is one submitted snapshot of the monitored machine.
type SensorReading struct {
	Vibration        int  `json:"vibration"`
	Temperature      int  `json:"temperature"`
	UsageHours       int  `json:"usage_hours"`
	LastService      int  `json:"last_service"` // time since last service, unit is up to the operator
	PowerFluctuation bool `json:"power_fluctuation"`
	Noise            int  `json:"noise"`
	SensorError      bool `json:"sensor_error"`
	OilLevelLow      bool `json:"oil_level_low"`
}
