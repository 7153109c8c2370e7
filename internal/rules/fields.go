package rules

import (
	"fmt"
	"sort"

	"maintenance_diagnosis/internal/models"
)

type field int

const (
	fieldVibration field = iota
	fieldTemperature
	fieldUsageHours
	fieldLastService
	fieldPowerFluctuation
	fieldNoise
	fieldSensorError
	fieldOilLevelLow
)

var fieldsByName = map[string]field{
	"vibration":         fieldVibration,
	"temperature":       fieldTemperature,
	"usage_hours":       fieldUsageHours,
	"last_service":      fieldLastService,
	"power_fluctuation": fieldPowerFluctuation,
	"noise":             fieldNoise,
	"sensor_error":      fieldSensorError,
	"oil_level_low":     fieldOilLevelLow,
}

// UnknownFieldError is returned when a condition references a name that is
// not one of the reading fields.
type UnknownFieldError struct {
	Name string
	Pos  int
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q at offset %d", e.Name, e.Pos)
}

// FieldNames lists the identifiers a condition may reference.
func FieldNames() []string {
	names := make([]string, 0, len(fieldsByName))
	for n := range fieldsByName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (f field) read(r *models.SensorReading) value {
	switch f {
	case fieldVibration:
		return number(float64(r.Vibration))
	case fieldTemperature:
		return number(float64(r.Temperature))
	case fieldUsageHours:
		return number(float64(r.UsageHours))
	case fieldLastService:
		return number(float64(r.LastService))
	case fieldPowerFluctuation:
		return boolean(r.PowerFluctuation)
	case fieldNoise:
		return number(float64(r.Noise))
	case fieldSensorError:
		return boolean(r.SensorError)
	case fieldOilLevelLow:
		return boolean(r.OilLevelLow)
	}
	return number(0)
}
