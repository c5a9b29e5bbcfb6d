package pressure

import "math"

// KPaPerUnit is the linear calibration factor from raw ADC units to
// kilopascal: 1000 ADC ≈ 67.6 kPa on the reference insole.
const KPaPerUnit = 67.6 / 1000.0

// PeakInfo describes the maximum-reading sensor of one frame.
type PeakInfo struct {
	SensorID string   `json:"sensor_id"`
	Region   string   `json:"region"`
	Raw      float64  `json:"raw"`
	KPa      float64  `json:"kpa"`
	Side     FootSide `json:"side"`
}

// FindPeak scans the frame for the maximum raw reading, ignoring
// missing sensors. Ties go to the lowest sensor id. The second return
// is false when every sensor is missing.
func FindPeak(f *Frame, names RegionNames, unitFactor float64) (PeakInfo, bool) {
	maxID := 0
	maxRaw := math.Inf(-1)
	for id := 1; id <= SensorCount; id++ {
		v := f.Reading(id)
		if math.IsNaN(v) {
			continue
		}
		if v > maxRaw {
			maxRaw = v
			maxID = id
		}
	}
	if maxID == 0 {
		return PeakInfo{}, false
	}
	return PeakInfo{
		SensorID: SensorID(maxID),
		Region:   names.Name(maxID),
		Raw:      maxRaw,
		KPa:      maxRaw * unitFactor,
		Side:     f.Side(),
	}, true
}
