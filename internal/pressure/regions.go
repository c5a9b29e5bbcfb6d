package pressure

// RegionNames maps sensor ids to human-readable plantar region labels.
// The table is injectable; localized or clinical naming schemes can be
// swapped in without touching render or peak logic.
type RegionNames map[int]string

// DefaultRegionNames returns the standard plantar region labels for the
// 9-sensor insole.
func DefaultRegionNames() RegionNames {
	return RegionNames{
		1: "Hallux",
		2: "Medial metatarsal",
		3: "Lateral metatarsal",
		4: "Medial arch",
		5: "Lateral arch",
		6: "Midfoot",
		7: "Medial heel",
		8: "Central heel",
		9: "Lateral heel",
	}
}

// Name resolves a sensor id to its region label, falling back to the
// hardware label (e.g. "SR3") when the table has no entry.
func (r RegionNames) Name(id int) string {
	if name, ok := r[id]; ok {
		return name
	}
	return SensorID(id)
}
