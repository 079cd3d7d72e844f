package growth

// Stat is the population mean and standard deviation of one measurement at a
// given age.
type Stat struct {
	Mean float64 `json:"mean" yaml:"mean"`
	SD   float64 `json:"sd" yaml:"sd"`
}

// ReferenceStandard holds the population statistics for weight (kg),
// length/height (cm) and head circumference (cm) at one age in months.
type ReferenceStandard struct {
	Weight Stat `json:"weight" yaml:"weight"`
	Height Stat `json:"height" yaml:"height"`
	Head   Stat `json:"head" yaml:"head"`
}

// MaxReferenceAgeMonths is the last age bucket of the reference table.
const MaxReferenceAgeMonths = 24

// referenceStandards is indexed by age in completed months, 0 through 24.
// Values follow the WHO child growth standards (medians, rounded SDs).
var referenceStandards = [MaxReferenceAgeMonths + 1]ReferenceStandard{
	{Weight: Stat{3.3, 0.4}, Height: Stat{49.9, 1.9}, Head: Stat{34.5, 1.2}},
	{Weight: Stat{4.5, 0.6}, Height: Stat{54.7, 2.0}, Head: Stat{37.3, 1.2}},
	{Weight: Stat{5.6, 0.7}, Height: Stat{58.4, 2.1}, Head: Stat{39.1, 1.1}},
	{Weight: Stat{6.4, 0.8}, Height: Stat{61.4, 2.1}, Head: Stat{40.5, 1.1}},
	{Weight: Stat{7.0, 0.8}, Height: Stat{63.9, 2.2}, Head: Stat{41.6, 1.1}},
	{Weight: Stat{7.5, 0.9}, Height: Stat{65.9, 2.2}, Head: Stat{42.6, 1.1}},
	{Weight: Stat{7.9, 0.9}, Height: Stat{67.6, 2.3}, Head: Stat{43.3, 1.2}},
	{Weight: Stat{8.3, 0.9}, Height: Stat{69.2, 2.3}, Head: Stat{44.0, 1.2}},
	{Weight: Stat{8.6, 1.0}, Height: Stat{70.6, 2.4}, Head: Stat{44.5, 1.2}},
	{Weight: Stat{8.9, 1.0}, Height: Stat{72.0, 2.4}, Head: Stat{45.0, 1.2}},
	{Weight: Stat{9.2, 1.0}, Height: Stat{73.3, 2.5}, Head: Stat{45.4, 1.2}},
	{Weight: Stat{9.4, 1.1}, Height: Stat{74.5, 2.5}, Head: Stat{45.8, 1.2}},
	{Weight: Stat{9.6, 1.1}, Height: Stat{75.7, 2.6}, Head: Stat{46.1, 1.2}},
	{Weight: Stat{9.9, 1.1}, Height: Stat{76.9, 2.6}, Head: Stat{46.3, 1.2}},
	{Weight: Stat{10.1, 1.1}, Height: Stat{78.0, 2.7}, Head: Stat{46.6, 1.3}},
	{Weight: Stat{10.3, 1.2}, Height: Stat{79.1, 2.7}, Head: Stat{46.8, 1.3}},
	{Weight: Stat{10.5, 1.2}, Height: Stat{80.2, 2.8}, Head: Stat{47.0, 1.3}},
	{Weight: Stat{10.7, 1.2}, Height: Stat{81.2, 2.8}, Head: Stat{47.2, 1.3}},
	{Weight: Stat{10.9, 1.2}, Height: Stat{82.3, 2.9}, Head: Stat{47.4, 1.3}},
	{Weight: Stat{11.1, 1.3}, Height: Stat{83.2, 2.9}, Head: Stat{47.5, 1.3}},
	{Weight: Stat{11.3, 1.3}, Height: Stat{84.2, 3.0}, Head: Stat{47.7, 1.3}},
	{Weight: Stat{11.5, 1.3}, Height: Stat{85.1, 3.0}, Head: Stat{47.8, 1.3}},
	{Weight: Stat{11.8, 1.3}, Height: Stat{86.0, 3.1}, Head: Stat{48.0, 1.3}},
	{Weight: Stat{12.0, 1.4}, Height: Stat{86.9, 3.1}, Head: Stat{48.1, 1.3}},
	{Weight: Stat{12.2, 1.4}, Height: Stat{87.8, 3.2}, Head: Stat{48.3, 1.3}},
}

// LookupStandard returns the reference standard for the given age in months.
// Ages past the end of the table clamp to the last entry and negative ages
// clamp to the first; the table is never extrapolated.
func LookupStandard(ageMonths int) ReferenceStandard {
	if ageMonths < 0 {
		ageMonths = 0
	}
	if ageMonths > MaxReferenceAgeMonths {
		ageMonths = MaxReferenceAgeMonths
	}
	return referenceStandards[ageMonths]
}
