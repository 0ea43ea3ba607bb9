package analyze

// energyLadder maps BPM thresholds to energy scores, highest first.
// Tuned for harder-styles tempo bands (uptempo at the top, house at the
// bottom).
var energyLadder = []struct {
	MinBPM float64
	Level  int64
}{
	{180, 10},
	{170, 9},
	{160, 8},
	{155, 7},
	{150, 6},
	{145, 5},
	{140, 4},
	{130, 3},
	{120, 2},
}

// EnergyLevel maps a BPM value to a discrete 1-10 energy score.
// Callers with no BPM leave the energy level unset instead.
func EnergyLevel(bpm float64) int64 {
	for _, step := range energyLadder {
		if bpm >= step.MinBPM {
			return step.Level
		}
	}
	return 1
}
