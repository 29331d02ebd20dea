package grading

// PassingThreshold is the percentage cutoff shared by the pass-rate
// computation and the D/F grade boundary. Keeping one constant prevents the
// two from drifting apart.
const PassingThreshold = 40.0

// Letters lists the grade bands from best to worst.
var Letters = []string{"A+", "A", "B+", "B", "C", "D", "F"}

// Grade maps a percentage to its letter grade band. Total and deterministic:
// any input, including out-of-range values, yields one of the seven letters.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	case percentage >= PassingThreshold:
		return "D"
	default:
		return "F"
	}
}

// Passed reports whether a percentage clears the passing threshold.
func Passed(percentage float64) bool {
	return percentage >= PassingThreshold
}
