package contest

// Score maps elapsed time (in minutes) since a problem was published to an
// integer score in [0,100]. Full credit until t1, nothing after t2, linear
// decay in between. t1 and t2 are validated at problem creation (t1 > 0,
// t2 > t1), so the denominator is always positive.
func Score(t1, t2 int, elapsedMinutes float64) int {
	if elapsedMinutes <= float64(t1) {
		return 100
	}
	if elapsedMinutes > float64(t2) {
		return 0
	}
	frac := (float64(t2) - elapsedMinutes) / float64(t2-t1)
	return int(frac * 100)
}
