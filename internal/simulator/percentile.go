package simulator

// percentile returns the p-th percentile of sorted (ascending) values
// using linear interpolation between adjacent order statistics at rank
// p/100·(n-1).
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// tailMean returns the mean of all values <= cutoff. sorted must be
// ascending; the cutoff is never below sorted[0], so the tail is never
// empty for a non-empty input.
func tailMean(sorted []float64, cutoff float64) float64 {
	sum, count := 0.0, 0
	for _, v := range sorted {
		if v > cutoff {
			break
		}
		sum += v
		count++
	}
	if count == 0 {
		return cutoff
	}
	return sum / float64(count)
}
