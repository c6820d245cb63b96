package relevance

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Labels is a categorical column as value representations plus a per-row
// validity mask. An empty string is a valid label when its row is valid.
type Labels struct {
	Values []string
	Valid  []bool
}

func (l Labels) ok(i int) bool {
	return i < len(l.Values) && i < len(l.Valid) && l.Valid[i]
}

// EtaSquared is the correlation ratio SS_between / SS_total of ys grouped by
// groups. Rows with a missing label or an invalid y are skipped. Returns 0
// with fewer than two complete rows or zero total variance.
func EtaSquared(groups Labels, ys []float64, valid []bool) float64 {
	var order []string
	index := make(map[string]int)
	var groupSum []float64
	var groupN []int

	complete := make([]float64, 0, len(ys))
	groupOf := make([]int, 0, len(ys))

	for i := range groups.Values {
		if i >= len(ys) || i >= len(valid) || !groups.ok(i) || !valid[i] {
			continue
		}
		label := groups.Values[i]
		g, ok := index[label]
		if !ok {
			g = len(order)
			index[label] = g
			order = append(order, label)
			groupSum = append(groupSum, 0)
			groupN = append(groupN, 0)
		}
		groupSum[g] += ys[i]
		groupN[g]++
		complete = append(complete, ys[i])
		groupOf = append(groupOf, g)
	}

	if len(complete) < 2 {
		return 0
	}

	mean := stat.Mean(complete, nil)
	ssTotal := 0.0
	for _, y := range complete {
		d := y - mean
		ssTotal += d * d
	}
	if ssTotal == 0 {
		return 0
	}

	ssBetween := 0.0
	for g := range order {
		d := groupSum[g]/float64(groupN[g]) - mean
		ssBetween += float64(groupN[g]) * d * d
	}

	eta := ssBetween / ssTotal
	if math.IsNaN(eta) {
		return 0
	}
	return math.Max(0, math.Min(1, eta))
}

type labelPair struct {
	x, y string
}

// NormalizedMutualInformation returns I(X;Y) / min(H(X), H(Y)) over rows where
// both labels are valid. Entropies are in bits; the result is 0 when either
// side carries no information.
func NormalizedMutualInformation(xs, ys Labels) float64 {
	xCounts := make(map[string]int)
	yCounts := make(map[string]int)
	joint := make(map[labelPair]int)
	var xKeys, yKeys []string
	var jointKeys []labelPair
	n := 0

	for i := range xs.Values {
		if !xs.ok(i) || !ys.ok(i) {
			continue
		}
		x, y := xs.Values[i], ys.Values[i]
		if _, ok := xCounts[x]; !ok {
			xKeys = append(xKeys, x)
		}
		if _, ok := yCounts[y]; !ok {
			yKeys = append(yKeys, y)
		}
		key := labelPair{x, y}
		if _, ok := joint[key]; !ok {
			jointKeys = append(jointKeys, key)
		}
		xCounts[x]++
		yCounts[y]++
		joint[key]++
		n++
	}
	if n == 0 {
		return 0
	}

	hX := entropy(xKeys, xCounts, n)
	hY := entropy(yKeys, yCounts, n)
	hXY := entropy(jointKeys, joint, n)

	denom := math.Min(hX, hY)
	if denom <= 0 {
		return 0
	}

	// I(X;Y) = H(X) + H(Y) - H(X,Y)
	mi := math.Max(0, hX+hY-hXY)
	return math.Min(1, mi/denom)
}

// entropy iterates keys in first-seen order so the float sum is reproducible
func entropy[K comparable](keys []K, counts map[K]int, total int) float64 {
	h := 0.0
	n := float64(total)
	for _, k := range keys {
		if c := counts[k]; c > 0 {
			p := float64(c) / n
			h -= p * math.Log2(p)
		}
	}
	return h
}
