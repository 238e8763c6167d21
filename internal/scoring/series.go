package scoring

import "time"

// Observation is one daily close/volume pair.
type Observation struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is a chronological (oldest first) daily price/volume series for one
// security, covering up to one trading year. Fetched on demand, never
// persisted.
type Series []Observation

// minObservations is the shortest series the technical evaluator accepts;
// anything shorter gets neutral defaults.
const minObservations = 20

// HasEnoughData reports whether technical signals can be computed.
func (s Series) HasEnoughData() bool {
	return len(s) >= minObservations
}

// tailMeanClose averages the closes of the trailing n observations.
func (s Series) tailMeanClose(n int) float64 {
	var sum float64
	for _, o := range s[len(s)-n:] {
		sum += o.Close
	}
	return sum / float64(n)
}

// tailMeanVolume averages the volumes of the trailing n observations.
func (s Series) tailMeanVolume(n int) float64 {
	var sum float64
	for _, o := range s[len(s)-n:] {
		sum += o.Volume
	}
	return sum / float64(n)
}
