package service

import (
	"math"
	"time"
)

const (
	// MaxWeightG caps a single record's weight in grams.
	MaxWeightG = 100000
	// DailyRecordCap caps how many records a user may submit per local day.
	DailyRecordCap = 50
	// EditWindow is how long after creation a record's owner may change it.
	EditWindow = 24 * time.Hour
)

// CalcPoints converts disposed weight to reward points. The factor is
// points per gram, so 5000 g at 0.05 yields 250.
func CalcPoints(weightG int, pointFactor float64) int {
	return int(math.Round(float64(weightG) * pointFactor))
}
