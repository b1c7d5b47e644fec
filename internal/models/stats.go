package models

// Bucket is one labelled slot of a reporting window.
type Bucket struct {
	Label   string
	TotalMl int
	Liters  float64 // TotalMl / 1000, unrounded
}

// Statistics summarizes consumption within a reporting window.
type Statistics struct {
	Window             ReportingWindow
	TotalMl            int
	EventCount         int
	SpanDays           int
	DistinctDays       int // distinct calendar dates across the whole ledger
	AverageMl          float64
	FrequencyPerDay    float64
	GoalAchievementPct float64
}

// HasData returns true if any drink fell inside the window.
func (s Statistics) HasData() bool {
	return s.EventCount > 0
}

// PeakBucket returns the index and bucket with the highest total.
// It returns -1 when every bucket is empty.
func PeakBucket(buckets []Bucket) (int, Bucket) {
	peak := -1
	var best Bucket
	for i, b := range buckets {
		if b.TotalMl > best.TotalMl {
			peak = i
			best = b
		}
	}
	return peak, best
}

// Liters extracts the liter series from buckets for charting.
func Liters(buckets []Bucket) []float64 {
	data := make([]float64, len(buckets))
	for i, b := range buckets {
		data[i] = b.Liters
	}
	return data
}
