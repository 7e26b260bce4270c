package model

import "fmt"

// Size unit thresholds and labels (binary, 1024-based)
const (
	sizeUnit = 1024
)

var sizeLabels = [...]string{"", "KB", "MB", "GB", "TB"}

// HumanSize formats a byte count using binary units with two decimal places,
// stopping at the largest unit that keeps the value below the next
// threshold, or at TB for anything larger.
func HumanSize(size int64) string {
	v := float64(size)
	n := 0
	for v >= sizeUnit && n < len(sizeLabels)-1 {
		v /= sizeUnit
		n++
	}
	return fmt.Sprintf("%.2f %s", v, sizeLabels[n])
}

// SizeLabel renders an optional byte count, "N/A" when absent.
func SizeLabel(size *int64) string {
	if size == nil {
		return "N/A"
	}
	return HumanSize(*size)
}
