package utils

import (
	"strconv"
	"strings"
)

const (
	byteUnitStep        = 1024
	fractionalThreshold = 10
	wholeFractionSuffix = ".0"
)

var byteUnits = [...]string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders a byte count with a lower-case binary unit, e.g.
// 512b, 1.5kb, 10mb. Values below ten keep one decimal; negative counts are 0b.
func FormatFileSize(byteCount int64) string {
	if byteCount < byteUnitStep {
		return strconv.FormatInt(max(byteCount, 0), 10) + byteUnits[0]
	}
	scaled := float64(byteCount)
	unitIndex := 0
	for scaled >= byteUnitStep && unitIndex < len(byteUnits)-1 {
		scaled /= byteUnitStep
		unitIndex++
	}
	precision := 0
	if scaled < fractionalThreshold {
		precision = 1
	}
	rendered := strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', precision, 64), wholeFractionSuffix)
	return rendered + byteUnits[unitIndex]
}
