// Package quantity converts Kubernetes resource quantities into the units the console displays.
package quantity

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"
)

const mebi = 1 << 20

// ParseCPU converts a cpu quantity (like "500m" or "2") into millicores.
func ParseCPU(s string) (float64, error) {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return 0, fmt.Errorf("cpu quantity %q: %w", s, err)
	}
	return float64(q.MilliValue()), nil
}

// ParseMemory converts a memory quantity (like "1Gi", "512Ki" or "1G") into Mi.
func ParseMemory(s string) (float64, error) {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return 0, fmt.Errorf("memory quantity %q: %w", s, err)
	}
	return q.AsApproximateFloat64() / mebi, nil
}

// CPUFormatToM is ParseCPU, but 0 for empty or invalid input.
func CPUFormatToM(s string) float64 {
	m, err := ParseCPU(s)
	if err != nil {
		return 0
	}
	return m
}

// MemoryFormatToMi is ParseMemory, but 0 for empty or invalid input.
func MemoryFormatToMi(s string) float64 {
	mi, err := ParseMemory(s)
	if err != nil {
		return 0
	}
	return mi
}

// FormatCPU renders millicores as a cpu quantity.
func FormatCPU(milli int64) string {
	return resource.NewMilliQuantity(milli, resource.DecimalSI).String()
}

// FormatMemory renders Mi as a memory quantity.
func FormatMemory(mi int64) string {
	return resource.NewQuantity(mi*mebi, resource.BinarySI).String()
}
