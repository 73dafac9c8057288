package parallel

import "runtime"

import "github.com/klauspost/cpuid/v2"

// Cores reports the number of logical cores detected by cpuid, or
// runtime.NumCPU when detection fails.
func Cores() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// CPU returns the processor brand string, empty when unknown.
func CPU() string {
	return cpuid.CPU.BrandName
}
