package config

import "runtime"

// Threshold resolution chain (highest priority first):
//   1. CLI flag (--threshold)
//   2. Environment variable (FIBSCI_THRESHOLD)
//   3. Adaptive hardware estimation (this file)
//   4. Static default in fibonacci/constants.go

// ApplyAdaptiveThresholds fills the parallelism threshold from hardware
// characteristics when it is still at its zero default, preserving any
// user-specified override.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of the optimal
// parallel threshold without running benchmarks. More cores justify paying the
// goroutine overhead earlier, so the threshold shrinks as the core count grows.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 1 << 30 // effectively sequential
	case numCPU <= 2:
		return 8192
	case numCPU <= 4:
		return 4096
	case numCPU <= 8:
		return 2048
	default:
		return 1024
	}
}
