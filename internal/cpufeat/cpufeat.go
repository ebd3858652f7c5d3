// Copyright 2026 go-cfunc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cpufeat detects the SIMD capability of the host CPU and derives
// the recommended batch width for compiled float64 kernels.
package cpufeat

import "os"

// Level identifies the widest SIMD tier detected at startup.
type Level uint8

const (
	LevelScalar Level = iota
	LevelSSE2
	LevelAVX2
	LevelAVX512
	LevelNEON
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	default:
		return "unknown"
	}
}

var currentLevel Level

// Detected returns the SIMD level detected for this process.
func Detected() Level { return currentLevel }

// Float64Lanes returns how many float64 evaluation points one SIMD register
// holds at the detected level. This is the recommended batch width for
// float64 kernel compilation.
func Float64Lanes() int {
	switch currentLevel {
	case LevelAVX512:
		return 8
	case LevelAVX2:
		return 4
	case LevelSSE2, LevelNEON:
		return 2
	default:
		return 1
	}
}

// NoSimdEnv reports whether SIMD detection is disabled via the environment.
func NoSimdEnv() bool {
	return os.Getenv("CFUNC_NO_SIMD") != ""
}
