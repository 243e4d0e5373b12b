// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import "math"

// TransformFunc scales a raw decoded numeric value using the low-order
// exponent bits of the VIF/VIFE code that selected it. Carried forward
// from original_source's ValueTransformer as a named, closed function
// table rather than ad hoc per-row closures (see SPEC_FULL.md §4).
type TransformFunc func(raw float64, code byte) float64

// Exponent-nibble masks, spec §6 "Exponent-nibble transformers".
const (
	maskN    byte = 0x01
	maskNN   byte = 0x03
	maskNNN  byte = 0x07
	maskNNNN byte = 0x0F
)

func multPow10(mask byte, offset int) TransformFunc {
	return func(raw float64, code byte) float64 {
		n := int(code & mask)
		return raw * math.Pow(10, float64(n+offset))
	}
}

func addPow10(mask byte, offset int) TransformFunc {
	return func(raw float64, code byte) float64 {
		n := int(code & mask)
		return raw + math.Pow(10, float64(n+offset))
	}
}

// Named closed set of transform functions referenced by VIF table rows.
var (
	MultTenPowNNMinus3   = multPow10(maskNN, -3)
	MultTenPowNNNMinus3  = multPow10(maskNNN, -3)
	MultTenPowNNNNMinus3 = multPow10(maskNNNN, -3)
	MultTenPowNMinus3    = multPow10(maskN, -3)
	AddTenPowNNMinus3    = addPow10(maskNN, -3)

	MultTwoPowMinus12 TransformFunc = func(raw float64, _ byte) float64 {
		return raw * math.Pow(2, -12)
	}
	Mult1000 TransformFunc = func(raw float64, _ byte) float64 { return raw * 1000 }
	Mult1    TransformFunc = func(raw float64, _ byte) float64 { return raw }
	Mult0_1  TransformFunc = func(raw float64, _ byte) float64 { return raw * 0.1 }

	MultTenPowNNNMinus3DivSixty    = divAfter(multPow10(maskNNN, -3), 60)
	MultTenPowNNNMinus3DivThirtySixHundred = divAfter(multPow10(maskNNN, -3), 3600)
)

func divAfter(f TransformFunc, divisor float64) TransformFunc {
	return func(raw float64, code byte) float64 {
		return f(raw, code) / divisor
	}
}

// TransformStep pairs a transform with the VIF/VIFE field code it was
// read from, since each transform's exponent nibble comes from the byte
// that introduced it, not necessarily the chain's first byte.
type TransformStep struct {
	Fn   TransformFunc
	Code byte
}

// applyChain applies a chain of transforms in reading order to a raw
// numeric value, each using its own field's exponent-nibble code (spec
// §4.8 step 5: "Apply the VIB's chained value_transformers in order...
// if and only if the Value is a valid Integer or Float").
func applyChain(chain []TransformStep, raw float64) float64 {
	v := raw
	for _, step := range chain {
		v = step.Fn(v, step.Code)
	}
	return v
}
