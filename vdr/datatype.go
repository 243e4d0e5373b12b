// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"encoding/binary"
	"math"
)

// DataType is a closed set of concrete data types plus the None
// singleton, each identified by a unique bit in a set. The spec calls
// this a "32-bit bitset"; it is widened here to uint64 to give all 38
// concrete types a distinct bit without collapsing the representation
// to a string-keyed map (see DESIGN.md Open Question 1). The bitset is
// both a type identity and, in combination, a Supports/Requires rule.
type DataType uint64

// Concrete data types, one bit per type. Values are grouped the way
// asdu/identifier.go groups its TypeID byte-enum, but as bit positions
// rather than sequential byte codes, since a DataType also doubles as a
// Supports/Requires rule member.
const None DataType = 0

const (
	A_1 DataType = 1 << iota
	A_2
	A_3
	A_4
	A_6

	B_1
	B_2
	B_3
	B_4
	B_5
	B_6
	B_7
	B_8

	C_1
	C_2
	C_3
	C_4
	C_5
	C_6
	C_7
	C_8

	D_1
	D_2
	D_3
	D_4
	D_5
	D_6
	D_7
	D_8

	F_4
	G_2
	I_6
	J_3
	K_4
	H_4

	L
	M
	LVAR
)

//go:generate stringer -type=DataType

var dataTypeNames = map[DataType]string{
	A_1: "A_1", A_2: "A_2", A_3: "A_3", A_4: "A_4", A_6: "A_6",
	B_1: "B_1", B_2: "B_2", B_3: "B_3", B_4: "B_4", B_5: "B_5", B_6: "B_6", B_7: "B_7", B_8: "B_8",
	C_1: "C_1", C_2: "C_2", C_3: "C_3", C_4: "C_4", C_5: "C_5", C_6: "C_6", C_7: "C_7", C_8: "C_8",
	D_1: "D_1", D_2: "D_2", D_3: "D_3", D_4: "D_4", D_5: "D_5", D_6: "D_6", D_7: "D_7", D_8: "D_8",
	F_4: "F_4", G_2: "G_2", I_6: "I_6", J_3: "J_3", K_4: "K_4", H_4: "H_4",
	L: "L", M: "M", LVAR: "LVAR",
	None: "None",
}

func (t DataType) String() string {
	if s, ok := dataTypeNames[t]; ok {
		return s
	}
	return "DataType(combined)"
}

// decodeFunc decodes exactly `length` raw bytes (or, for variable types,
// whatever ParseData has already sliced off for it) into a Value.
type decodeFunc func(raw []byte) (Value, error)

// typeInfo is the per-concrete-type registry row: byte length (-1 for
// variable) and decoder.
type typeInfo struct {
	length  int
	decoder decodeFunc
}

var registry = map[DataType]typeInfo{
	A_1: {1, decodeBCD}, A_2: {2, decodeBCD}, A_3: {3, decodeBCD}, A_4: {4, decodeBCD}, A_6: {6, decodeBCD},

	B_1: {1, decodeSigned}, B_2: {2, decodeSigned}, B_3: {3, decodeSigned}, B_4: {4, decodeSigned},
	B_5: {5, decodeSigned}, B_6: {6, decodeSigned}, B_7: {7, decodeSigned}, B_8: {8, decodeSigned},

	C_1: {1, decodeUnsigned}, C_2: {2, decodeUnsigned}, C_3: {3, decodeUnsigned}, C_4: {4, decodeUnsigned},
	C_5: {5, decodeUnsigned}, C_6: {6, decodeUnsigned}, C_7: {7, decodeUnsigned}, C_8: {8, decodeUnsigned},

	D_1: {1, decodeBits}, D_2: {2, decodeBits}, D_3: {3, decodeBits}, D_4: {4, decodeBits},
	D_5: {5, decodeBits}, D_6: {6, decodeBits}, D_7: {7, decodeBits}, D_8: {8, decodeBits},

	H_4: {4, decodeFloat32},
	G_2: {2, decodeCP16},
	F_4: {4, decodeCP32},
	I_6: {6, decodeCP48},
	J_3: {3, decodeCP24},
	K_4: {4, decodeDSTChange},

	L:    {-1, decodeL},
	M:    {-1, decodeM},
	LVAR: {-1, nil}, // LVAR is dispatched specially by ParseData; see data.go
}

// Length returns the fixed byte length of t, or -1 if t is variable.
func (t DataType) Length() int {
	info, ok := registry[t]
	if !ok {
		return -1
	}
	return info.length
}

// decoder returns the registered decoder for a single concrete type.
func (t DataType) decoder() decodeFunc {
	return registry[t].decoder
}

// decodeBCD implements the Type-A nibble-pair BCD rule: scan nibbles
// LSB-first, 0xF in the high nibble of the most significant byte flips
// sign and terminates; any other digit >= 0xA is invalid. raw[0] holds
// the least-significant decimal pair, so later bytes carry increasing
// place value.
func decodeBCD(raw []byte) (Value, error) {
	var acc int64
	negative := false
	place := int64(1)
	n := len(raw)
	for i := 0; i < n; i++ {
		b := raw[i]
		lo := b & 0x0F
		hi := b >> 4
		if i == n-1 && hi == 0x0F {
			negative = true
			if lo >= 0x0A {
				return IntegerValue(false, 0), nil
			}
			acc += int64(lo) * place
			break
		}
		if lo >= 0x0A || hi >= 0x0A {
			return IntegerValue(false, 0), nil
		}
		acc += (int64(hi)*10 + int64(lo)) * place
		place *= 100
	}
	if negative {
		acc = -acc
	}
	return IntegerValue(true, acc), nil
}

// decodeSigned implements the Type-B little-endian two's-complement
// rule; the minimum representable value is the sensor-invalid sentinel.
func decodeSigned(raw []byte) (Value, error) {
	n := len(raw)
	var u uint64
	for i := n - 1; i >= 0; i-- {
		u = u<<8 | uint64(raw[i])
	}
	signBit := uint64(1) << (8*n - 1)
	var v int64
	if u&signBit != 0 {
		v = int64(u) - int64(1)<<(8*n)
	} else {
		v = int64(u)
	}
	sentinel := -(int64(1) << (8*n - 1))
	if v == sentinel {
		return IntegerValue(false, 0), nil
	}
	return IntegerValue(true, v), nil
}

// decodeUnsigned implements the Type-C little-endian unsigned rule; the
// all-ones value is the sensor-invalid sentinel.
func decodeUnsigned(raw []byte) (Value, error) {
	n := len(raw)
	var u uint64
	for i := n - 1; i >= 0; i-- {
		u = u<<8 | uint64(raw[i])
	}
	var sentinel uint64
	if n == 8 {
		sentinel = math.MaxUint64
	} else {
		sentinel = (uint64(1) << (8 * n)) - 1
	}
	if u == sentinel {
		return IntegerValue(false, 0), nil
	}
	return IntegerValue(true, int64(u)), nil
}

// decodeBits implements the Type-D bit-array rule: LSB first per byte,
// bytes in transmission order.
func decodeBits(raw []byte) (Value, error) {
	bits := make([]bool, 0, 8*len(raw))
	for _, b := range raw {
		for i := 0; i < 8; i++ {
			bits = append(bits, b&(1<<uint(i)) != 0)
		}
	}
	return BitsValue(true, bits), nil
}

// decodeFloat32 implements the Type-H IEEE-754 binary32 little-endian
// rule; NaN is the sensor-invalid sentinel.
func decodeFloat32(raw []byte) (Value, error) {
	bits := binary.LittleEndian.Uint32(raw)
	f := math.Float32frombits(bits)
	if f != f { // NaN
		return FloatValue(false, 0), nil
	}
	return FloatValue(true, float64(f)), nil
}

// decodeDSTChange implements Type K: reserved, not decoded by this spec.
// It consumes its four bytes and returns a well-formed placeholder
// (DESIGN.md Open Question 5).
func decodeDSTChange(raw []byte) (Value, error) {
	return TemporalValue(Temporal{Valid: false}), nil
}

// decodeL implements Type L (listening window), treated defensively as
// an invalid placeholder (DESIGN.md Open Question 5). parseL reads the
// length byte and consumes as many payload bytes as its low six bits
// give; it then calls decodeL with nil, and raw is not inspected.
func decodeL(raw []byte) (Value, error) {
	return TemporalValue(Temporal{Valid: false}), nil
}

// decodeM implements the known-format sub-cases of Type M (duration or
// absolute timestamp via epoch seconds); every other format byte yields
// an invalid placeholder. raw already contains the format byte plus its
// payload, as sliced by ParseData.
func decodeM(raw []byte) (Value, error) {
	if len(raw) < 1 {
		return Value{}, ErrLengthMismatch
	}
	format := raw[0]
	switch format {
	case 0, 1:
		if len(raw) < 5 {
			return Value{}, ErrLengthMismatch
		}
		seconds := int64(binary.LittleEndian.Uint32(raw[1:5]))
		t := Temporal{
			Valid:             true,
			Epoch:             true,
			EpochSeconds:      seconds,
			ResolutionSeconds: 1,
			EpochStart:        1,
		}
		if format == 0 {
			t.UTCOffsetHours = -16 // duration, not an absolute timestamp
		} else {
			t.UTCOffsetHours = 0
		}
		return TemporalValue(t), nil
	default:
		return TemporalValue(Temporal{Valid: false}), nil
	}
}
