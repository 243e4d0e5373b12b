// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

// The closed list of Supports/Requires bitsets referenced by descriptors
// (spec §4.3). Each is itself a DataType value used only in its combined
// form, never as a concrete typed value.
const (
	DefaultABHLVAR = A_1 | A_2 | A_3 | A_4 | A_6 |
		B_1 | B_2 | B_3 | B_4 | B_5 | B_6 | B_7 | B_8 |
		H_4 | LVAR
	AddressC      = C_4 | C_6
	UnsignedC     = C_1 | C_2 | C_3 | C_4 | C_5 | C_6 | C_7 | C_8
	BooleanD      = D_1 | D_2 | D_3 | D_4 | D_5 | D_6 | D_7 | D_8
	TemporalG     = G_2
	TemporalFIJM  = F_4 | I_6 | J_3 | M
	TemporalFGIJM = F_4 | G_2 | I_6 | J_3 | M
	TemporalK     = K_4
	TemporalL     = L
	NoneRule      = None

	// ANY is a wildcard matching every concrete type. It is pinned to
	// the tail of a Requires list regardless of insertion order.
	ANY DataType = 1 << 63
)

// Requires is an ordered list of alternative bitsets, each denoting a
// set of types the VIF semantics accept, searched in order. It behaves
// as a LIFO: Push prepends, except ANY which always occupies the last
// slot (spec §4.3). A small fixed-capacity slice is sufficient since a
// VIF/VIFE chain caps at 11 fields.
type Requires struct {
	alts    []DataType
	hasAny  bool
}

// Push adds a new alternative. If bits == ANY, any_valid becomes true
// and ANY is kept at the tail; otherwise the alternative is pushed to
// the front (most recently added is tried first).
func (r *Requires) Push(bits DataType) {
	if bits == ANY {
		r.hasAny = true
		return
	}
	r.alts = append([]DataType{bits}, r.alts...)
}

// OrWith OR-combines bits onto the most recently pushed alternative
// (used when a Combinable VIFE augments, rather than replaces, the
// current Requires head).
func (r *Requires) OrWith(bits DataType) {
	if len(r.alts) == 0 {
		r.Push(bits)
		return
	}
	r.alts[0] |= bits
}

// AnyValid reports whether ANY was pushed onto this Requires list.
func (r *Requires) AnyValid() bool { return r.hasAny }

// alternatives returns the ordered list to try. Without ANY, only the
// head alternative is tried (the loop exits on the first non-match);
// with ANY present, every alternative is tried and ANY is appended last
// (spec §4.3: "Without any_valid, the loop exits on the first
// non-match; with any_valid, every alternative is tried").
func (r *Requires) alternatives() []DataType {
	if !r.hasAny {
		if len(r.alts) == 0 {
			return nil
		}
		return r.alts[:1]
	}
	out := make([]DataType, 0, len(r.alts)+1)
	out = append(out, r.alts...)
	out = append(out, ANY)
	return out
}

// bitToType is the constant-time map from a unique bit pattern to its
// concrete DataType, built once from the registry (spec §4.3/§9: "a
// constant-time map from a unique bit-pattern to a DataType").
var bitToType = func() map[DataType]DataType {
	m := make(map[DataType]DataType, len(registry))
	for t := range registry {
		m[t] = t
	}
	return m
}()

// resolve implements the C3 algebra: for each alternative in requires,
// intersect with supports; if the intersection is exactly one concrete
// type's bit pattern, that is the answer. ANY intersected with supports
// must reduce to a single concrete bit too — ANY itself is a wildcard
// match that is legal only when supports itself carries exactly one bit.
func resolve(supports DataType, requires *Requires) (DataType, error) {
	for _, req := range requires.alternatives() {
		var candidate DataType
		if req == ANY {
			candidate = supports
		} else {
			candidate = supports & req
		}
		if t, ok := bitToType[candidate]; ok {
			return t, nil
		}
	}
	return None, ErrNoMatchingType
}
