// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBasic(t *testing.T) {
	var req Requires
	req.Push(UnsignedC)
	got, err := resolve(A_4|B_4|C_4|D_4|F_4|K_4, &req)
	assert.NoError(t, err)
	assert.Equal(t, C_4, got)
}

func TestResolveNoMatch(t *testing.T) {
	var req Requires
	req.Push(TemporalG)
	_, err := resolve(C_1|C_2|C_4, &req)
	assert.ErrorIs(t, err, ErrNoMatchingType)
}

func TestResolveLIFOWithoutAny(t *testing.T) {
	var req Requires
	req.Push(UnsignedC)    // pushed first, ends up at tail
	req.Push(BooleanD)     // pushed second, tried first
	// Supports only matches UnsignedC's candidate, not BooleanD's, and
	// without ANY the loop must exit after the first (BooleanD) miss.
	_, err := resolve(C_4, &req)
	assert.ErrorIs(t, err, ErrNoMatchingType)
}

func TestResolveAnyPinnedToTail(t *testing.T) {
	var req Requires
	req.Push(BooleanD)
	req.Push(ANY)
	req.Push(UnsignedC)
	alts := req.alternatives()
	assert.Equal(t, ANY, alts[len(alts)-1], "ANY must always sort to the last slot")
	got, err := resolve(C_4, &req)
	assert.NoError(t, err)
	assert.Equal(t, C_4, got)
}

func TestResolveAnyTriedOnlyAfterOthersFail(t *testing.T) {
	var req Requires
	req.Push(ANY)
	req.Push(BooleanD)
	// BooleanD fails against C_4 supports, but ANY is present so the
	// loop must continue and match via the wildcard.
	got, err := resolve(C_4, &req)
	assert.NoError(t, err)
	assert.Equal(t, C_4, got)
}

func TestOrWithAugmentsHead(t *testing.T) {
	var req Requires
	req.Push(C_4)
	req.OrWith(D_4) // head alternative becomes C_4|D_4
	got, err := resolve(C_4, &req)
	assert.NoError(t, err)
	assert.Equal(t, C_4, got)
}
