// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestASCIIUnitRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 255).Draw(rt, "n")
		runes := rapid.SliceOfN(rapid.ByteRange(0x20, 0x7E), n, n).Draw(rt, "chars")
		want := string(runes)

		encoded, err := encodeASCIIUnit(want)
		require.NoError(rt, err)

		src := NewSliceSource(encoded)
		got, err := decodeASCIIUnit(context.Background(), src, 0)
		require.NoError(rt, err)
		assert.Equal(rt, want, got)
	})
}

func TestASCIIUnitRejectsZeroLength(t *testing.T) {
	src := NewSliceSource([]byte{0x00})
	_, err := decodeASCIIUnit(context.Background(), src, 0)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, LengthMismatch, perr.Kind)
}

func TestASCIIUnitRejectsNonASCII(t *testing.T) {
	src := NewSliceSource([]byte{0x01, 0xFF})
	_, err := decodeASCIIUnit(context.Background(), src, 0)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, NonASCII, perr.Kind)
}
