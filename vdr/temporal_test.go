// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCP16Date(t *testing.T) {
	// day=17 (0x11), month=6, year=26 -> yearLow=26&0x7=2, yearHigh=26>>3=3
	day, month, year := 17, 6, 26
	b0 := byte(day) | byte(year&0x07)<<5
	b1 := byte(month) | byte(year>>3)<<4
	v, err := decodeCP16([]byte{b0, b1})
	require.NoError(t, err)
	require.Equal(t, KindTemporal, v.Kind)
	assert.True(t, v.Valid)
	assert.Equal(t, day, v.Temporal.Day)
	assert.Equal(t, month, v.Temporal.Month)
	assert.Equal(t, year, v.Temporal.Year2Digit)
}

func TestDecodeCP16Sentinel(t *testing.T) {
	v, err := decodeCP16([]byte{0xFF, 0xFF})
	require.NoError(t, err)
	assert.False(t, v.Valid)
}

func TestDecodeCP16RejectsBadMonth(t *testing.T) {
	// day=0 is the every-day recurring sentinel and passes; month=0 is
	// neither a valid month nor the every-month sentinel (15).
	_, err := decodeCP16([]byte{0x00, 0x00})
	require.ErrorIs(t, err, ErrBadComponent)
}

func TestDecodeCP32DateTime(t *testing.T) {
	// minute=30, hour=14, summer=false, hundredYear=1, day=9, month=4, yearLow+High -> year=26
	minute, hour, day, month, year := 30, 14, 9, 4, 26
	hundredYear := 1
	b0 := byte(minute)
	b1 := byte(hour) | byte(hundredYear&0x03)<<5
	b2 := byte(day) | byte(year&0x07)<<5
	b3 := byte(month) | byte((year>>3)&0x07)<<4
	v, err := decodeCP32([]byte{b0, b1, b2, b3})
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, minute, v.Temporal.Minute)
	assert.Equal(t, hour, v.Temporal.Hour)
	assert.Equal(t, day, v.Temporal.Day)
	assert.Equal(t, month, v.Temporal.Month)
	assert.Equal(t, 1900+hundredYear*100+year, v.Temporal.YearFull)
}

func TestDecodeCP32InvalidMarker(t *testing.T) {
	v, err := decodeCP32([]byte{0x80, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	assert.False(t, v.Valid)
}

func TestDecodeCP32WrongLength(t *testing.T) {
	_, err := decodeCP32([]byte{0x00, 0x00, 0x00})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestDecodeCP24TimeOnly(t *testing.T) {
	second, minute, hour := 45, 12, 7
	v, err := decodeCP24([]byte{byte(second), byte(minute), byte(hour)})
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, float64(second), v.Temporal.Second)
	assert.Equal(t, minute, v.Temporal.Minute)
	assert.Equal(t, hour, v.Temporal.Hour)
}

func TestDecodeCP24Sentinel(t *testing.T) {
	v, err := decodeCP24([]byte{0xFF, 0xFF, 0xFF})
	require.NoError(t, err)
	assert.False(t, v.Valid)
}

func TestDecodeCP48WeekAndDST(t *testing.T) {
	// Build the 48-bit stream field by field, matching decodeCP48's take
	// order: IV(1) sec(6) min(6) hour(5) summer(1) day(5) dow(3) month(4)
	// yearLow(3) yearHigh(4) leap(1) dstSign(1) dstMag(2) week(6).
	var bits uint64
	shift := uint(0)
	push := func(v uint64, width uint) {
		bits |= (v & ((1 << width) - 1)) << shift
		shift += width
	}
	push(0, 1)  // IV=0 (valid)
	push(20, 6) // second
	push(40, 6) // minute
	push(11, 5) // hour
	push(1, 1)  // summer
	push(15, 5) // day
	push(3, 3)  // dayOfWeek
	push(8, 4)  // month
	push(2, 3)  // yearLow
	push(1, 4)  // yearHigh -> year = 2|1<<3 = 10
	push(1, 1)  // leap year
	push(1, 1)  // dstSign negative
	push(2, 2)  // dstMagnitude
	push(33, 6) // week

	raw := make([]byte, 6)
	for i := 0; i < 6; i++ {
		raw[i] = byte(bits >> uint(8*i))
	}
	v, err := decodeCP48(raw)
	require.NoError(t, err)
	require.True(t, v.Valid)
	tmp := v.Temporal
	assert.Equal(t, float64(20), tmp.Second)
	assert.Equal(t, 40, tmp.Minute)
	assert.Equal(t, 11, tmp.Hour)
	assert.True(t, tmp.IsSummerTime)
	assert.Equal(t, 15, tmp.Day)
	assert.Equal(t, 3, tmp.DayOfWeek)
	assert.Equal(t, 8, tmp.Month)
	assert.Equal(t, 2010, tmp.YearFull)
	assert.True(t, tmp.IsLeapYear)
	assert.Equal(t, -2, tmp.DSTDeviation)
	assert.Equal(t, 33, tmp.Week)
}

func TestDecodeCP48InvalidMarker(t *testing.T) {
	v, err := decodeCP48([]byte{0x01, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.False(t, v.Valid)
}
