// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"errors"
	"time"
)

// ErrConversionNotDefined is returned when a Temporal is converted to a
// host date/time or duration while not fully specified, or while the
// requested shape (component vs epoch) is absent.
var ErrConversionNotDefined = errors.New("vdr: conversion not defined for this temporal value")

// ValueKind tags which shape of Value is populated.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindFloat
	KindString
	KindBits
	KindTemporal
)

// Value is the tagged-variant decoded scalar every Data decoder produces.
// Exactly one field group is meaningful, selected by Kind. Valid is false
// for a well-formed sensor-invalid marker (Type-C max, Type-B min, Type-H
// NaN, Type-A F-nibble, LVAR max-all-ones); it is never used to signal a
// parse error, which is reported structurally instead (see ParseError).
type Value struct {
	Kind ValueKind

	Valid bool

	Int   int64
	Float float64
	Str   string
	Bits  []bool

	Temporal Temporal
}

// Equal implements the spec's equality rule: Integer/Float/String/Bits
// values compare equal ignoring Valid only when both sides have
// Valid=false (all invalids compare equal). Used by the go-cmp.Comparer
// wired in tests.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	if !v.Valid && !o.Valid && v.Kind != KindTemporal {
		return true
	}
	switch v.Kind {
	case KindInteger:
		return v.Valid == o.Valid && v.Int == o.Int
	case KindFloat:
		return v.Valid == o.Valid && v.Float == o.Float
	case KindString:
		return v.Valid == o.Valid && v.Str == o.Str
	case KindBits:
		if v.Valid != o.Valid || len(v.Bits) != len(o.Bits) {
			return false
		}
		for i := range v.Bits {
			if v.Bits[i] != o.Bits[i] {
				return false
			}
		}
		return true
	case KindTemporal:
		return v.Temporal.Equal(o.Temporal)
	default:
		return false
	}
}

func IntegerValue(valid bool, n int64) Value   { return Value{Kind: KindInteger, Valid: valid, Int: n} }
func FloatValue(valid bool, x float64) Value   { return Value{Kind: KindFloat, Valid: valid, Float: x} }
func StringValue(valid bool, s string) Value   { return Value{Kind: KindString, Valid: valid, Str: s} }
func BitsValue(valid bool, bits []bool) Value  { return Value{Kind: KindBits, Valid: valid, Bits: bits} }
func TemporalValue(t Temporal) Value           { return Value{Kind: KindTemporal, Valid: t.Valid, Temporal: t} }

// recurring-pattern sentinels, see spec §3 "Temporal".
const (
	everyMonth  = 15
	everyDay    = 0
	everyHour   = 31
	everyMinute = 63
	everySecond = 63
	everyYear2  = 127
)

// Temporal carries two disjoint shapes; exactly one is populated,
// selected by Epoch. Recurring-pattern sentinels are preserved literally
// rather than normalised away.
type Temporal struct {
	Valid bool
	Epoch bool // true selects the epoch shape (Type M); false the component shape

	// Component shape (Types F, G, I, J). A field is "absent" when its
	// HasX sibling is false.
	HasYear2Digit bool
	Year2Digit    int
	HasYearFull   bool
	YearFull      int
	HasMonth      bool
	Month         int
	HasDay        bool
	Day           int
	HasHour       bool
	Hour          int
	HasMinute     bool
	Minute        int
	HasSecond     bool
	Second        float64
	IsSummerTime  bool
	HasDayOfWeek  bool
	DayOfWeek     int
	HasWeek       bool
	Week          int
	IsLeapYear    bool
	HasDST        bool
	DSTDeviation  int // signed, minutes

	// Epoch shape (Type M).
	EpochSeconds      int64
	UTCOffsetHours    int // -16 means "this is a duration, not an absolute timestamp"
	ResolutionSeconds float64
	EpochStart        int // 0 = 2013-01-01 UTC, 1 = 1970-01-01 UTC
}

func (t Temporal) Equal(o Temporal) bool {
	if !t.Valid && !o.Valid {
		return true
	}
	return t == o
}

func (t Temporal) IsEveryYear() bool  { return t.HasYear2Digit && t.Year2Digit == everyYear2 }
func (t Temporal) IsEveryMonth() bool { return t.HasMonth && t.Month == everyMonth }
func (t Temporal) IsEveryDay() bool   { return t.HasDay && t.Day == everyDay }
func (t Temporal) IsEveryHour() bool  { return t.HasHour && t.Hour == everyHour }
func (t Temporal) IsEveryMinute() bool {
	return t.HasMinute && t.Minute == everyMinute
}
func (t Temporal) IsEverySecond() bool {
	return t.HasSecond && int(t.Second) == everySecond
}

func (t Temporal) HasDate() bool { return t.HasYearFull || t.HasYear2Digit || t.HasMonth || t.HasDay }
func (t Temporal) HasTime() bool { return t.HasHour || t.HasMinute || t.HasSecond }

// IsFullySpecified is true when the value is valid and none of its
// populated component fields hold a recurring-pattern sentinel.
func (t Temporal) IsFullySpecified() bool {
	if !t.Valid || t.Epoch {
		return t.Valid && t.Epoch
	}
	if t.IsEveryYear() || t.IsEveryMonth() || t.IsEveryDay() ||
		t.IsEveryHour() || t.IsEveryMinute() || t.IsEverySecond() {
		return false
	}
	return true
}

// IsDuration is true for the epoch shape with UTCOffsetHours == -16.
func (t Temporal) IsDuration() bool {
	return t.Valid && t.Epoch && t.UTCOffsetHours == -16
}

// ToDateTime converts a fully specified component-shape value with both a
// date and a time to a host time.Time. It fails with
// ErrConversionNotDefined otherwise.
func (t Temporal) ToDateTime() (time.Time, error) {
	if !t.IsFullySpecified() || t.Epoch || !t.HasDate() || !t.HasTime() {
		return time.Time{}, ErrConversionNotDefined
	}
	sec := int(t.Second)
	nsec := int((t.Second - float64(sec)) * 1e9)
	year := t.YearFull
	if !t.HasYearFull && t.HasYear2Digit {
		year = 2000 + t.Year2Digit
	}
	return time.Date(year, time.Month(t.Month), t.Day, t.Hour, t.Minute, sec, nsec, time.UTC), nil
}

// ToDate converts a fully specified date-only component value.
func (t Temporal) ToDate() (time.Time, error) {
	if !t.IsFullySpecified() || t.Epoch || !t.HasDate() {
		return time.Time{}, ErrConversionNotDefined
	}
	year := t.YearFull
	if !t.HasYearFull && t.HasYear2Digit {
		year = 2000 + t.Year2Digit
	}
	return time.Date(year, time.Month(t.Month), t.Day, 0, 0, 0, 0, time.UTC), nil
}

// ToTime converts a fully specified time-only component value to a
// duration since midnight.
func (t Temporal) ToTime() (time.Duration, error) {
	if !t.IsFullySpecified() || t.Epoch || !t.HasTime() {
		return 0, ErrConversionNotDefined
	}
	d := time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second*float64(time.Second))
	return d, nil
}

// ToTimedelta converts an epoch-shape duration value (UTCOffsetHours ==
// -16) to a host duration.
func (t Temporal) ToTimedelta() (time.Duration, error) {
	if !t.Valid || !t.Epoch || t.UTCOffsetHours != -16 {
		return 0, ErrConversionNotDefined
	}
	return time.Duration(float64(t.EpochSeconds)*t.ResolutionSeconds*float64(time.Second)) +
		0, nil
}

// ToAbsoluteTime converts an epoch-shape absolute timestamp value
// (UTCOffsetHours != -16) to a host time.Time.
func (t Temporal) ToAbsoluteTime() (time.Time, error) {
	if !t.Valid || !t.Epoch || t.UTCOffsetHours == -16 {
		return time.Time{}, ErrConversionNotDefined
	}
	base := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	if t.EpochStart == 1 {
		base = time.Unix(0, 0).UTC()
	}
	offset := time.Duration(float64(t.EpochSeconds)*t.ResolutionSeconds*float64(time.Second)) +
		time.Duration(t.UTCOffsetHours)*time.Hour
	return base.Add(offset), nil
}
