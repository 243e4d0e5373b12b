// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

// FieldKind tags the logical role a VIF/VIFE table row plays (spec
// §3 "VIF/VIFE and VIB").
type FieldKind int

const (
	FieldTrue FieldKind = iota
	FieldCombinable
	FieldAction
	FieldError
	FieldPlainText
	FieldReadoutAny
	FieldManufacturer
	FieldExtension
)

// TableID names one of the lookup tables the VIF/VIFE chain can switch
// between (spec §4.7).
type TableID int

const (
	TablePrimary TableID = iota
	TableFirstExtension
	TableSecondExtension
	TableSecondExtensionSecondLevel
	TableCombinableOrthogonal
	TableCombinableExtension
	TableNone // manufacturer tail: no further table lookup
)

// vifEntry is one row of a VIF/VIFE table: a closed descriptor plus the
// table the *next* chain field must be looked up in (spec §4.7
// "next_table assignments").
type vifEntry struct {
	kind        FieldKind
	direction   CommunicationDirection
	description ValueDescription
	unit        ValueUnit
	transform   TransformFunc
	requires    DataType
	next        TableID
	errorKind   RecordErrorKind // meaningful only when kind == FieldError
}

func trueEntry(desc ValueDescription, unit ValueUnit, t TransformFunc, requires DataType) vifEntry {
	return vifEntry{kind: FieldTrue, direction: Bidirectional, description: desc, unit: unit, transform: t, requires: requires, next: TableCombinableOrthogonal}
}

// errorEntry builds a slave-to-master Error VIFE row carrying its
// RecordErrorKind directly, so ParseVIB never has to guess it back out
// of the raw code.
func errorEntry(kind RecordErrorKind) vifEntry {
	return vifEntry{kind: FieldError, direction: SlaveToMaster, errorKind: kind, next: TableCombinableOrthogonal}
}

// primaryTable is the Primary field table the VIF byte is always looked
// up in first. A representative, EN 13757-3-table-10-style subset: the
// Energy/Power/Volume/Flow/DateTime groups needed to drive the record
// assembler and its test scenarios, plus the three escape codes.
var primaryTable = map[byte]vifEntry{}

func init() {
	// 0x00-0x07: Energy, Wh * 10^(nnn-3)
	for code := byte(0x00); code <= 0x07; code++ {
		primaryTable[code] = trueEntry(DescEnergy, UnitWh, MultTenPowNNNMinus3, UnsignedC)
	}
	// 0x08-0x0F: Energy, J * 10^nnn
	for code := byte(0x08); code <= 0x0F; code++ {
		primaryTable[code] = trueEntry(DescEnergy, UnitJ, multPow10(maskNNN, 0), UnsignedC)
	}
	// 0x10-0x17: Volume, m3 * 10^(nnn-3)
	for code := byte(0x10); code <= 0x17; code++ {
		primaryTable[code] = trueEntry(DescVolume, UnitM3, MultTenPowNNNMinus3, UnsignedC)
	}
	// 0x18-0x1F: Mass, kg * 10^(nnn-3)
	for code := byte(0x18); code <= 0x1F; code++ {
		primaryTable[code] = trueEntry(DescMass, UnitKg, MultTenPowNNNMinus3, UnsignedC)
	}
	// 0x20-0x23: On Time (seconds/minutes/hours/days), described as OperatingTime
	for code := byte(0x20); code <= 0x23; code++ {
		primaryTable[code] = trueEntry(DescOperatingTime, UnitNone, Mult1, UnsignedC)
	}
	// 0x28-0x2F: Power, W * 10^(nnn-3)
	for code := byte(0x28); code <= 0x2F; code++ {
		primaryTable[code] = trueEntry(DescPower, UnitW, MultTenPowNNNMinus3, UnsignedC)
	}
	// 0x30-0x37: Power, J/h * 10^nnn
	for code := byte(0x30); code <= 0x37; code++ {
		primaryTable[code] = trueEntry(DescPower, UnitJPerH, multPow10(maskNNN, 0), UnsignedC)
	}
	// 0x38-0x3F: Volume Flow, m3/h * 10^(nnn-3)
	for code := byte(0x38); code <= 0x3F; code++ {
		primaryTable[code] = trueEntry(DescVolumeFlow, UnitM3PerS, MultTenPowNNNMinus3DivThirtySixHundred, UnsignedC)
	}
	// 0x58-0x5F: Flow Temperature, 10^(nn-3) degC
	for code := byte(0x58); code <= 0x5F; code++ {
		primaryTable[code] = trueEntry(DescTemperature, UnitC, MultTenPowNNMinus3, UnsignedC)
	}
	// 0x60-0x63: Pressure, bar * 10^(nn-3)
	for code := byte(0x60); code <= 0x63; code++ {
		primaryTable[code] = trueEntry(DescPressure, UnitBar, MultTenPowNNMinus3, UnsignedC)
	}
	// 0x6C: Date, type G
	primaryTable[0x6C] = trueEntry(DescDate, UnitNone, Mult1, TemporalG)
	// 0x6D: Date/time, type F, I, J, or M
	primaryTable[0x6D] = trueEntry(DescDateTime, UnitNone, Mult1, TemporalFIJM)
	// 0x74-0x77: Actuality Duration, On time
	for code := byte(0x74); code <= 0x77; code++ {
		primaryTable[code] = trueEntry(DescDuration, UnitNone, Mult1, UnsignedC)
	}
	// 0x78: Fabrication number
	primaryTable[0x78] = trueEntry(DescFabrication, UnitNone, Mult1, DefaultABHLVAR)
	// 0x7C: Plain-text VIF — no unit is set from a table; C9 reads it.
	// Requires matches the unsigned-count convention most plain-text
	// accompanied values use (spec end-to-end scenario 5).
	primaryTable[0x7C] = vifEntry{kind: FieldPlainText, direction: Bidirectional, next: TableCombinableOrthogonal, requires: UnsignedC}
	// 0x7E: Any value, wildcard readout
	primaryTable[0x7E] = vifEntry{kind: FieldReadoutAny, direction: Bidirectional, requires: ANY, next: TableCombinableOrthogonal}
	// 0x7F: Manufacturer specific
	primaryTable[0x7F] = vifEntry{kind: FieldManufacturer, direction: Bidirectional, requires: DefaultABHLVAR, next: TableNone}
	// 0xFB: escape to First Extension table. Table keys are always the
	// 7-bit code (extension bit stripped by the caller), so the escape
	// marker is stored at 0x7B, not the full byte 0xFB.
	primaryTable[0x7B] = vifEntry{kind: FieldExtension, direction: Bidirectional, next: TableFirstExtension}
	// 0xFD: escape to Second Extension table, stored at 0x7D.
	primaryTable[0x7D] = vifEntry{kind: FieldExtension, direction: Bidirectional, next: TableSecondExtension}
}

// firstExtensionTable (0xFB escape target): a representative subset
// with one Energy row at a different decade offset and a remaining
// battery row.
var firstExtensionTable = map[byte]vifEntry{
	0x00: trueEntry(DescEnergy, UnitMJ(), MultTenPowNMinus3, UnsignedC),
	0x74: trueEntry(DescRemainingBattery, UnitPct, Mult1, UnsignedC),
}

// UnitMJ is a derived unit (MJ) expressed via the base Wh/J scale; kept
// as a function rather than a new closed constant since it is a scaled
// multiple, not a distinct SI unit in the closed set of spec §6.
func UnitMJ() ValueUnit { return UnitJ }

// secondExtensionTable (0xFD escape target; its own 0xFD row escapes
// to the second-level sub-table): includes the ErrorFlags row used by
// the error-record end-to-end scenario, plus the Action row at 0x00 and
// the Error rows (spec §7 "Record-error set") added by the init below.
var secondExtensionTable = map[byte]vifEntry{
	0x00: {kind: FieldAction, direction: MasterToSlave, next: TableCombinableOrthogonal},
	0x17: trueEntry(DescErrorFlags, UnitNone, Mult1, BooleanD),
	0x0B: trueEntry(DescParameterSetID, UnitNone, Mult1, DefaultABHLVAR),
	0x0C: trueEntry(DescModelVersion, UnitNone, Mult1, DefaultABHLVAR),
	0x7D: vifEntry{kind: FieldExtension, direction: Bidirectional, next: TableSecondExtensionSecondLevel},
}

func init() {
	// 0x20-0x30: the 17 non-None RecordErrorKind values, one row per
	// ordinal, clear of the codes already occupied above (0x0B, 0x0C,
	// 0x17) so each Error row carries its kind directly instead of
	// deriving it from the code with arithmetic.
	for i := 1; i <= 17; i++ {
		secondExtensionTable[byte(0x1F+i)] = errorEntry(RecordErrorKind(i))
	}
}

// secondExtensionSecondLevelTable is the sub-table reached via a second
// 0xFD inside the Second Extension table.
var secondExtensionSecondLevelTable = map[byte]vifEntry{
	0x1A: trueEntry(DescDigitalOutput, UnitNone, Mult1, BooleanD),
	0x1B: trueEntry(DescDigitalInput, UnitNone, Mult1, BooleanD),
}

// combinableOrthogonalTable is the table every non-manufacturer,
// non-extension field chains into (spec §4.7 next_table table).
var combinableOrthogonalTable = map[byte]vifEntry{
	// 0x10: per-tariff multiplier (combinable, requires unchanged)
	0x10: {kind: FieldCombinable, direction: Bidirectional, next: TableCombinableOrthogonal},
	// 0x70: decimal offset for the previous value
	0x70: {kind: FieldCombinable, direction: Bidirectional, transform: MultTenPowNMinus3, next: TableCombinableOrthogonal},
	// 0xFC: escape to Combinable Extension table, stored at 0x7C.
	0x7C: {kind: FieldExtension, direction: Bidirectional, next: TableCombinableExtension},
	// 0xFF: manufacturer-specific combinable action/error continuation,
	// stored at 0x7F.
	0x7F: {kind: FieldManufacturer, direction: Bidirectional, next: TableNone},
}

// combinableExtensionTable (0xFC escape target): a single per-minute
// conversion row (divide by 60) for flow-rate style quantities.
var combinableExtensionTable = map[byte]vifEntry{
	0x01: {kind: FieldCombinable, direction: Bidirectional, transform: MultTenPowNNNMinus3DivSixty, next: TableCombinableOrthogonal},
}

func tableByID(id TableID) map[byte]vifEntry {
	switch id {
	case TablePrimary:
		return primaryTable
	case TableFirstExtension:
		return firstExtensionTable
	case TableSecondExtension:
		return secondExtensionTable
	case TableSecondExtensionSecondLevel:
		return secondExtensionSecondLevelTable
	case TableCombinableOrthogonal:
		return combinableOrthogonalTable
	case TableCombinableExtension:
		return combinableExtensionTable
	default:
		return nil
	}
}
