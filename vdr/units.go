// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

// ValueUnit is the closed enumeration of SI and related units a VIF
// table entry may declare (spec §6 "value_unit"), carried forward from
// original_source's ValueUnit closed-string enum (see SPEC_FULL.md §4).
type ValueUnit string

const (
	UnitNone ValueUnit = ""
	UnitWh   ValueUnit = "Wh"
	UnitJ    ValueUnit = "J"
	UnitVarh ValueUnit = "varh"
	UnitVAh  ValueUnit = "VAh"
	UnitCal  ValueUnit = "cal"
	UnitM3   ValueUnit = "m³"
	UnitFt3  ValueUnit = "ft³"
	UnitKg   ValueUnit = "kg"
	UnitW    ValueUnit = "W"
	UnitJPerH ValueUnit = "J/h"
	UnitVar  ValueUnit = "var"
	UnitVA   ValueUnit = "VA"
	UnitM3PerS ValueUnit = "m³/s"
	UnitKgPerS ValueUnit = "kg/s"
	UnitC    ValueUnit = "°C"
	UnitK    ValueUnit = "K"
	UnitBar  ValueUnit = "bar"
	UnitPct  ValueUnit = "%"
	UnitDeg  ValueUnit = "°"
	UnitHz   ValueUnit = "Hz"
	UnitV    ValueUnit = "V"
	UnitA    ValueUnit = "A"
	UnitDBm  ValueUnit = "dBm"
)

// ValueDescription is the closed enumeration of semantic labels a VIF
// table entry may declare (spec §6 "value_description", EN 13757-3
// Tables 10-14). The illustrative subset spec.md names plus the wider
// set carried from original_source/value.py's ValueDescription enum
// (see SPEC_FULL.md §4) are kept as exact label strings.
type ValueDescription string

const (
	DescNone             ValueDescription = ""
	DescEnergy           ValueDescription = "Energy"
	DescPower            ValueDescription = "Power"
	DescVolume           ValueDescription = "Volume"
	DescFlow             ValueDescription = "Flow"
	DescTemperature      ValueDescription = "Temperature"
	DescPressure         ValueDescription = "Pressure"
	DescVoltage          ValueDescription = "Voltage"
	DescCurrent          ValueDescription = "Current"
	DescDate             ValueDescription = "Date"
	DescDateTime         ValueDescription = "Date and time"
	DescFabrication      ValueDescription = "Fabrication"
	DescManufacturer     ValueDescription = "Manufacturer"
	DescRFLevel          ValueDescription = "RF Level"
	DescMass             ValueDescription = "Mass"
	DescMassFlow         ValueDescription = "Mass flow"
	DescVolumeFlow       ValueDescription = "Volume flow"
	DescFrequency        ValueDescription = "Frequency"
	DescOperatingTime    ValueDescription = "OperatingTime"
	DescErrorFlags       ValueDescription = "Error flags"
	DescDuration         ValueDescription = "Duration"
	DescModelVersion     ValueDescription = "ModelVersion"
	DescParameterSetID   ValueDescription = "ParameterSetID"
	DescFirmwareVersion  ValueDescription = "FirmwareVersion"
	DescSoftwareVersion  ValueDescription = "SoftwareVersion"
	DescCustomerLocation ValueDescription = "CustomerLocation"
	DescCustomer         ValueDescription = "Customer"
	DescAccessCodeUser   ValueDescription = "AccessCodeUser"
	DescAccessCodeOperator ValueDescription = "AccessCodeOperator"
	DescPassword         ValueDescription = "Password"
	DescDigitalInput     ValueDescription = "DigitalInput"
	DescDigitalOutput    ValueDescription = "DigitalOutput"
	DescBaudRate         ValueDescription = "BaudRate"
	DescResponseDelayTime ValueDescription = "ResponseDelayTime"
	DescRetry            ValueDescription = "Retry"
	DescFirstStorageNumberCyclicStorage ValueDescription = "FirstStorageNumberCyclicStorage"
	DescRemainingBattery  ValueDescription = "RemainingBattery"
	DescReactivePower    ValueDescription = "ReactivePower"
	DescApparentPower    ValueDescription = "ApparentPower"
	DescPhaseAngle       ValueDescription = "PhaseAngle"
)

// RecordErrorKindName returns a human-readable name for the closed
// record-error set (spec §6 "Record-error set").
func RecordErrorKindName(k RecordErrorKind) string {
	names := [...]string{
		"None", "TooManyDIFEs", "StorageNotImplemented", "UnitNotImplemented",
		"TariffNotImplemented", "FunctionNotImplemented", "DataClassNotImplemented",
		"DataSizeNotImplemented", "TooManyVIFEs", "IllegalVIFGroup",
		"IllegalVIFExponent", "VIFDIFMismatch", "UnimplementedAction",
		"NoDataAvailable", "DataOverflow", "DataUnderflow", "DataError",
		"PrematureEndOfRecord",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "RecordErrorKind(unknown)"
	}
	return names[k]
}
