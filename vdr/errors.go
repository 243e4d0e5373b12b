// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the subkind of a ParseError. The set is closed.
type ErrorKind int

const (
	UnexpectedEnd ErrorKind = iota
	UnknownDIFCode
	UnknownVIFCode
	DirectionMismatch
	ChainTooLong
	ChainStructure
	BadComponent
	LengthMismatch
	NonASCII
	RegisterOutOfRange
	NoMatchingType
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case UnknownDIFCode:
		return "UnknownDIFCode"
	case UnknownVIFCode:
		return "UnknownVIFCode"
	case DirectionMismatch:
		return "DirectionMismatch"
	case ChainTooLong:
		return "ChainTooLong"
	case ChainStructure:
		return "ChainStructure"
	case BadComponent:
		return "BadComponent"
	case LengthMismatch:
		return "LengthMismatch"
	case NonASCII:
		return "NonASCII"
	case RegisterOutOfRange:
		return "RegisterOutOfRange"
	case NoMatchingType:
		return "NoMatchingType"
	default:
		return "ErrorKind(unknown)"
	}
}

// Sentinel errors, one per subkind, wrapped by ParseError at the call site
// the way asdu's ErrTypeIdentifier/ErrInfoObjAddrFit/ErrParam are wrapped.
var (
	ErrUnexpectedEnd      = errors.New("vdr: byte source returned fewer bytes than requested")
	ErrUnknownDIFCode     = errors.New("vdr: unknown DIF/DIFE code")
	ErrUnknownVIFCode     = errors.New("vdr: unknown VIF/VIFE code")
	ErrDirectionMismatch  = errors.New("vdr: field not valid in this communication direction")
	ErrChainTooLong       = errors.New("vdr: header chain exceeds maximum length")
	ErrChainStructure     = errors.New("vdr: malformed header chain structure")
	ErrBadComponent       = errors.New("vdr: date/time component out of range")
	ErrLengthMismatch     = errors.New("vdr: length prefix does not match expected byte count")
	ErrNonASCII           = errors.New("vdr: plain-text unit contains a non-ASCII byte")
	ErrRegisterOutOfRange = errors.New("vdr: OBIS register number out of range")
	ErrNoMatchingType     = errors.New("vdr: no concrete data type matches Supports/Requires")
)

func sentinelFor(k ErrorKind) error {
	switch k {
	case UnexpectedEnd:
		return ErrUnexpectedEnd
	case UnknownDIFCode:
		return ErrUnknownDIFCode
	case UnknownVIFCode:
		return ErrUnknownVIFCode
	case DirectionMismatch:
		return ErrDirectionMismatch
	case ChainTooLong:
		return ErrChainTooLong
	case ChainStructure:
		return ErrChainStructure
	case BadComponent:
		return ErrBadComponent
	case LengthMismatch:
		return ErrLengthMismatch
	case NonASCII:
		return ErrNonASCII
	case RegisterOutOfRange:
		return ErrRegisterOutOfRange
	case NoMatchingType:
		return ErrNoMatchingType
	default:
		return errors.New("vdr: unknown error kind")
	}
}

// ParseError is the structural failure returned by every parse entry point.
// It is fatal for the record: the caller must discard the frame and
// resynchronise at the link layer (§5 of the spec this codec implements).
type ParseError struct {
	Kind    ErrorKind
	Offset  int
	Partial *Record // set only for NoMatchingType: the DIB/VIB parsed so far
	err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vdr: parse error at offset %d: %s", e.Offset, e.err)
}

func (e *ParseError) Unwrap() error { return e.err }

// newParseError wraps the sentinel for kind with additional context,
// mirroring go-tz-tz's "...: %w" wrapping idiom.
func newParseError(kind ErrorKind, offset int, detail string) *ParseError {
	var err error
	if detail == "" {
		err = sentinelFor(kind)
	} else {
		err = fmt.Errorf("%s: %w", detail, sentinelFor(kind))
	}
	return &ParseError{Kind: kind, Offset: offset, err: err}
}

// RecordErrorKind is the closed set of structural record errors a
// slave-to-master Error VIFE can signal (§6 "Record-error set").
type RecordErrorKind int

const (
	ErrorNone RecordErrorKind = iota
	ErrorTooManyDIFEs
	ErrorStorageNotImplemented
	ErrorUnitNotImplemented
	ErrorTariffNotImplemented
	ErrorFunctionNotImplemented
	ErrorDataClassNotImplemented
	ErrorDataSizeNotImplemented
	ErrorTooManyVIFEs
	ErrorIllegalVIFGroup
	ErrorIllegalVIFExponent
	ErrorVIFDIFMismatch
	ErrorUnimplementedAction
	ErrorNoDataAvailable
	ErrorDataOverflow
	ErrorDataUnderflow
	ErrorDataError
	ErrorPrematureEndOfRecord
)

// ErrorRecord is the structural (non-parse) result of an Error VIFE: the
// frame is well-formed, but the meter is reporting a condition instead of
// a value.
type ErrorRecord struct {
	Kind  RecordErrorKind
	Group int
}
