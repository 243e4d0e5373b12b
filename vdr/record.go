// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"context"

	"github.com/thinkgos/go-mbus/clog"
)

// RecordKind tags the shape a parsed Record takes (spec §4.8: the
// assembler may short-circuit before Data is ever parsed).
type RecordKind int

const (
	RecordValue RecordKind = iota
	RecordIdle
	RecordManufacturer
	RecordError
)

// Record is the immutable result of one call into the assembler. It
// owns its DIB, VIB, and Data; the DIB owns its DIF/DIFE chain and the
// VIB its VIF/VIFE chain, both as flat sequences (spec §3 "Ownership").
type Record struct {
	Kind RecordKind

	DIB DIB
	VIB VIB

	Value Value
	Error ErrorRecord

	// ManufacturerPayload is left empty: the remaining bytes of the
	// enclosing frame are a link-layer/frame-envelope concept this
	// codec does not model (spec §1, "external collaborators"). The
	// caller is expected to hand the rest of its own frame buffer
	// upstream once it sees RecordManufacturer.
	ManufacturerPayload []byte
}

var log = clog.NewLogger("vdr: ")

// ParseRecord implements C8: Record::parse(direction, byte_source) ->
// Record (spec §4.8).
func ParseRecord(ctx context.Context, dir CommunicationDirection, src ByteSource, offset int) (Record, error) {
	dib, err := ParseDIB(ctx, dir, src, offset)
	if err != nil {
		return Record{}, err
	}
	log.Debug("parsed DIB kind=%d storage=%d tariff=%d", dib.Kind, dib.StorageNumber, dib.Tariff)

	if dib.Kind == DIBIdleFiller {
		return Record{Kind: RecordIdle, DIB: dib}, nil
	}
	if dib.Kind == DIBManufacturer {
		return Record{Kind: RecordManufacturer, DIB: dib}, nil
	}

	vibOffset := offset + 1
	vib, err := ParseVIB(ctx, dir, src, vibOffset)
	if err != nil {
		return Record{}, err
	}
	log.Debug("parsed VIB description=%s unit=%s", vib.Description, vib.Unit)

	if vib.IsPlainText {
		unit, err := decodeASCIIUnit(ctx, src, vibOffset+len(vib.Fields))
		if err != nil {
			return Record{}, err
		}
		vib.Unit = ValueUnit(unit)
	}

	if vib.HasError {
		log.Warn("error VIFE: record replaced by ErrorRecord kind=%s", RecordErrorKindName(vib.ErrorKind))
		return Record{Kind: RecordError, DIB: dib, VIB: vib, Error: ErrorRecord{Kind: vib.ErrorKind}}, nil
	}

	dataType, err := resolve(dib.DataSupports, &vib.Requires)
	if err != nil {
		partial := Record{DIB: dib, VIB: vib}
		return Record{}, &ParseError{Kind: NoMatchingType, Offset: vibOffset, Partial: &partial, err: ErrNoMatchingType}
	}

	dataOffset := vibOffset + len(vib.Fields)
	value, err := ParseData(ctx, dataType, src, dataOffset)
	if err != nil {
		return Record{}, err
	}

	if (value.Kind == KindInteger || value.Kind == KindFloat) && value.Valid && len(vib.Transforms) > 0 {
		raw := value.Float
		if value.Kind == KindInteger {
			raw = float64(value.Int)
		}
		scaled := applyChain(vib.Transforms, raw)
		// A transform chain always yields a float (original_source's
		// ValueTransformer never returns int); truncating a scaled
		// Integer back to int64 silently drops fractional results like
		// 10^-3 scaling, so promote to KindFloat instead.
		value.Kind = KindFloat
		value.Float = scaled
	}

	return Record{Kind: RecordValue, DIB: dib, VIB: vib, Value: value}, nil
}
