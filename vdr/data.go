// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"context"
	"errors"

	"golang.org/x/text/encoding/charmap"
)

// LVARKind classifies the sub-kind an LVAR prefix byte selects (spec
// §4.4).
type LVARKind int

const (
	LVARText LVARKind = iota
	LVARPositiveBCD
	LVARNegativeBCD
	LVARBinaryUnsigned
)

// classifyLVARPrefix maps a prefix byte to its kind and payload length,
// following the table in spec §4.4.
func classifyLVARPrefix(prefix byte) (kind LVARKind, length int, ok bool) {
	switch {
	case prefix <= 0xBF:
		return LVARText, int(prefix), true
	case prefix >= 0xC0 && prefix <= 0xC9:
		return LVARPositiveBCD, int(prefix - 0xC0), true
	case prefix >= 0xD0 && prefix <= 0xD9:
		return LVARNegativeBCD, int(prefix - 0xD0), true
	case prefix >= 0xE0 && prefix <= 0xEF:
		return LVARBinaryUnsigned, int(prefix - 0xE0), true
	case prefix >= 0xF0 && prefix <= 0xF4:
		return LVARBinaryUnsigned, 4 * (int(prefix) - 0xEC), true
	case prefix == 0xF5:
		return LVARBinaryUnsigned, 48, true
	case prefix == 0xF6:
		return LVARBinaryUnsigned, 64, true
	default:
		return 0, 0, false
	}
}

var iso88591 = charmap.ISO8859_1

// ParseData implements C4: Data::parse(data_type, byte_source) -> Value.
// offset is the running byte offset, used for error reporting.
func ParseData(ctx context.Context, dt DataType, src ByteSource, offset int) (Value, error) {
	if dt == None {
		return Value{}, newParseError(NoMatchingType, offset, "Data::parse called with None")
	}
	if dt == LVAR {
		return parseLVAR(ctx, src, offset)
	}
	if dt == L {
		return parseL(ctx, src, offset)
	}
	if dt == M {
		return parseM(ctx, src, offset)
	}

	length := dt.Length()
	if length <= 0 {
		return Value{}, newParseError(LengthMismatch, offset, "unknown fixed-length data type")
	}
	raw, err := src.ReadExact(ctx, length)
	if err != nil {
		return Value{}, newParseError(UnexpectedEnd, offset, "data payload")
	}
	dec := dt.decoder()
	if dec == nil {
		return Value{}, newParseError(LengthMismatch, offset, "no decoder registered")
	}
	v, err := dec(raw)
	if err != nil {
		kind := BadComponent
		if errors.Is(err, ErrLengthMismatch) {
			kind = LengthMismatch
		}
		return Value{}, &ParseError{Kind: kind, Offset: offset, err: err}
	}
	return v, nil
}

func parseLVAR(ctx context.Context, src ByteSource, offset int) (Value, error) {
	prefixBuf, err := src.ReadExact(ctx, 1)
	if err != nil {
		return Value{}, newParseError(UnexpectedEnd, offset, "LVAR prefix")
	}
	prefix := prefixBuf[0]
	kind, length, ok := classifyLVARPrefix(prefix)
	if !ok {
		return Value{}, newParseError(LengthMismatch, offset, "unrecognised LVAR prefix")
	}
	raw, err := src.ReadExact(ctx, length)
	if err != nil {
		return Value{}, newParseError(UnexpectedEnd, offset+1, "LVAR payload")
	}
	switch kind {
	case LVARText:
		decoded, err := iso88591.NewDecoder().Bytes(raw)
		if err != nil {
			return Value{}, newParseError(NonASCII, offset+1, "LVAR text")
		}
		return StringValue(true, string(decoded)), nil
	case LVARPositiveBCD, LVARNegativeBCD:
		v, err := decodeLVARBCD(raw, kind == LVARNegativeBCD)
		if err != nil {
			return Value{}, &ParseError{Kind: BadComponent, Offset: offset + 1, err: err}
		}
		return v, nil
	case LVARBinaryUnsigned:
		return decodeUnsigned(raw)
	default:
		return Value{}, newParseError(LengthMismatch, offset, "unreachable LVAR kind")
	}
}

// decodeLVARBCD decodes a positive or negative BCD LVAR payload. An
// F-nibble at any position (not just the leader, unlike Type A) is a
// parse error for LVAR BCD per spec §4.4. raw[0] holds the
// least-significant decimal pair, matching Type A's byte order.
func decodeLVARBCD(raw []byte, negate bool) (Value, error) {
	var acc int64
	place := int64(1)
	for _, b := range raw {
		lo := b & 0x0F
		hi := b >> 4
		if lo >= 0x0A || hi >= 0x0A {
			return Value{}, ErrBadComponent
		}
		acc += (int64(hi)*10 + int64(lo)) * place
		place *= 100
	}
	if negate {
		acc = -acc
	}
	return IntegerValue(true, acc), nil
}

func parseL(ctx context.Context, src ByteSource, offset int) (Value, error) {
	lenBuf, err := src.ReadExact(ctx, 1)
	if err != nil {
		return Value{}, newParseError(UnexpectedEnd, offset, "Type L length byte")
	}
	n := int(lenBuf[0] & 0x3F)
	if n > 0 {
		if _, err := src.ReadExact(ctx, n); err != nil {
			return Value{}, newParseError(UnexpectedEnd, offset+1, "Type L payload")
		}
	}
	return decodeL(nil)
}

func parseM(ctx context.Context, src ByteSource, offset int) (Value, error) {
	formatBuf, err := src.ReadExact(ctx, 1)
	if err != nil {
		return Value{}, newParseError(UnexpectedEnd, offset, "Type M format byte")
	}
	format := formatBuf[0]
	switch format {
	case 0, 1:
		body, err := src.ReadExact(ctx, 4)
		if err != nil {
			return Value{}, newParseError(UnexpectedEnd, offset+1, "Type M epoch payload")
		}
		return decodeM(append([]byte{format}, body...))
	default:
		return decodeM([]byte{format})
	}
}
