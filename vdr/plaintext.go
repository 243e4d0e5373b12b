// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import "context"

// decodeASCIIUnit implements the PlainText VIF's ASCII-unit sub-protocol
// (C9): one length byte L in 1..255, then L bytes in transmission order.
// The stored unit string is the reverse of those bytes (spec §4.7
// "PlainText sub-protocol"). A zero length byte is rejected with
// LengthMismatch.
func decodeASCIIUnit(ctx context.Context, src ByteSource, offset int) (string, error) {
	lenByte, err := readByte(ctx, src, offset)
	if err != nil {
		return "", err
	}
	if lenByte < 1 {
		return "", newParseError(LengthMismatch, offset, "plain-text unit length must be 1..255")
	}
	raw, err := src.ReadExact(ctx, int(lenByte))
	if err != nil {
		return "", newParseError(UnexpectedEnd, offset+1, "plain-text unit body")
	}
	for _, b := range raw {
		if b > 0x7F {
			return "", newParseError(NonASCII, offset+1, "plain-text unit byte")
		}
	}
	reversed := make([]byte, len(raw))
	for i, b := range raw {
		reversed[len(raw)-1-i] = b
	}
	return string(reversed), nil
}

// encodeASCIIUnit is the inverse: emit the length byte followed by the
// reversed ASCII bytes, required only for the master-to-slave direction
// (spec §4.9).
func encodeASCIIUnit(unit string) ([]byte, error) {
	if len(unit) < 1 || len(unit) > 255 {
		return nil, newParseError(LengthMismatch, 0, "plain-text unit length must be 1..255")
	}
	out := make([]byte, 0, len(unit)+1)
	out = append(out, byte(len(unit)))
	for i := len(unit) - 1; i >= 0; i-- {
		b := unit[i]
		if b > 0x7F {
			return nil, newParseError(NonASCII, 0, "plain-text unit byte")
		}
		out = append(out, b)
	}
	return out, nil
}

func readByte(ctx context.Context, src ByteSource, offset int) (byte, error) {
	b, err := src.ReadExact(ctx, 1)
	if err != nil {
		return 0, newParseError(UnexpectedEnd, offset, "")
	}
	return b[0], nil
}
