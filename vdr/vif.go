// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import "context"

// VIBField is one parsed VIF/VIFE chain element, a tagged variant
// (spec §9: "a single parsing function" in place of runtime factory
// dispatch).
type VIBField struct {
	entry  vifEntry
	code   byte // low 7 bits, the exponent-nibble source for transforms
	extBit bool
}

// VIB is the composed Value Information Block: accumulated description,
// unit, transformer chain, and Requires list (spec §3 "VIF/VIFE and
// VIB").
type VIB struct {
	Description ValueDescription
	Unit        ValueUnit
	Transforms  []TransformStep
	Requires    Requires

	IsPlainText  bool
	IsReadoutAny bool
	IsManufacturer bool

	// set when an Error VIFE is present (slave-to-master structural
	// error, spec §7).
	ErrorKind  RecordErrorKind
	HasError   bool

	Fields []VIBField // flat sequence, no prev/next pointers (spec §9)
}

// ParseVIB implements C7: the VIF/VIFE chain state machine with
// table-switching (spec §4.7).
func ParseVIB(ctx context.Context, dir CommunicationDirection, src ByteSource, offset int) (VIB, error) {
	vib := VIB{}
	table := TablePrimary
	position := 0
	pos := offset

	var lastTrueSeen bool
	var afterExtension = true // position 0 counts as "after an extension" for the True-position rule
	var inManufacturerTail bool

	for {
		if position >= 11 {
			return VIB{}, newParseError(ChainTooLong, pos, "VIF/VIFE chain")
		}
		b, err := readByte(ctx, src, pos)
		if err != nil {
			return VIB{}, &ParseError{Kind: UnexpectedEnd, Offset: pos, err: ErrUnexpectedEnd}
		}
		ext := b&0x80 != 0
		code := b & 0x7F

		if inManufacturerTail {
			// Only ManufacturerVIFE is allowed until chain end; bytes
			// are opaque and consumed without table lookup.
			field := VIBField{entry: vifEntry{kind: FieldManufacturer, next: TableNone}, code: code, extBit: ext}
			vib.Fields = append(vib.Fields, field)
			pos++
			position++
			if !ext {
				return vib, nil
			}
			continue
		}

		tbl := tableByID(table)
		entry, ok := tbl[code]
		if !ok {
			return VIB{}, newParseError(UnknownVIFCode, pos, "")
		}
		if !entry.direction.matches(dir) {
			return VIB{}, newParseError(DirectionMismatch, pos, "VIF/VIFE not valid in this direction")
		}

		switch entry.kind {
		case FieldTrue:
			if !afterExtension && position != 0 {
				return VIB{}, newParseError(ChainStructure, pos, "True-semantics field must follow position 0 or an Extension field")
			}
			vib.Description = entry.description
			vib.Unit = entry.unit
			if entry.transform != nil {
				vib.Transforms = append(vib.Transforms, TransformStep{Fn: entry.transform, Code: code})
			}
			vib.Requires.Push(entry.requires)
			lastTrueSeen = true
		case FieldPlainText:
			vib.IsPlainText = true
			vib.Requires.Push(entry.requires)
			lastTrueSeen = true
		case FieldReadoutAny:
			vib.IsReadoutAny = true
			vib.Requires.Push(ANY)
			lastTrueSeen = true
		case FieldCombinable:
			if !lastTrueSeen {
				return VIB{}, newParseError(ChainStructure, pos, "Combinable field must follow a True-semantics field")
			}
			if entry.transform != nil {
				vib.Transforms = append(vib.Transforms, TransformStep{Fn: entry.transform, Code: code})
			}
			if entry.requires != None {
				vib.Requires.OrWith(entry.requires)
			}
		case FieldAction:
			// Master-to-slave write/add directive; no value-shape effect.
		case FieldError:
			vib.HasError = true
			vib.ErrorKind = entry.errorKind
		case FieldManufacturer:
			vib.IsManufacturer = true
			inManufacturerTail = true
		case FieldExtension:
			if !ext {
				return VIB{}, newParseError(ChainStructure, pos, "ExtensionVIF cannot be terminal")
			}
		}

		field := VIBField{entry: entry, code: code, extBit: ext}
		vib.Fields = append(vib.Fields, field)
		pos++
		position++

		afterExtension = entry.kind == FieldExtension
		if !ext {
			return vib, nil
		}
		table = entry.next
	}
}
