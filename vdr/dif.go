// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import "context"

// ValueFunction is the DIF function code (spec §3).
type ValueFunction int

const (
	Instantaneous ValueFunction = iota
	Maximum
	Minimum
	FunctionError
)

// SpecialFunction is the DIF special-function code.
type SpecialFunction int

const (
	ManufacturerDataHeader SpecialFunction = iota
	IdleFiller
	GlobalReadout
)

// DIFKind tags DataDIF vs SpecialDIF, the flat tagged variant spec §9
// asks for in place of the source's runtime factory classes.
type DIFKind int

const (
	DIFData DIFKind = iota
	DIFSpecial
)

// DIF is the first data-information header byte, parsed into a tagged
// variant (spec §3 "DIF variants").
type DIF struct {
	Kind DIFKind

	// Kind == DIFData
	DataSupports     DataType
	Function         ValueFunction
	StorageBitLow    int
	ReadoutSelection bool

	// Kind == DIFSpecial
	Special          SpecialFunction
	MoreRecordsFollow bool

	extBit bool
}

// DataDIFE carries storage/tariff/sub-unit contributions (spec §3
// "DIFE variants").
type DataDIFE struct {
	StorageNibble int
	Tariff        int
	SubUnit       int
	extBit        bool
}

// difSupportsTable maps DIF data-field codes (bits 0..3) to a Supports
// bitset, per spec §4.5.
var difSupportsTable = map[int]DataType{
	0x00: None, // No data (a no-op/placeholder field)
	0x01: A_1 | B_1 | C_1 | D_1,
	0x02: A_2 | B_2 | C_2 | D_2 | G_2,
	0x03: A_3 | B_3 | C_3 | D_3 | J_3,
	0x04: A_4 | B_4 | C_4 | D_4 | F_4 | K_4,
	0x05: H_4,
	0x06: A_6 | B_6 | C_6 | D_6 | I_6,
	0x07: B_8 | C_8 | D_8,
	// 0x08: read-out selection, dispatched specially below
	0x09: A_1,
	0x0A: A_2,
	0x0B: A_3,
	0x0C: A_4,
	0x0D: L | M | LVAR,
	0x0E: A_6,
}

// DIFChain is the flat sequence a DIB owns: the DIF plus its DataDIFE
// extensions (spec §9 "Chain as linked objects" — only the flat
// sequence is kept, no prev/next pointers).
type DIFChain struct {
	DIF   DIF
	DIFEs []DataDIFE

	// set when a FinalDIFE (byte 0x00) terminates the chain.
	HasFinalDIFE bool
}

// ParseDIFChain implements the C5 state machine (spec §4.5).
func ParseDIFChain(ctx context.Context, dir CommunicationDirection, src ByteSource, offset int) (DIFChain, error) {
	b, err := readByte(ctx, src, offset)
	if err != nil {
		return DIFChain{}, &ParseError{Kind: UnexpectedEnd, Offset: offset, err: ErrUnexpectedEnd}
	}
	dif, err := parseDIFByte(b, dir, offset)
	if err != nil {
		return DIFChain{}, err
	}

	chain := DIFChain{DIF: dif}
	if dif.Kind == DIFSpecial {
		if dif.extBit {
			return DIFChain{}, newParseError(ChainStructure, offset, "SpecialDIF must terminate its chain")
		}
		return chain, nil
	}
	if !dif.extBit {
		return chain, nil
	}

	pos := offset + 1
	for i := 0; ; i++ {
		if i >= 11 {
			return DIFChain{}, newParseError(ChainTooLong, pos, "DIF/DIFE chain")
		}
		b, err := readByte(ctx, src, pos)
		if err != nil {
			return DIFChain{}, &ParseError{Kind: UnexpectedEnd, Offset: pos, err: ErrUnexpectedEnd}
		}
		if b == 0x00 {
			chain.HasFinalDIFE = true
			return chain, nil
		}
		dife := DataDIFE{
			StorageNibble: int(b & 0x0F),
			Tariff:        int((b >> 4) & 0x03),
			SubUnit:       int((b >> 6) & 0x01),
			extBit:        b&0x80 != 0,
		}
		chain.DIFEs = append(chain.DIFEs, dife)
		pos++
		if len(chain.DIFEs) > 10 {
			return DIFChain{}, newParseError(ChainTooLong, pos, "DIF/DIFE chain")
		}
		if !dife.extBit {
			return chain, nil
		}
	}
}

func parseDIFByte(b byte, dir CommunicationDirection, offset int) (DIF, error) {
	ext := b&0x80 != 0
	body := b & 0x7F // the four special codes are whole-byte values, not just data-field nibbles

	switch body {
	case 0x0F, 0x1F:
		d := DIF{Kind: DIFSpecial, Special: ManufacturerDataHeader, extBit: ext, MoreRecordsFollow: body == 0x1F}
		if d.MoreRecordsFollow && dir != SlaveToMaster {
			return DIF{}, newParseError(DirectionMismatch, offset, "MoreRecordsFollow only valid slave-to-master")
		}
		return d, nil
	case 0x2F:
		return DIF{Kind: DIFSpecial, Special: IdleFiller, extBit: ext}, nil
	case 0x7F:
		d := DIF{Kind: DIFSpecial, Special: GlobalReadout, extBit: ext}
		if dir != MasterToSlave {
			return DIF{}, newParseError(DirectionMismatch, offset, "GlobalReadout only valid master-to-slave")
		}
		return d, nil
	}

	code := int(b & 0x0F)
	function := ValueFunction((b >> 4) & 0x03)
	storageLow := int((b >> 6) & 0x01)

	if code == 0x08 {
		d := DIF{Kind: DIFData, DataSupports: None, Function: function, StorageBitLow: storageLow, ReadoutSelection: true, extBit: ext}
		if dir != MasterToSlave {
			return DIF{}, newParseError(DirectionMismatch, offset, "ReadoutSelection only valid master-to-slave")
		}
		return d, nil
	}

	supports, ok := difSupportsTable[code]
	if !ok {
		return DIF{}, newParseError(UnknownDIFCode, offset, "")
	}
	return DIF{
		Kind: DIFData, DataSupports: supports, Function: function,
		StorageBitLow: storageLow, extBit: ext,
	}, nil
}

// Accumulate folds the chain's DataDIFEs into storage number, tariff,
// and sub-unit, per the accumulation formula in spec §4.5:
//
//	storage_number += storage_nibble << (4*(k-1)+1)
//	tariff         += tariff_bits    << (2*(k-1))
//	sub_unit       += sub_unit_bit   << (k-1)
//
// plus the DIF's bit 6 contributing the low bit of storage_number.
func (c DIFChain) Accumulate() (storageNumber uint64, tariff uint64, subUnit uint64) {
	storageNumber = uint64(c.DIF.StorageBitLow)
	for k, dife := range c.DIFEs {
		pos := k + 1
		storageNumber += uint64(dife.StorageNibble) << uint(4*(pos-1)+1)
		tariff += uint64(dife.Tariff) << uint(2*(pos-1))
		subUnit += uint64(dife.SubUnit) << uint(pos-1)
	}
	return
}
