// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import "context"

// DIBKind tags the logical DIB subclass the assembler dispatches to
// (spec §4.6).
type DIBKind int

const (
	DIBData DIBKind = iota
	DIBReadoutSelection
	DIBManufacturer
	DIBIdleFiller
	DIBGlobalReadout
)

// DIB is the composed Data Information Block: a DIF plus its DIFE
// chain, classified into one logical subclass.
type DIB struct {
	Kind DIBKind

	DataSupports DataType
	Function     ValueFunction

	StorageNumber  uint64
	Tariff         uint64
	SubUnit        uint64
	RegisterNumber bool // true when a FinalDIFE reclassified storage_number

	MoreRecordsFollow bool
}

// ParseDIB implements C6: assemble a DIF/DIFE chain into a DIB, rejecting
// structurally invalid combinations (spec §4.6).
func ParseDIB(ctx context.Context, dir CommunicationDirection, src ByteSource, offset int) (DIB, error) {
	chain, err := ParseDIFChain(ctx, dir, src, offset)
	if err != nil {
		return DIB{}, err
	}

	if chain.DIF.Kind == DIFSpecial {
		if len(chain.DIFEs) > 0 || chain.HasFinalDIFE {
			return DIB{}, newParseError(ChainStructure, offset, "SpecialDIF admits zero DIFEs")
		}
		switch chain.DIF.Special {
		case ManufacturerDataHeader:
			return DIB{Kind: DIBManufacturer, MoreRecordsFollow: chain.DIF.MoreRecordsFollow}, nil
		case IdleFiller:
			return DIB{Kind: DIBIdleFiller}, nil
		case GlobalReadout:
			return DIB{Kind: DIBGlobalReadout}, nil
		}
	}

	storageNumber, tariff, subUnit := chain.Accumulate()
	if storageNumber >= 1<<41 {
		return DIB{}, newParseError(BadComponent, offset, "accumulated storage number exceeds 41 bits")
	}

	kind := DIBData
	if chain.DIF.ReadoutSelection {
		kind = DIBReadoutSelection
	}
	d := DIB{
		Kind:          kind,
		DataSupports:  chain.DIF.DataSupports,
		Function:      chain.DIF.Function,
		StorageNumber: storageNumber,
		Tariff:        tariff,
		SubUnit:       subUnit,
	}
	if chain.HasFinalDIFE {
		d.RegisterNumber = true
		if storageNumber > 125 {
			return DIB{}, newParseError(RegisterOutOfRange, offset, "OBIS register number")
		}
	}
	return d, nil
}
