// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVIBSingleTrueField(t *testing.T) {
	src := NewSliceSource([]byte{0x03})
	vib, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, DescEnergy, vib.Description)
	assert.Equal(t, UnitWh, vib.Unit)
	assert.Equal(t, 1, len(vib.Fields))
}

func TestParseVIBCombinableFollowsTrueOK(t *testing.T) {
	// 0x83 (ext, Energy Wh True field) then 0x10 (Combinable, terminal).
	src := NewSliceSource([]byte{0x83, 0x10})
	vib, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, DescEnergy, vib.Description)
	assert.Equal(t, 2, len(vib.Fields))
}

func TestParseVIBExtensionCannotBeTerminal(t *testing.T) {
	// 0xFB with its ext bit clear: an Extension escape that does not
	// continue the chain.
	src := NewSliceSource([]byte{0x7B})
	_, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ChainStructure, perr.Kind)
}

func TestParseVIBExtensionSwitchesTable(t *testing.T) {
	// 0xFB (ext, escape to First Extension) then First Extension 0x00
	// (Energy MJ row), terminal.
	src := NewSliceSource([]byte{0xFB, 0x00})
	vib, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, DescEnergy, vib.Description)
	assert.Equal(t, 2, len(vib.Fields))
}

func TestParseVIBSecondExtensionSecondLevelSwitch(t *testing.T) {
	// 0xFD (ext, escape to Second Extension) then 0xFD again (ext,
	// escape to the Second-Extension-Second-Level) then 0x1A terminal
	// (DigitalOutput).
	src := NewSliceSource([]byte{0xFD, 0xFD, 0x1A})
	vib, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, DescDigitalOutput, vib.Description)
}

func TestParseVIBManufacturerTailOpaque(t *testing.T) {
	// 0x7F (Manufacturer-specific, terminal immediately after).
	src := NewSliceSource([]byte{0x7F})
	vib, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.True(t, vib.IsManufacturer)
	assert.Equal(t, 1, len(vib.Fields))
}

func TestParseVIBManufacturerTailConsumesOpaqueBytes(t *testing.T) {
	src := NewSliceSource([]byte{0xFF, 0x81, 0x00})
	vib, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.True(t, vib.IsManufacturer)
	assert.Equal(t, 3, len(vib.Fields))
}

func TestParseVIBChainTooLong(t *testing.T) {
	buf := make([]byte, 0, 11)
	buf = append(buf, 0x83, 0x90) // True field, then Combinable with ext bit set
	for i := 0; i < 9; i++ {
		buf = append(buf, 0x90) // never-terminating Combinable row
	}
	src := NewSliceSource(buf)
	_, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ChainTooLong, perr.Kind)
}

func TestParseVIBErrorFlagsRowIsNotErrorVIFE(t *testing.T) {
	// 0xFD (Second Extension escape) then 0x17 (ErrorFlags row), terminal.
	src := NewSliceSource([]byte{0xFD, 0x17})
	vib, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.False(t, vib.HasError)
	assert.Equal(t, DescErrorFlags, vib.Description)
}

func TestParseVIBErrorVIFECodeMapsToErrorKind(t *testing.T) {
	// 0xFD (Second Extension escape) then 0x21 (Error row for ordinal 2),
	// terminal.
	src := NewSliceSource([]byte{0xFD, 0x21})
	vib, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.True(t, vib.HasError)
	assert.Equal(t, ErrorStorageNotImplemented, vib.ErrorKind)
}

func TestParseVIBUnknownCodeRejected(t *testing.T) {
	src := NewSliceSource([]byte{0x50}) // unallocated in the representative primary table
	_, err := ParseVIB(context.Background(), SlaveToMaster, src, 0)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, UnknownVIFCode, perr.Kind)
}
