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

// Concrete end-to-end scenarios, one case per row the corpus's test
// suite drives this codec against.

func TestRecordEnergyWh(t *testing.T) {
	src := NewSliceSource([]byte{0x04, 0x03, 0x39, 0x30, 0x00, 0x00})
	rec, err := ParseRecord(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, RecordValue, rec.Kind)
	assert.Equal(t, Instantaneous, rec.DIB.Function)
	assert.Equal(t, uint64(0), rec.DIB.StorageNumber)
	assert.Equal(t, DescEnergy, rec.VIB.Description)
	assert.Equal(t, UnitWh, rec.VIB.Unit)
	// VIF code 0x03 scales by 10^(3-3) = 10^0, but any active transform
	// chain promotes the result to a float (original_source's
	// ValueTransformer always returns float).
	require.Equal(t, KindFloat, rec.Value.Kind)
	assert.True(t, rec.Value.Valid)
	assert.InDelta(t, 12345.0, rec.Value.Float, 1e-9)
}

func TestRecordErrorFlagsBooleanD(t *testing.T) {
	src := NewSliceSource([]byte{0x02, 0xFD, 0x17, 0x00, 0x00})
	rec, err := ParseRecord(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, RecordValue, rec.Kind)
	assert.Equal(t, DescErrorFlags, rec.VIB.Description)
	require.Equal(t, KindBits, rec.Value.Kind)
	assert.Equal(t, 16, len(rec.Value.Bits))
	for _, b := range rec.Value.Bits {
		assert.False(t, b)
	}
}

func TestRecordManufacturerTerminatesFrame(t *testing.T) {
	src := NewSliceSource([]byte{0x0F})
	rec, err := ParseRecord(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, RecordManufacturer, rec.Kind)
}

func TestRecordIdleFiller(t *testing.T) {
	src := NewSliceSource([]byte{0x2F})
	rec, err := ParseRecord(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, RecordIdle, rec.Kind)
}

func TestRecordPlainTextUnit(t *testing.T) {
	// DIF: ext bit + storage bit 0 set, data-field 0x04 (4-byte group);
	// one DataDIFE with storage nibble 1 -> storage_number = 2.
	// VIF 0x7C (PlainText), ASCII length 3 "hWk" in transmission order
	// (reversed to "kWh"),
	// then 4 little-endian unsigned data bytes.
	src := NewSliceSource([]byte{0x84, 0x01, 0x7C, 0x03, 'h', 'W', 'k', 0x00, 0x10, 0x00, 0x00})
	rec, err := ParseRecord(context.Background(), SlaveToMaster, src, 0)
	require.NoError(t, err)
	assert.Equal(t, RecordValue, rec.Kind)
	assert.Equal(t, uint64(2), rec.DIB.StorageNumber)
	assert.Equal(t, ValueUnit("kWh"), rec.VIB.Unit)
	require.Equal(t, KindInteger, rec.Value.Kind)
	assert.Equal(t, int64(4096), rec.Value.Int)
}

func TestRecordNoMatchingTypeCarriesPartial(t *testing.T) {
	// 0x01 DIF supports A_1|B_1|C_1|D_1; Date VIF (0x6C) requires
	// TemporalG only (G_2), which the 1-byte supports set cannot satisfy.
	src := NewSliceSource([]byte{0x01, 0x6C})
	_, err := ParseRecord(context.Background(), SlaveToMaster, src, 0)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, NoMatchingType, perr.Kind)
	require.NotNil(t, perr.Partial)
	assert.Equal(t, DescDate, perr.Partial.VIB.Description)
}
