// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package vdr implements the variable-data-record codec for the
// European meter bus protocol (EN 13757-3:2018): the bit-level parser
// that turns a DIF/DIFE and VIF/VIFE header chain plus trailing payload
// bytes into a typed, unit-tagged Record. The package is stateless
// between records; a ByteSource is the only collaborator it needs.
package vdr
