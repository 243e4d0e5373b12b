// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vdr

// CommunicationDirection is a two-valued tag; Bidirectional is a
// descriptor attribute only (matches either direction in a table entry)
// and must never be attached to a parsed object (spec §3).
type CommunicationDirection int

const (
	MasterToSlave CommunicationDirection = iota
	SlaveToMaster
	Bidirectional
)

func (d CommunicationDirection) String() string {
	switch d {
	case MasterToSlave:
		return "MasterToSlave"
	case SlaveToMaster:
		return "SlaveToMaster"
	case Bidirectional:
		return "Bidirectional"
	default:
		return "CommunicationDirection(unknown)"
	}
}

// matches reports whether a directional tag attached to a table entry
// (which may itself be Bidirectional) accepts dir.
func (d CommunicationDirection) matches(dir CommunicationDirection) bool {
	if d == Bidirectional {
		return true
	}
	return d == dir
}

// newDirectionalObject rejects constructing a parsed object with the
// Bidirectional pseudo-value (spec §3: "Passing Bidirectional into
// object construction is an error").
func newDirectionalObject(dir CommunicationDirection) error {
	if dir == Bidirectional {
		return newParseError(DirectionMismatch, 0, "Bidirectional is a descriptor attribute, not a constructible direction")
	}
	return nil
}
