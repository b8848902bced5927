// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Status indicates the liveness of a network address as seen by a single ICMP
// echo request.
type Status int

// The liveness states of a network address.
const (
	Unknown Status = iota // address not probed, or no address at all.
	Offline               // no echo reply within the probe timeout.
	Online                // echo reply received.
)

// String returns the clear-text representation of a Status value.
func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Offline:
		return "offline"
	case Online:
		return "online"
	}
	return fmt.Sprintf("Status(%d)", s)
}

// Stage tracks how far the verification of a single hostname has progressed.
type Stage int

// The verification stages of a hostname.
const (
	Pending    Stage = iota // not yet started.
	Resolving               // forward DNS lookup in progress.
	Checking                // probing and reverse looking up the resolved address.
	Scanning                // scanning the /24 subnet for a matching reverse name.
	Unresolved              // forward lookup failed; terminal.
	Done                    // direct match found or subnet scan finished; terminal.
)

// String returns the clear-text representation of a Stage value.
func (s Stage) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolving:
		return "resolving"
	case Checking:
		return "checking"
	case Scanning:
		return "scanning"
	case Unresolved:
		return "unresolved"
	case Done:
		return "done"
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// IsTerminal returns true if no further verification work is going to happen
// for a hostname in this stage.
func (s Stage) IsTerminal() bool {
	switch s {
	case Unresolved, Done:
		return true
	default:
		return false
	}
}
