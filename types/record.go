// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// Record is the verification outcome for a hostname: either the address the
// hostname resolved to and whose reverse name matched, or an address inside
// the same /24 subnet with a matching reverse name, or a placeholder in case
// nothing matched at all.
type Record struct {
	Hostname string `json:"hostname"`  // hostname as given in the input list.
	Address  string `json:"address"`   // IPv4 address, or "" if not located.
	Status   Status `json:"status"`    // liveness of Address.
	InSubnet bool   `json:"in_subnet"` // found by scanning the /24 subnet.
}

// Located returns true if the record carries an address.
func (r Record) Located() bool { return r.Address != "" }

// Placeholder returns the record for a hostname for which no matching address
// could be found.
func Placeholder(hostname string) Record {
	return Record{
		Hostname: hostname,
		Status:   Unknown,
	}
}

// Verdict is the outcome of checking a single address: its liveness and its
// reverse DNS name, if any.
type Verdict struct {
	Address string `json:"address"`
	Status  Status `json:"status"`
	Name    string `json:"name"` // reverse name without trailing dot, or "".
}

// RecordFor returns a Record for the specified hostname based on this verdict.
func (v Verdict) RecordFor(hostname string, inSubnet bool) Record {
	return Record{
		Hostname: hostname,
		Address:  v.Address,
		Status:   v.Status,
		InSubnet: inSubnet,
	}
}
