// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package results

import (
	"net/netip"
	"sort"
	"sync"

	"github.com/siemens/hostverify/types"
)

// Host is a snapshot of the verification progress of a single hostname.
type Host struct {
	Hostname   string      `json:"hostname"`
	Stage      types.Stage `json:"stage"`
	Checked    int         `json:"checked"`    // subnet addresses checked so far.
	Candidates int         `json:"candidates"` // subnet addresses to check in total.
	Records    int         `json:"records"`    // located records so far, placeholders not counted.
}

// Set collects the verification records of hostnames, keeping them in the
// order the hostnames were first seen.
type Set struct {
	mu        sync.Mutex
	order     []string
	m         map[string]*entry
	finalized bool
}

type entry struct {
	stage      types.Stage
	checked    int
	candidates int
	records    []types.Record
}

// New returns a new Set for the specified hostnames. Duplicate hostnames are
// registered only once.
func New(hostnames []string) *Set {
	s := &Set{
		m: map[string]*entry{},
	}
	for _, hostname := range hostnames {
		s.lookup(hostname)
	}
	return s
}

// lookup returns the entry for the specified hostname, registering the
// hostname first if necessary. The caller must hold the lock, unless still
// constructing the Set.
func (s *Set) lookup(hostname string) *entry {
	e, ok := s.m[hostname]
	if !ok {
		e = &entry{}
		s.m[hostname] = e
		s.order = append(s.order, hostname)
	}
	return e
}

// Hostnames returns the registered hostnames, in order.
func (s *Set) Hostnames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Add a record to the set. Records for yet unknown hostnames register these
// hostnames.
func (s *Set) Add(r types.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(r.Hostname)
	e.records = append(e.records, r)
}

// SetStage updates the verification stage of the specified hostname.
func (s *Set) SetStage(hostname string, stage types.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookup(hostname).stage = stage
}

// SetScanProgress updates the subnet scan progress of the specified hostname.
// As progress updates might arrive out of order, the number of checked
// addresses never decreases.
func (s *Set) SetScanProgress(hostname string, checked, candidates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(hostname)
	if checked > e.checked {
		e.checked = checked
	}
	e.candidates = candidates
}

// Finalize adds a placeholder record for each hostname without any record so
// far. Finalize must only be called after all verification work has finished;
// calling it more than once has no further effect.
func (s *Set) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return
	}
	s.finalized = true
	for _, hostname := range s.order {
		e := s.m[hostname]
		if len(e.records) == 0 {
			e.records = append(e.records, types.Placeholder(hostname))
		}
	}
}

// Records returns all records, grouped by hostname in the order of the
// hostnames, and ordered by address for the same hostname.
func (s *Set) Records() []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []types.Record{}
	for _, hostname := range s.order {
		group := append([]types.Record(nil), s.m[hostname].records...)
		sort.SliceStable(group, func(a, b int) bool {
			return addrLess(group[a].Address, group[b].Address)
		})
		records = append(records, group...)
	}
	return records
}

// addrLess orders textual IP addresses numerically, with anything not being
// an IP address last.
func addrLess(a, b string) bool {
	ipA, errA := netip.ParseAddr(a)
	ipB, errB := netip.ParseAddr(b)
	switch {
	case errA != nil:
		return false
	case errB != nil:
		return true
	}
	return ipA.Less(ipB)
}

// Hosts returns a snapshot of the verification progress of all hostnames, in
// order.
func (s *Set) Hosts() []Host {
	s.mu.Lock()
	defer s.mu.Unlock()
	hosts := make([]Host, 0, len(s.order))
	for _, hostname := range s.order {
		e := s.m[hostname]
		located := 0
		for _, r := range e.records {
			if r.Located() {
				located++
			}
		}
		hosts = append(hosts, Host{
			Hostname:   hostname,
			Stage:      e.stage,
			Checked:    e.checked,
			Candidates: e.candidates,
			Records:    located,
		})
	}
	return hosts
}
