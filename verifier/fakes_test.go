// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/siemens/hostverify/types"
)

var errNotFound = errors.New("NXDOMAIN")

// fakeDNS answers forward and reverse lookups from canned maps.
type fakeDNS struct {
	forward map[string][]string
	reverse map[string]string
}

func (d *fakeDNS) ResolveName(ctx context.Context, name string) ([]string, error) {
	if addrs, ok := d.forward[name]; ok {
		return addrs, nil
	}
	return nil, errNotFound
}

func (d *fakeDNS) ReverseLookup(ctx context.Context, addr string) (string, error) {
	if name, ok := d.reverse[addr]; ok {
		return name, nil
	}
	return "", errNotFound
}

// fakeProber finds only the configured addresses online, counting how often
// each address got probed and how many probes were in flight at most.
type fakeProber struct {
	online map[string]bool
	delay  time.Duration
	err    error // if set, every probe fails with it.

	mu          sync.Mutex
	probes      map[string]int
	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func newFakeProber(online ...string) *fakeProber {
	p := &fakeProber{
		online: map[string]bool{},
		probes: map[string]int{},
	}
	for _, addr := range online {
		p.online[addr] = true
	}
	return p
}

func (p *fakeProber) Probe(ctx context.Context, addr string) (types.Status, error) {
	n := p.inflight.Add(1)
	defer p.inflight.Add(-1)
	for {
		m := p.maxInflight.Load()
		if n <= m || p.maxInflight.CompareAndSwap(m, n) {
			break
		}
	}
	p.mu.Lock()
	p.probes[addr]++
	p.mu.Unlock()
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return types.Offline, p.err
	}
	if p.online[addr] {
		return types.Online, nil
	}
	return types.Offline, nil
}

func (p *fakeProber) Probes() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	probes := map[string]int{}
	for addr, count := range p.probes {
		probes[addr] = count
	}
	return probes
}
