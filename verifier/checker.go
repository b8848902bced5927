// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/siemens/hostverify/limiter"
	"github.com/siemens/hostverify/types"

	"github.com/thediveo/lxkns/log"
	"golang.org/x/sync/singleflight"
)

// Prober probes the liveness of an IPv4 address.
type Prober interface {
	Probe(ctx context.Context, addr string) (types.Status, error)
}

// ReverseResolver looks up the reverse DNS name of an IPv4 address.
type ReverseResolver interface {
	ReverseLookup(ctx context.Context, addr string) (string, error)
}

// Checker checks addresses for liveness and their reverse names, caching the
// verdicts so that each address gets checked only once, even when multiple
// checks of the same address are requested concurrently.
type Checker struct {
	limiter  *limiter.Limiter
	prober   Prober
	reverser ReverseResolver

	flights singleflight.Group
	mu      sync.Mutex // protects the verdict cache
	cache   map[string]types.Verdict

	deniedOnce sync.Once
}

// warnf logs warnings; replaced in unit tests.
var warnf = log.Warnf

// NewChecker returns a new Checker, running its pings and reverse lookups
// under the specified limiter.
func NewChecker(lim *limiter.Limiter, prober Prober, reverser ReverseResolver) *Checker {
	return &Checker{
		limiter:  lim,
		prober:   prober,
		reverser: reverser,
		cache:    map[string]types.Verdict{},
	}
}

// Check returns the verdict for the specified address, pinging the address and
// looking up its reverse name at the same time. A failed ping results in
// [types.Offline], a failed reverse lookup in an empty name.
//
// Concurrent checks of the same address share the single check in flight (and
// thus the context of the first caller). Verdicts of checks cut short by the
// context getting done aren't cached.
func (c *Checker) Check(ctx context.Context, addr string) types.Verdict {
	c.mu.Lock()
	verdict, ok := c.cache[addr]
	c.mu.Unlock()
	if ok {
		return verdict
	}
	v, _, _ := c.flights.Do(addr, func() (interface{}, error) {
		// A flight for this address might have landed in the meantime.
		c.mu.Lock()
		verdict, ok := c.cache[addr]
		c.mu.Unlock()
		if ok {
			return verdict, nil
		}
		verdict, complete := c.check(ctx, addr)
		if complete {
			c.mu.Lock()
			c.cache[addr] = verdict
			c.mu.Unlock()
		}
		return verdict, nil
	})
	return v.(types.Verdict)
}

// check does the real work of pinging and reverse looking up an address. It
// additionally reports whether both operations were actually carried out.
func (c *Checker) check(ctx context.Context, addr string) (types.Verdict, bool) {
	status := types.Offline
	var name string
	var probeErr, lookupErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		probeErr = c.limiter.Do(ctx, func() {
			var err error
			status, err = c.prober.Probe(ctx, addr)
			if err != nil {
				log.Debugf("probe of %s failed: %s", addr, err.Error())
				if errors.Is(err, os.ErrPermission) {
					c.deniedOnce.Do(func() {
						warnf("not permitted to ping, addresses will be reported offline: %s", err.Error())
					})
				}
			}
		})
	}()
	go func() {
		defer wg.Done()
		lookupErr = c.limiter.Do(ctx, func() {
			var err error
			name, err = c.reverser.ReverseLookup(ctx, addr)
			if err != nil {
				log.Debugf("reverse lookup of %s failed: %s", addr, err.Error())
				name = ""
			}
		})
	}()
	wg.Wait()

	verdict := types.Verdict{
		Address: addr,
		Status:  status,
		Name:    name,
	}
	return verdict, probeErr == nil && lookupErr == nil && ctx.Err() == nil
}
