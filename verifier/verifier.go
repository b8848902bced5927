// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"errors"
	"net/netip"

	"github.com/siemens/hostverify/limiter"
	"github.com/siemens/hostverify/results"
	"github.com/siemens/hostverify/subnet"
	"github.com/siemens/hostverify/types"

	"github.com/thediveo/lxkns/log"
	"golang.org/x/sync/errgroup"
)

// Resolver resolves a hostname into its IPv4 addresses.
type Resolver interface {
	ResolveName(ctx context.Context, name string) ([]string, error)
}

// errNoIPv4 reports a hostname resolving only into non-IPv4 addresses.
var errNoIPv4 = errors.New("no IPv4 address")

// Verifier verifies hostnames: it resolves each hostname, checks the first
// address and its reverse name, and scans the address' /24 subnet when the
// reverse name doesn't match the hostname.
type Verifier struct {
	limiter  *limiter.Limiter
	resolver Resolver
	checker  *Checker
	scanner  *subnet.Scanner
}

// New returns a new Verifier carrying out all its DNS lookups and pings under
// the specified limiter. The limiter's size also bounds the number of
// hostnames verified at the same time, as well as the number of addresses
// checked at the same time in each subnet scan.
func New(lim *limiter.Limiter, resolver Resolver, reverser ReverseResolver, prober Prober) *Verifier {
	checker := NewChecker(lim, prober, reverser)
	return &Verifier{
		limiter:  lim,
		resolver: resolver,
		checker:  checker,
		scanner:  subnet.New(checker, subnet.WithLimit(lim.Size())),
	}
}

// Verify the specified hostnames and return the final records, with at least
// one record per hostname. Hostnames appearing multiple times get verified
// only once.
//
// If the context gets done before all hostnames have been verified, Verify
// returns the context's error and no records.
func (v *Verifier) Verify(ctx context.Context, hostnames []string) ([]types.Record, error) {
	set := results.New(hostnames)
	if err := v.Run(ctx, set); err != nil {
		return nil, err
	}
	return set.Records(), nil
}

// Run verifies all hostnames registered with the specified result set
// concurrently, adding records and progress updates to the set as they become
// known. After all hostnames have been verified, Run finalizes the set,
// thereby adding placeholder records for hostnames without any records.
//
// If the context gets done before all hostnames have been verified, Run
// returns the context's error and leaves the set unfinalized.
func (v *Verifier) Run(ctx context.Context, set *results.Set) error {
	var g errgroup.Group
	g.SetLimit(v.limiter.Size())
	for _, hostname := range set.Hostnames() {
		if ctx.Err() != nil {
			break
		}
		hostname := hostname
		g.Go(func() error {
			return v.verify(ctx, set, hostname)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	set.Finalize()
	return nil
}

// verify a single hostname, only returning an error if the context is done.
func (v *Verifier) verify(ctx context.Context, set *results.Set, hostname string) error {
	log.Debugf("processing %s...", hostname)
	set.SetStage(hostname, types.Resolving)
	var addrs []string
	var err error
	if lerr := v.limiter.Do(ctx, func() {
		addrs, err = v.resolver.ResolveName(ctx, hostname)
	}); lerr != nil {
		return lerr
	}
	var addr netip.Addr
	if err == nil {
		addr, err = firstIPv4(addrs)
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Infof("cannot resolve %q: %s", hostname, err.Error())
		set.SetStage(hostname, types.Unresolved)
		return nil
	}
	log.Debugf("hostname %s resolved into %s", hostname, addr)

	set.SetStage(hostname, types.Checking)
	verdict := v.checker.Check(ctx, addr.String())
	if err := ctx.Err(); err != nil {
		return err
	}
	if subnet.NameMatches(verdict.Name, hostname) {
		set.Add(verdict.RecordFor(hostname, false))
		set.SetStage(hostname, types.Done)
		return nil
	}

	log.Infof("reverse name %q of %s doesn't match %s, scanning subnet %s",
		verdict.Name, addr, hostname, subnet.Of(addr))
	set.SetStage(hostname, types.Scanning)
	if err := v.scanner.Scan(ctx, addr, hostname, set.Add,
		func(checked, candidates int) {
			set.SetScanProgress(hostname, checked, candidates)
		}); err != nil {
		return err
	}
	set.SetStage(hostname, types.Done)
	return nil
}

// firstIPv4 returns the first IPv4 address from the specified list of
// addresses in textual format.
func firstIPv4(addrs []string) (netip.Addr, error) {
	for _, a := range addrs {
		if addr, err := netip.ParseAddr(a); err == nil && addr.Is4() {
			return addr, nil
		}
	}
	return netip.Addr{}, errNoIPv4
}
