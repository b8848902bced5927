// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package subnet

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
	"sync/atomic"

	"github.com/siemens/hostverify/types"

	"github.com/thediveo/lxkns/log"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the number of subnet addresses a Scanner checks
// concurrently, unless told otherwise using [WithLimit].
const DefaultLimit = 50

// Checker checks the liveness and reverse name of a single address.
type Checker interface {
	Check(ctx context.Context, addr string) types.Verdict
}

// ProgressFunc receives the number of checked subnet addresses so far, as
// well as the total number of addresses to check.
type ProgressFunc func(done, total int)

// Scanner scans /24 subnets for addresses with matching reverse names.
type Scanner struct {
	checker Checker
	limit   int
}

// Option configures a [Scanner].
type Option func(*Scanner)

// New returns a new [Scanner] checking addresses using the specified checker,
// with at most [DefaultLimit] checks in flight per scan.
func New(checker Checker, options ...Option) *Scanner {
	s := &Scanner{
		checker: checker,
		limit:   DefaultLimit,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// WithLimit sets the maximum number of addresses checked concurrently in a
// single scan. Limits less than 1 are ignored.
func WithLimit(limit int) Option {
	return func(s *Scanner) {
		if limit >= 1 {
			s.limit = limit
		}
	}
}

// Scan checks all host addresses of the /24 subnet containing the specified
// address concurrently (up to the scanner's limit), except for the specified address itself. For each
// address whose reverse name matches the hostname, emit gets called with a
// record for the hostname and this address, flagged as found in the subnet.
// Addresses without a matching name are silently dropped. Matches are emitted
// in no particular order, but never concurrently.
//
// The optional progress function gets called after each address checked,
// possibly concurrently.
//
// Scan returns only after all addresses have been checked, or the context is
// done. In the latter case, the context's error is returned, and some
// addresses will have gone unchecked.
func (s *Scanner) Scan(ctx context.Context, exclude netip.Addr, hostname string, emit func(types.Record), progress ProgressFunc) error {
	if !exclude.Is4() {
		return fmt.Errorf("cannot scan subnet of %q: not an IPv4 address", exclude)
	}
	candidates := make([]netip.Addr, 0, 254)
	for _, addr := range Hosts(Of(exclude)) {
		if addr != exclude {
			candidates = append(candidates, addr)
		}
	}
	total := len(candidates)
	log.Debugf("scanning subnet %s for %s, %d addresses", Of(exclude), hostname, total)

	var emitMu sync.Mutex
	var checked atomic.Int32
	var g errgroup.Group
	g.SetLimit(s.limit)
	for _, addr := range candidates {
		if ctx.Err() != nil {
			break
		}
		addr := addr.String()
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			log.Debugf("checking %s -> %s", hostname, addr)
			verdict := s.checker.Check(ctx, addr)
			if progress != nil {
				progress(int(checked.Add(1)), total)
			}
			if !NameMatches(verdict.Name, hostname) {
				return nil
			}
			log.Infof("match found: %s corresponds with %s", verdict.Name, addr)
			emitMu.Lock()
			defer emitMu.Unlock()
			emit(verdict.RecordFor(hostname, true))
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}
