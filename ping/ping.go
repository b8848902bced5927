// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/siemens/hostverify/types"

	"github.com/go-ping/ping"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// Timeout is the maximum time to wait for an echo reply.
const Timeout = 1000 * time.Millisecond

// ErrInvalidIP is returned when trying to probe something that isn't an IPv4
// address.
var ErrInvalidIP = errors.New("invalid IPv4 address")

// errNoReply signals an unanswered echo request from inside the probe
// function; it never leaves this package.
var errNoReply = errors.New("no reply")

// Prober probes the liveness of IPv4 addresses using a single ICMP echo
// request each.
type Prober struct {
	unprivileged bool               // if true, uses UDP-based pings instead of privileged ICMPs.
	netns        relations.Relation // network namespace to ping from, or nil.
	timeout      time.Duration
}

// ProberOption can be passed to New when creating new Prober objects.
type ProberOption func(*Prober)

// New returns a new [Prober].
//
// The prober can be configured during creation using these options:
//   - [AsUnprivileged]
//   - [InNetworkNamespace]
func New(options ...ProberOption) *Prober {
	p := &Prober{
		timeout: Timeout,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// InNetworkNamespace optionally runs a [Prober] inside the network namespace
// referenced by the specified filesystem path, such as "/proc/666/ns/net".
func InNetworkNamespace(netnsref string) ProberOption {
	return func(p *Prober) {
		if netnsref == "" {
			return
		}
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// AsUnprivileged tells the Prober to carry out unprivileged pings using UDP
// instead of ICMP packets.
func AsUnprivileged() ProberOption {
	return func(p *Prober) {
		p.unprivileged = true
	}
}

// Probe sends a single echo request to the specified IPv4 address and returns
// [types.Online] if a reply arrives in time, and [types.Offline] otherwise.
//
// A non-nil error reports why the probe could not be carried out at all, such
// as an invalid address, missing privileges, or the context being done; the
// status then is always [types.Offline]. An unanswered echo request is not an
// error.
func (p *Prober) Probe(ctx context.Context, addr string) (types.Status, error) {
	ip, err := netip.ParseAddr(addr)
	if err != nil || !ip.Is4() {
		return types.Offline, fmt.Errorf("%q: %w", addr, ErrInvalidIP)
	}
	probe := func() interface{} {
		// A quick and non-blocking check to see if the context has been
		// cancelled before we start our work...
		if err := ctx.Err(); err != nil {
			return err
		}
		pinger, err := ping.NewPinger(ip.String())
		if err != nil {
			return err
		}
		pinger.SetPrivileged(!p.unprivileged)
		pinger.Count = 1
		pinger.Timeout = p.timeout
		// While the ping will be running, we need to monitor the context in
		// case it becomes "done". The done channel here works "the other way
		// round" in the sense that it terminates the concurrent context
		// monitoring.
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				pinger.Stop()
			case <-done:
			}
		}()
		if err := pinger.Run(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if pinger.Statistics().PacketsRecv < 1 {
			return errNoReply
		}
		return nil
	}
	// Run the probe in the requested network namespace, if necessary.
	// lxkns' ops.Execute differentiates between a namespace switching error
	// and the result of the function called in the switched namespace.
	var res interface{}
	if p.netns != nil {
		res, err = ops.Execute(probe, p.netns)
		if err != nil {
			return types.Offline, err
		}
	} else {
		res = probe()
	}
	switch res {
	case nil:
		return types.Online, nil
	case errNoReply:
		return types.Offline, nil
	}
	return types.Offline, fmt.Errorf("probing %s: %w", addr, res.(error))
}
