// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// ResolvConf is the path of the system's DNS client configuration.
var ResolvConf = "/etc/resolv.conf"

// DefaultTimeout limits each individual DNS query unless overridden using
// [WithTimeout].
const DefaultTimeout = 5 * time.Second

var (
	// ErrEmptyName is returned when trying to resolve an empty name.
	ErrEmptyName = errors.New("empty name")
	// ErrNoAnswer is returned when a query succeeded, but without any
	// answer records of the requested type.
	ErrNoAnswer = errors.New("no answer records")
	// ErrInvalidIP is returned when an address isn't a valid IPv4 address.
	ErrInvalidIP = errors.New("invalid IPv4 address")
	// ErrNoServer is returned when no DNS server could be determined.
	ErrNoServer = errors.New("no DNS server configured")
)

// RcodeError reports a DNS response with an unsuccessful response code, such
// as NXDOMAIN.
type RcodeError struct {
	Name  string // queried name
	Rcode int    // response code
}

func (e *RcodeError) Error() string {
	return fmt.Sprintf("query for %q failed: %s", e.Name, dns.RcodeToString[e.Rcode])
}

// Client looks up names and addresses on a single DNS server.
type Client struct {
	netns   relations.Relation // network namespace to query from, or nil.
	client  dns.Client
	server  string
	config  *dns.ClientConfig // search list and ndots, or nil.
	timeout time.Duration
}

// Option can be passed to New when creating new [Client] objects.
type Option func(*Client)

// New returns a new DNS [Client]. Unless specified otherwise using options, the
// client uses the first name server as well as the search list from the
// system's resolv.conf.
//
// The client can be configured during creation using several options:
//   - [WithServer]
//   - [WithConfig]
//   - [WithTimeout]
//   - [OverTCP]
//   - [InNetworkNamespace]
func New(options ...Option) (*Client, error) {
	c := &Client{
		timeout: DefaultTimeout,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.config == nil {
		config, err := dns.ClientConfigFromFile(ResolvConf)
		switch {
		case err == nil:
			c.config = config
		case c.server == "":
			return nil, fmt.Errorf("cannot read DNS client configuration: %w", err)
		}
	}
	if c.server == "" {
		if len(c.config.Servers) == 0 {
			return nil, ErrNoServer
		}
		port := c.config.Port
		if port == "" {
			port = "53"
		}
		c.server = net.JoinHostPort(c.config.Servers[0], port)
	}
	c.client.Timeout = c.timeout
	return c, nil
}

// WithServer sets the address of the DNS server to query, in "host:port"
// format. If the port is missing, port 53 is assumed.
func WithServer(addr string) Option {
	return func(c *Client) {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			addr = net.JoinHostPort(addr, "53")
		}
		c.server = addr
	}
}

// WithConfig sets the search list and ndots configuration to use instead of
// the system's resolv.conf. If the configuration lists servers and no server
// has been specified using [WithServer], then the first configured server is
// used.
func WithConfig(config *dns.ClientConfig) Option {
	return func(c *Client) {
		c.config = config
	}
}

// WithTimeout sets the time limit for each individual DNS query.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// OverTCP queries the DNS server using TCP instead of UDP.
func OverTCP() Option {
	return func(c *Client) {
		c.client.Net = "tcp"
	}
}

// InNetworkNamespace optionally runs the DNS queries inside the network
// namespace referenced by the specified filesystem path.
func InNetworkNamespace(netnsref string) Option {
	return func(c *Client) {
		if netnsref == "" {
			return
		}
		c.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// Server returns the "host:port" address of the DNS server queried.
func (c *Client) Server() string { return c.server }

// ResolveName looks up the IPv4 addresses of the specified name. Names that
// aren't fully qualified are expanded using the search list, taking the first
// expanded name that yields any addresses. IPv4 address literals are returned
// as-is without any query.
//
// ResolveName returns an error if the name cannot be resolved, for instance,
// because the name does not exist, the DNS server cannot be reached, or there
// are no A records.
func (c *Client) ResolveName(ctx context.Context, name string) ([]string, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if addr, err := netip.ParseAddr(name); err == nil {
		if !addr.Is4() {
			return nil, fmt.Errorf("%q: %w", name, ErrInvalidIP)
		}
		return []string{addr.String()}, nil
	}
	// Names without any A records, but existing otherwise, take precedence
	// over non-existing names when reporting back.
	var nodata, lasterr error
	for _, fqdn := range c.nameList(name) {
		r, err := c.exchange(ctx, fqdn, dns.TypeA)
		if err != nil {
			var rcerr *RcodeError
			if errors.As(err, &rcerr) {
				lasterr = err
				continue // try next name from the search list.
			}
			return nil, err
		}
		var addrs []string
		for _, rr := range r.Answer {
			if a, ok := rr.(*dns.A); ok {
				addrs = append(addrs, a.A.String())
			}
		}
		if len(addrs) > 0 {
			return addrs, nil
		}
		if nodata == nil {
			nodata = fmt.Errorf("query for %q: %w", fqdn, ErrNoAnswer)
		}
	}
	if nodata != nil {
		return nil, nodata
	}
	return nil, lasterr
}

// ReverseLookup returns the name for the specified IPv4 address as returned by
// a PTR query, without the trailing dot. If there are multiple PTR records,
// the first one wins.
func (c *Client) ReverseLookup(ctx context.Context, addr string) (string, error) {
	ip, err := netip.ParseAddr(addr)
	if err != nil || !ip.Is4() {
		return "", fmt.Errorf("%q: %w", addr, ErrInvalidIP)
	}
	arpa, err := dns.ReverseAddr(ip.String())
	if err != nil {
		return "", fmt.Errorf("%q: %w", addr, ErrInvalidIP)
	}
	r, err := c.exchange(ctx, arpa, dns.TypePTR)
	if err != nil {
		return "", err
	}
	for _, rr := range r.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			return strings.TrimSuffix(ptr.Ptr, "."), nil
		}
	}
	return "", fmt.Errorf("PTR query for %s: %w", addr, ErrNoAnswer)
}

// nameList returns the list of fully qualified names to query for the given
// name, applying the search list if necessary.
func (c *Client) nameList(name string) []string {
	if c.config == nil {
		return []string{dns.Fqdn(name)}
	}
	return c.config.NameList(name)
}

// exchange sends a single query for the specified name and type and returns
// the response, unless the query failed or the response code signals an
// error.
func (c *Client) exchange(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(name, qtype)
	var r *dns.Msg
	query := func() interface{} {
		var err error
		r, _, err = c.client.ExchangeContext(ctx, msg, c.server)
		if err != nil {
			return err
		}
		return nil
	}
	// Run the query in the requested network namespace, if necessary. Similar
	// to pinging, ops.Execute differentiates between namespace switching errors
	// and the result of the query function.
	var res interface{}
	if c.netns != nil {
		var err error
		res, err = ops.Execute(query, c.netns)
		if err != nil {
			return nil, err
		}
	} else {
		res = query()
	}
	if res != nil {
		return nil, fmt.Errorf("%s query for %q: %w",
			dns.TypeToString[qtype], name, res.(error))
	}
	if r.Rcode != dns.RcodeSuccess {
		return nil, &RcodeError{Name: name, Rcode: r.Rcode}
	}
	return r, nil
}

// String returns a short description of the client for logging.
func (c *Client) String() string {
	proto := c.client.Net
	if proto == "" {
		proto = "udp"
	}
	return fmt.Sprintf("DNS client %s://%s (timeout %s)", proto, c.server, c.timeout)
}
