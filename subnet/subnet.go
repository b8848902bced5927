// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package subnet

import (
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// Bits is the prefix length of the subnets scanned.
const Bits = 24

// Of returns the /24 prefix containing the specified IPv4 address.
func Of(addr netip.Addr) netip.Prefix {
	prefix, _ := addr.Prefix(Bits)
	return prefix
}

// Hosts returns the usable host addresses of the specified IPv4 prefix, in
// ascending order. The network and broadcast addresses are left out, except
// for /31 point-to-point and /32 host prefixes where all addresses are usable.
func Hosts(prefix netip.Prefix) []netip.Addr {
	if !prefix.IsValid() || !prefix.Addr().Is4() {
		return nil
	}
	prefix = prefix.Masked()
	r := netipx.RangeOfPrefix(prefix)
	from, to := r.From(), r.To()
	if prefix.Bits() < 31 {
		from, to = from.Next(), to.Prev()
	}
	var hosts []netip.Addr
	for addr := from; addr.IsValid() && addr.Compare(to) <= 0; addr = addr.Next() {
		hosts = append(hosts, addr)
	}
	return hosts
}

// NameMatches returns true if the reverse name starts with the hostname,
// ignoring case. Empty names never match.
func NameMatches(name, hostname string) bool {
	if name == "" || hostname == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(hostname))
}
