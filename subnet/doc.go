/*
Package subnet implements the subnet fallback: when the reverse name of the
address a hostname resolved to doesn't match the hostname, the /24 subnet
containing that address gets scanned for addresses whose reverse names do
match.

[Hosts] enumerates the usable host addresses of an IPv4 prefix, that is,
without the network and broadcast addresses. A [Scanner] then checks all host
addresses of a /24 concurrently, except for the originally resolved address,
and reports only those with a matching reverse name.

Subnet arithmetic leverages [go4.org/netipx].

[go4.org/netipx]: https://pkg.go.dev/go4.org/netipx
*/
package subnet
