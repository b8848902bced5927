/*
Package ping implements the ICMP-based liveness probe of IPv4 addresses.

A [Prober] sends a single ICMP echo request to an address and waits at most one
second for the reply. There are no retries: a reply makes the address
[types.Online], anything else [types.Offline], including failing to send the
echo request in the first place.

	          +---+
	addr ---->| P +----> Online/Offline
	          +---+

Probers are safe for concurrent use; limiting the number of concurrent probes
is the caller's business.

Probers can either send privileged ICMP echo requests using raw sockets, or
unprivileged UDP-based “pings” where the operating system supports this (see
[AsUnprivileged]). To probe from inside a network namespace different to that
of the caller specify the [InNetworkNamespace] option.

# Acknowledgements

Under its hood, [Prober] leverages [go-ping/ping] for sending and receiving ICMP
echo requests and replies.

[go-ping/ping]: https://github.com/go-ping/ping
*/
package ping
