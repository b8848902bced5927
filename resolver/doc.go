/*
Package resolver implements forward (A) and reverse (PTR) DNS lookups of IPv4
addresses in pure Go, leveraging the [miekg/dns] module. Lookups are single
queries against a single DNS server: there are no retries, but each query is
bounded by the client timeout.

The DNS server as well as the search list and ndots settings default to the
system's resolv.conf. Names without enough dots are thus expanded using the
search list, similar to what the system resolver does.

To carry out lookups from inside a network namespace different to that of the
caller, specify the [InNetworkNamespace] option.

Usage

	clnt, err := resolver.New(resolver.WithTimeout(2 * time.Second))
	addrs, err := clnt.ResolveName(ctx, "foobar.example.org")
	name, err := clnt.ReverseLookup(ctx, "192.0.2.42")

[miekg/dns]: https://github.com/miekg/dns
*/
package resolver
