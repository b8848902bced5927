/*
Package verifier implements the hostname verification pipeline: resolving
hostnames, checking the resolved addresses for liveness and matching reverse
names, and falling back to scanning the /24 subnet in case of mismatching
reverse names.

A [Checker] checks single addresses by concurrently pinging them and looking
up their reverse names; its verdicts are cached per address, so that
overlapping subnet scans don't check the same address twice.

A [Verifier] verifies all hostnames concurrently. All forward lookups, reverse
lookups and pings share a single [limiter.Limiter].
*/
package verifier
