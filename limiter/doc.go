/*
Package limiter bounds the number of network operations that are in flight at
the same time, across all hostnames being verified and all subnet addresses
being scanned.

A single [Limiter] is shared by the whole verification run. Callers wrap each
individual network operation (a forward lookup, a reverse lookup, or a ping)
into [Limiter.Do], which holds a worker slot only for as long as the operation
runs:

	lim := limiter.New(limiter.DefaultLimit())
	defer lim.StopWait()
	err := lim.Do(ctx, func() {
	    status = prober.Probe(ctx, addr)
	})

As slots are never held across nested fan-outs, a hostname task waiting for its
subnet scan cannot starve the scan of slots.

# Acknowledgements

Under its hood, [Limiter] leverages [gammazero/workerpool] as the limiting
goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package limiter
