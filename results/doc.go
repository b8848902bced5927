/*
Package results collects the verification records of a run, together with the
progress of each hostname being verified.

A [Set] is safe for concurrent use by the many goroutines verifying hostnames
and scanning subnets, as well as by a renderer periodically taking snapshots
for display. After all verification work has finished, [Set.Finalize] adds
placeholder records for hostnames that didn't produce any record, so that each
hostname of the input appears at least once in the final results.
*/
package results
