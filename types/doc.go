/*
Package types defines hostverify's information model. It revolves around the
[Record] of a verified hostname, the liveness [Status] of an address, and the
[Verdict] of checking a single address by pinging it and looking up its
reverse DNS name.

Records are plain values: once created they are never changed, so they can be
passed around freely between the many goroutines verifying hostnames and
scanning subnets without any locking.

	hostname --resolve--> address --probe+reverse--> Verdict
	                                     |
	                    name matches? ---+--- no --> /24 scan --> Verdicts
	                         |                                      |
	                         v                                      v
	                   Record{InSubnet: false}            Record{InSubnet: true}

A hostname that neither resolves nor has any matching address in its subnet
finally gets a placeholder record with an empty address and [Unknown] status.
*/
package types
