/*
Package export writes verification records as CSV and renders them as a
console table.

Both use the same columns and labels:

	Hostname | IP Resolvido | Status | Verificado na Subrede
*/
package export
