/*
Package hostlist reads the list of hostnames to verify.

The list is plain text with one hostname per line. Surrounding whitespace is
removed, but blank lines are kept as empty hostnames so that every input line
shows up in the results.
*/
package hostlist
