/*
Package mobynet locates the network namespace of a Docker container, so that
hostnames can be verified from the container's point of view instead of the
host's.
*/
package mobynet
