// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package mobynet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
)

// EmbeddedDNSServer is the address of Docker's embedded DNS resolver inside
// containers attached to user-defined networks.
const EmbeddedDNSServer = "127.0.0.11:53"

// ErrNotRunning signals a container without any process, and thus without a
// network namespace to join.
var ErrNotRunning = errors.New("container is not running")

// ContainerInspector inspects containers; *client.Client satisfies it.
type ContainerInspector interface {
	ContainerInspect(ctx context.Context, container string) (types.ContainerJSON, error)
}

// Container describes the network side of a running container.
type Container struct {
	Name     string   // without Docker's leading "/".
	Netns    string   // network namespace path, in /proc/$PID/ns/net format.
	Networks []string // names of the attached networks, sorted.
}

// Inspect returns the network namespace and attached networks of the
// specified container, identified by either its name or ID.
func Inspect(ctx context.Context, moby ContainerInspector, container string) (Container, error) {
	details, err := moby.ContainerInspect(ctx, container)
	if err != nil {
		return Container{}, fmt.Errorf("cannot inspect container '%s': %w", container, err)
	}
	if details.ContainerJSONBase == nil || details.State == nil || details.State.Pid == 0 {
		return Container{}, fmt.Errorf("%w: '%s'", ErrNotRunning, container)
	}
	cntr := Container{
		Name:     strings.TrimPrefix(details.Name, "/"), // argh, Docker's "/name" legacy!
		Netns:    fmt.Sprintf("/proc/%d/ns/net", details.State.Pid),
		Networks: []string{},
	}
	if details.NetworkSettings != nil {
		for name := range details.NetworkSettings.Networks {
			cntr.Networks = append(cntr.Networks, name)
		}
		sort.Strings(cntr.Networks)
	}
	return cntr, nil
}
