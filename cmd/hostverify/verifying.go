// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/siemens/hostverify/export"
	"github.com/siemens/hostverify/hostlist"
	"github.com/siemens/hostverify/limiter"
	"github.com/siemens/hostverify/mobynet"
	"github.com/siemens/hostverify/ping"
	"github.com/siemens/hostverify/resolver"
	"github.com/siemens/hostverify/results"
	"github.com/siemens/hostverify/verifier"

	"github.com/docker/docker/client"
	"github.com/gosuri/uilive"
	"github.com/muesli/termenv"
	"github.com/thediveo/lxkns/log"
)

// VerifyAndReport reads the hostnames from the list at path, verifies them
// while showing the progress, and finally renders the results as a table and
// writes them as CSV to the output path.
func VerifyAndReport(ctx context.Context, out io.Writer, path string, output string) error {
	hostnames, err := hostlist.ReadFile(path)
	if err != nil {
		return err
	}

	netns := *netnsRef
	server := *dnsServer
	if *containerName != "" {
		cntr, err := inspectContainer(ctx, *containerName)
		if err != nil {
			return err
		}
		log.Infof("verifying from container %s, attached to networks %v", cntr.Name, cntr.Networks)
		netns = cntr.Netns
		if server == "" {
			server = mobynet.EmbeddedDNSServer
		}
	}

	// Now lets put the required processing elements and their plumbing in
	// place.
	//
	//   - DNS client for forward and reverse lookups.
	//   - Prober for pinging addresses.
	//   - Limiter shared by all DNS queries and pings.
	//   - Verifier driving these, feeding its results into the result set.
	//
	// Rendering is done on the progress information collected by the result
	// set.
	opts := []resolver.Option{
		resolver.WithTimeout(*dnsTimeout),
		resolver.InNetworkNamespace(netns),
	}
	if server != "" {
		opts = append(opts, resolver.WithServer(server))
	}
	if *dnsTCP {
		opts = append(opts, resolver.OverTCP())
	}
	dnsclient, err := resolver.New(opts...)
	if err != nil {
		return fmt.Errorf("cannot set up DNS client: %w", err)
	}
	probeopts := []ping.ProberOption{ping.InNetworkNamespace(netns)}
	if unprivilegedPings() {
		probeopts = append(probeopts, ping.AsUnprivileged())
	}
	prober := ping.New(probeopts...)
	size := int(*limit)
	if size == 0 {
		size = limiter.DefaultLimit()
	}
	lim := limiter.New(size)
	defer lim.StopWait()
	log.Debugf("using %s, limit %d", dnsclient, size)

	set := results.New(hostnames)
	styled := termenv.NewOutput(out).EnvColorProfile() != termenv.Ascii

	verifyingDone := make(chan struct{})
	renderingDone := make(chan struct{})
	go func() {
		// We avoid uilive's background updating via Start(), as it may trigger
		// anytime with the rendering into the buffer not yet complete. Instead,
		// we explicitly flush to the terminal after each complete rendering.
		term := uilive.New()
		term.Out = out
		renderer := newRenderer(term, filepath.Base(path))
		renderer.Styled = styled
		renderer.Queued = lim.Waiting
		defer func() {
			renderData(term, renderer, set)
			renderer.Stop()
			close(renderingDone)
		}()
		renderData(term, renderer, set)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				renderData(term, renderer, set)
			case <-verifyingDone:
				return
			}
		}
	}()

	err = verifier.New(lim, dnsclient, dnsclient, prober).Run(ctx, set)
	close(verifyingDone)
	<-renderingDone
	if err != nil {
		return fmt.Errorf("verification aborted: %w", err)
	}

	records := set.Records()
	fmt.Fprintln(out, "\nresults:")
	if err := export.WriteTable(out, records, styled); err != nil {
		return fmt.Errorf("cannot render results: %w", err)
	}
	if err := export.WriteCSVFile(output, records); err != nil {
		return err
	}
	fmt.Fprintf(out, "results exported to %s\n", output)
	return nil
}

// For CLI unit tests...
var osGeteuid = os.Geteuid

// unprivilegedPings returns true if pings need to be unprivileged, either
// because the user asked for it or because we're not running as root and thus
// most probably lack the capability to send raw ICMP packets.
func unprivilegedPings() bool {
	if *unprivileged {
		return true
	}
	if osGeteuid() != 0 {
		log.Infof("not running as root, using unprivileged pings")
		return true
	}
	return false
}

// inspectContainer returns the network namespace and attached networks of the
// specified Docker container.
func inspectContainer(ctx context.Context, name string) (mobynet.Container, error) {
	cln, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return mobynet.Container{}, fmt.Errorf("cannot connect to the Docker daemon: %w", err)
	}
	defer cln.Close()
	return mobynet.Inspect(ctx, cln, name)
}

// renderData gets the current progress data and then renders (and flushes) it
// to the terminal.
func renderData(term *uilive.Writer, r *renderer, set *results.Set) {
	r.Render(set.Hosts())
	_ = term.Flush()
}
