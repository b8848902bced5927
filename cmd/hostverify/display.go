// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/siemens/hostverify/results"
	"github.com/siemens/hostverify/types"
)

// maxActiveLines limits how many hostnames still being verified get shown
// individually.
const maxActiveLines = 20

// renderer renders the live progress display, based on the per-hostname
// progress passed to its Render method.
type renderer struct {
	Indentation int
	Styled      bool
	Queued      func() int // optional number of network operations waiting.
	source      string
	w           io.Writer
	spinner     *spinner
}

// newRenderer returns a renderer rendering to the specified io.Writer. source
// names where the hostnames came from.
func newRenderer(w io.Writer, source string) *renderer {
	return &renderer{
		Indentation: 2,
		source:      source,
		w:           w,
		spinner:     newSpinner(*spinnerInterval),
	}
}

// Stop the renderer's background spinner.
func (r *renderer) Stop() {
	r.spinner.Stop()
}

// Render a summary line followed by the hostnames still being verified, as
// well as the finished hostnames that turned out to be problematic.
func (r *renderer) Render(hosts []results.Host) {
	done, found := 0, 0
	active := []results.Host{}
	failed := []results.Host{}
	for _, host := range hosts {
		switch {
		case !host.Stage.IsTerminal():
			active = append(active, host)
		case host.Records > 0:
			done++
			found++
		default:
			done++
			failed = append(failed, host)
		}
	}
	fmt.Fprintf(r.w, "verifying hostnames from %s: %d/%d done, %d found",
		r.source, done, len(hosts), found)
	if r.Queued != nil {
		if queued := r.Queued(); queued > 0 {
			fmt.Fprintf(r.w, ", %d operations queued", queued)
		}
	}
	fmt.Fprintln(r.w)

	// For neat display, determine the length of the longest hostname to show,
	// so that the status column doesn't zig-zag around.
	shown := active
	if len(shown) > maxActiveLines {
		shown = shown[:maxActiveLines]
	}
	maxlen := 0
	for _, list := range [][]results.Host{shown, failed} {
		for _, host := range list {
			if l := utf8.RuneCountInString(displayName(host)); l > maxlen {
				maxlen = l
			}
		}
	}
	for _, host := range failed {
		r.renderHost(maxlen, host)
	}
	for _, host := range shown {
		r.renderHost(maxlen, host)
	}
	if more := len(active) - len(shown); more > 0 {
		fmt.Fprintf(r.w, "%-*s... and %d more\n", r.Indentation, "", more)
	}
}

// renderHost renders the progress of a single hostname.
func (r *renderer) renderHost(namewidth int, host results.Host) {
	name := fmt.Sprintf("%-*s", namewidth, displayName(host))
	fmt.Fprintf(r.w, "%-*s%s ", r.Indentation, "", r.style(hostnameStyle.Styled, name))
	switch host.Stage {
	case types.Pending:
		fmt.Fprint(r.w, " ? pending")
	case types.Resolving:
		fmt.Fprint(r.w, r.style(busyStyle.Styled, " "+r.spinner.Spinner()+" resolving "))
	case types.Checking:
		fmt.Fprint(r.w, r.style(busyStyle.Styled, " "+r.spinner.Spinner()+" checking "))
	case types.Scanning:
		fmt.Fprint(r.w, r.style(busyStyle.Styled,
			fmt.Sprintf(" %s scanning subnet %d/%d ", r.spinner.Spinner(), host.Checked, host.Candidates)))
	case types.Unresolved:
		fmt.Fprint(r.w, r.style(failedStyle.Styled, " × unresolved "))
	case types.Done:
		if host.Records > 0 {
			fmt.Fprint(r.w, r.style(foundStyle.Styled, fmt.Sprintf(" ✔ %d found ", host.Records)))
		} else {
			fmt.Fprint(r.w, r.style(failedStyle.Styled, " × no match "))
		}
	}
	fmt.Fprintln(r.w)
}

// displayName returns the hostname to show, making empty hostnames from blank
// input lines visible.
func displayName(host results.Host) string {
	if host.Hostname == "" {
		return "(empty)"
	}
	return host.Hostname
}

// style applies the styling function only when rendering to a terminal that
// can show colors.
func (r *renderer) style(fn func(string) string, s string) string {
	if !r.Styled {
		return s
	}
	return fn(s)
}
