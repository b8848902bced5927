// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"time"

	"github.com/siemens/hostverify/limiter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
	_ "github.com/thediveo/lxkns/log/logrus" // use logrus as the logging backend
)

// defaultOutputName is the name of the CSV file written next to the
// executable unless --output says otherwise.
const defaultOutputName = "resultado_hostnames.csv"

var (
	outputPath      *string
	dnsServer       *string
	dnsTimeout      *time.Duration
	dnsTCP          *bool
	limit           *uint
	unprivileged    *bool
	netnsRef        *string
	containerName   *string
	spinnerInterval *time.Duration
	noPause         *bool
	debug           *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:   "hostverify [flags] [hostsfile]",
		Short: "hostverify resolves hostnames and verifies them using ping and reverse DNS, scanning their /24 subnets if necessary",
		Long: `hostverify resolves each hostname listed in hostsfile, pings the address
and checks that its reverse DNS name matches the hostname. Otherwise, it scans
the address' /24 subnet for hosts with a matching reverse name. The results
are shown as a table and exported as CSV.

When no hostsfile is given, hostverify asks for it.`,
		Version: "0.9",
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *dnsTimeout < 100*time.Millisecond {
				return fmt.Errorf("--dns-timeout must be at least 100ms")
			}
			if *limit > limiter.MaxLimit {
				return fmt.Errorf("--limit out of range [0..%d]", limiter.MaxLimit)
			}
			if *spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			if *netnsRef != "" && *containerName != "" {
				return fmt.Errorf("--netns and --container are mutually exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cmd.SilenceUsage = true // flags and args are fine at this point.
			if !*noPause {
				// Keep any error message readable in console windows that
				// close as soon as we exit.
				defer func() {
					if err != nil {
						cmd.PrintErrln("Error:", err.Error())
						cmd.SilenceErrors = true
					}
					pause(cmd.InOrStdin(), cmd.OutOrStdout())
				}()
			}
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: *debug})
			if *debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			var path string
			if len(args) > 0 {
				path = args[0]
			} else {
				if path, err = promptPath(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			output, err := resolveOutputPath(*outputPath)
			if err != nil {
				return err
			}
			return VerifyAndReport(cmd.Context(), cmd.OutOrStdout(), path, output)
		},
	}
	// Sets up the flags.
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	outputPath = rootCmd.PersistentFlags().StringP(
		"output", "o", "", "CSV file to write the results to (default \""+defaultOutputName+"\" next to the executable)")
	dnsServer = rootCmd.PersistentFlags().String(
		"dns-server", "", "DNS server address to query, in host[:port] format (default from /etc/resolv.conf)")
	dnsTimeout = rootCmd.PersistentFlags().Duration(
		"dns-timeout", 5*time.Second, "timeout of individual DNS queries")
	dnsTCP = rootCmd.PersistentFlags().Bool(
		"dns-tcp", false, "query the DNS server over TCP instead of UDP")
	limit = rootCmd.PersistentFlags().Uint(
		"limit", 0, fmt.Sprintf("maximum number of concurrent DNS queries and pings, as well as of hostnames verified at the same time; 0 scales with the number of CPUs (currently %d)", limiter.DefaultLimit()))
	unprivileged = rootCmd.PersistentFlags().Bool(
		"unprivileged", false, "send unprivileged UDP pings instead of ICMP pings (implied when not running as root)")
	netnsRef = rootCmd.PersistentFlags().String(
		"netns", "", "verify from inside the network namespace at the specified path")
	containerName = rootCmd.PersistentFlags().String(
		"container", "", "verify from inside the network namespace of the specified Docker container")
	spinnerInterval = rootCmd.PersistentFlags().Duration(
		"spinner", 100*time.Millisecond, "spinner interval")
	noPause = rootCmd.PersistentFlags().Bool(
		"no-pause", false, "do not wait for Enter before exiting")
	return
}
