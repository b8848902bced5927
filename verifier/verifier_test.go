// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"fmt"
	"net/netip"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/siemens/hostverify/limiter"
	"github.com/siemens/hostverify/results"
	"github.com/siemens/hostverify/subnet"
	"github.com/siemens/hostverify/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
)

var _ = Describe("verification pipeline", func() {

	var lim *limiter.Limiter
	var dns *fakeDNS

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).Within(2 * time.Second).ProbeEvery(100 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
		lim = limiter.New(limiter.DynamicLimit(2))
		DeferCleanup(lim.StopWait)
		dns = &fakeDNS{
			forward: map[string][]string{
				"example.com": {"93.184.216.34"},
				"web01":       {"10.0.0.1", "10.0.0.99"},
				"web02":       {"10.0.0.2"},
				"lonely":      {"10.9.9.9"},
				"sixonly":     {"2001:db8::1"},
			},
			reverse: map[string]string{
				"93.184.216.34": "example.com",
				"10.0.0.1":      "stale.example.org",
				"10.0.0.2":      "also-stale.example.org",
				"10.0.0.7":      "web01.example.org",
				"10.0.0.9":      "WEB01-mgmt.example.org",
				"10.0.0.99":     "web01.example.org",
				"10.0.0.200":    "web02.example.org",
				"10.9.9.9":      "somebody-else.example.org",
			},
		}
	})

	It("reports a direct match", func(ctx context.Context) {
		v := New(lim, dns, dns, newFakeProber("93.184.216.34"))
		Expect(v.Verify(ctx, []string{"example.com"})).To(Equal([]types.Record{
			{Hostname: "example.com", Address: "93.184.216.34", Status: types.Online, InSubnet: false},
		}))
	})

	It("reports a placeholder for unresolvable hostnames", func(ctx context.Context) {
		prober := newFakeProber()
		v := New(lim, dns, dns, prober)
		Expect(v.Verify(ctx, []string{"ghost.invalid"})).To(Equal([]types.Record{
			{Hostname: "ghost.invalid", Address: "", Status: types.Unknown, InSubnet: false},
		}))
		Expect(prober.Probes()).To(BeEmpty())
	})

	It("reports a placeholder for IPv6-only hostnames", func(ctx context.Context) {
		v := New(lim, dns, dns, newFakeProber())
		Expect(v.Verify(ctx, []string{"sixonly"})).To(ConsistOf(types.Placeholder("sixonly")))
	})

	It("falls back to the subnet when the reverse name mismatches", func(ctx context.Context) {
		prober := newFakeProber("10.0.0.7")
		v := New(lim, dns, dns, prober)
		records, err := v.Verify(ctx, []string{"web01"})
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(ConsistOf(
			types.Record{Hostname: "web01", Address: "10.0.0.7", Status: types.Online, InSubnet: true},
			types.Record{Hostname: "web01", Address: "10.0.0.9", Status: types.Offline, InSubnet: true},
			types.Record{Hostname: "web01", Address: "10.0.0.99", Status: types.Offline, InSubnet: true},
		))
		resolved := netip.MustParseAddr("10.0.0.1")
		for _, r := range records {
			addr := netip.MustParseAddr(r.Address)
			Expect(subnet.Of(resolved).Contains(addr)).To(BeTrue())
			Expect(addr).NotTo(Equal(resolved))
		}
		// the resolved address itself plus all other 253 hosts of the /24.
		Expect(prober.Probes()).To(HaveLen(254))
	})

	It("reports only a placeholder when the subnet doesn't match either", func(ctx context.Context) {
		v := New(lim, dns, dns, newFakeProber("10.9.9.9"))
		Expect(v.Verify(ctx, []string{"lonely"})).To(Equal([]types.Record{
			types.Placeholder("lonely"),
		}))
	})

	It("verifies many hostnames, reporting each at least once", func(ctx context.Context) {
		prober := newFakeProber("93.184.216.34", "10.0.0.7")
		prober.delay = time.Millisecond
		v := New(lim, dns, dns, prober)
		hostnames := []string{"example.com", "web01", "web02", "ghost.invalid", "", "lonely", "web01"}
		records, err := v.Verify(ctx, hostnames)
		Expect(err).NotTo(HaveOccurred())
		for _, hostname := range hostnames {
			Expect(records).To(ContainElement(HaveField("Hostname", hostname)))
		}
		Expect(records).To(ContainElement(
			types.Record{Hostname: "web02", Address: "10.0.0.200", Status: types.Offline, InSubnet: true}))
		By("checking each address only once, even across overlapping subnet scans")
		Expect(prober.Probes()).To(HaveEach(1))
		By("never exceeding the concurrency limit")
		Expect(prober.maxInflight.Load()).To(BeNumerically("<=", lim.Size()))
	})

	It("bounds the goroutines of many subnet scans", func(ctx context.Context) {
		const size = 4
		lim := limiter.New(size)
		defer lim.StopWait()
		hostnames := []string{}
		for n := 0; n < 40; n++ {
			hostname := fmt.Sprintf("host%02d", n)
			hostnames = append(hostnames, hostname)
			dns.forward[hostname] = []string{fmt.Sprintf("10.1.%d.1", n)}
		}
		prober := newFakeProber()
		v := New(lim, dns, dns, prober)

		basegos := runtime.NumGoroutine()
		var peak atomic.Int32
		done := make(chan struct{})
		sampled := make(chan struct{})
		go func() {
			defer close(sampled)
			for {
				if n := int32(runtime.NumGoroutine()); n > peak.Load() {
					peak.Store(n)
				}
				select {
				case <-done:
					return
				case <-time.After(100 * time.Microsecond):
				}
			}
		}()
		records, err := v.Verify(ctx, hostnames)
		close(done)
		<-sampled
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(len(hostnames)))
		Expect(prober.Probes()).To(HaveLen(40 * 254))
		By("running at most size hostnames, each with at most size checks of two operations")
		Expect(int(peak.Load())).To(BeNumerically("<=", basegos+size+size*size*3+size+10))
	})

	It("tracks progress in a result set", func(ctx context.Context) {
		v := New(lim, dns, dns, newFakeProber())
		set := results.New([]string{"example.com", "ghost.invalid", "lonely"})
		Expect(v.Run(ctx, set)).To(Succeed())
		Expect(set.Hosts()).To(ConsistOf(
			And(HaveField("Hostname", "example.com"), HaveField("Stage", types.Done)),
			And(HaveField("Hostname", "ghost.invalid"), HaveField("Stage", types.Unresolved)),
			And(HaveField("Hostname", "lonely"), HaveField("Stage", types.Done),
				HaveField("Checked", 253), HaveField("Candidates", 253)),
		))
	})

	It("gives up when the context is done", func(specctx context.Context) {
		prober := newFakeProber()
		prober.delay = 20 * time.Millisecond
		v := New(lim, dns, dns, prober)
		ctx, cancel := context.WithTimeout(specctx, 100*time.Millisecond)
		defer cancel()
		set := results.New([]string{"web01", "lonely"})
		Expect(v.Run(ctx, set)).To(MatchError(context.DeadlineExceeded))
		By("not finalizing the result set")
		Expect(set.Records()).To(BeEmpty())
	})

})
