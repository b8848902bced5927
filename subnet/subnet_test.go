// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package subnet

import (
	"net/netip"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("subnets", func() {

	It("derives the /24 of an address", func() {
		Expect(Of(netip.MustParseAddr("10.1.2.3"))).To(Equal(netip.MustParsePrefix("10.1.2.0/24")))
		Expect(Of(netip.MustParseAddr("10.1.2.255"))).To(Equal(netip.MustParsePrefix("10.1.2.0/24")))
	})

	It("enumerates the usable hosts of a /24", func() {
		hosts := Hosts(netip.MustParsePrefix("192.168.7.0/24"))
		Expect(hosts).To(HaveLen(254))
		Expect(hosts[0]).To(Equal(netip.MustParseAddr("192.168.7.1")))
		Expect(hosts[253]).To(Equal(netip.MustParseAddr("192.168.7.254")))
		Expect(hosts).NotTo(ContainElements(
			netip.MustParseAddr("192.168.7.0"),
			netip.MustParseAddr("192.168.7.255")))
	})

	DescribeTable("enumerates small prefixes",
		func(prefix string, expected []string) {
			var hosts []string
			for _, addr := range Hosts(netip.MustParsePrefix(prefix)) {
				hosts = append(hosts, addr.String())
			}
			Expect(hosts).To(Equal(expected))
		},
		Entry("/30", "10.0.0.4/30", []string{"10.0.0.5", "10.0.0.6"}),
		Entry("unmasked /30", "10.0.0.6/30", []string{"10.0.0.5", "10.0.0.6"}),
		Entry("/31 point-to-point", "10.0.0.8/31", []string{"10.0.0.8", "10.0.0.9"}),
		Entry("/32 host", "10.0.0.10/32", []string{"10.0.0.10"}),
		Entry("IPv6", "2001:db8::/126", nil),
	)

	DescribeTable("matches reverse names against hostnames",
		func(name, hostname string, expected bool) {
			Expect(NameMatches(name, hostname)).To(Equal(expected))
		},
		Entry("identical", "example.com", "example.com", true),
		Entry("FQDN of short name", "web01.corp.example.com", "web01", true),
		Entry("ignoring case", "WEB01.corp.example.com", "Web01", true),
		Entry("longer host label", "web012.corp", "web01", true),
		Entry("different name", "mail.example.com", "web01", false),
		Entry("hostname longer than name", "web", "web01", false),
		Entry("no name", "", "web01", false),
		Entry("no hostname", "web01", "", false),
	)

})
