// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types_test

import (
	"github.com/siemens/hostverify/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("types", func() {

	DescribeTable("status names",
		func(s types.Status, expected string) {
			Expect(s.String()).To(Equal(expected))
		},
		Entry(nil, types.Unknown, "unknown"),
		Entry(nil, types.Offline, "offline"),
		Entry(nil, types.Online, "online"),
		Entry(nil, types.Status(42), "Status(42)"),
	)

	DescribeTable("terminal stages",
		func(s types.Stage, terminal bool) {
			Expect(s.IsTerminal()).To(Equal(terminal), s.String())
		},
		Entry(nil, types.Pending, false),
		Entry(nil, types.Resolving, false),
		Entry(nil, types.Checking, false),
		Entry(nil, types.Scanning, false),
		Entry(nil, types.Unresolved, true),
		Entry(nil, types.Done, true),
	)

	It("turns verdicts into records", func() {
		v := types.Verdict{Address: "10.0.0.1", Status: types.Online, Name: "foo.example.org"}
		Expect(v.RecordFor("foo", true)).To(Equal(types.Record{
			Hostname: "foo", Address: "10.0.0.1", Status: types.Online, InSubnet: true,
		}))
		Expect(v.RecordFor("foo", true).Located()).To(BeTrue())
	})

	It("creates placeholders", func() {
		r := types.Placeholder("bar")
		Expect(r.Located()).To(BeFalse())
		Expect(r.Status).To(Equal(types.Unknown))
		Expect(r.InSubnet).To(BeFalse())
	})

})
