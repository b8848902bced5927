// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package hostlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing/iotest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("hostname lists", func() {

	DescribeTable("reading hostnames",
		func(text string, expected []string) {
			Expect(Read(strings.NewReader(text))).To(Equal(expected))
		},
		Entry("empty", "", []string{}),
		Entry("single without newline", "alpha", []string{"alpha"}),
		Entry("trims whitespace", "  alpha\t\nbeta  \n", []string{"alpha", "beta"}),
		Entry("keeps blank lines", "alpha\n\n   \nbeta\n", []string{"alpha", "", "", "beta"}),
		Entry("CRLF line endings", "alpha\r\nbeta\r\n", []string{"alpha", "beta"}),
		Entry("byte order mark", "\ufeffalpha\nbeta", []string{"alpha", "beta"}),
	)

	It("reports read errors", func() {
		Expect(Read(iotest.ErrReader(errors.New("D'OH!")))).Error().To(
			MatchError(ContainSubstring("D'OH!")))
	})

	It("reads a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "hosts.txt")
		Expect(os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644)).To(Succeed())
		Expect(Successful(ReadFile(path))).To(ConsistOf("alpha", "beta"))
	})

	It("reports a missing file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "nada.txt")
		_, err := ReadFile(path)
		Expect(err).To(MatchError(ErrNotFound))
		Expect(err.Error()).To(ContainSubstring(path))
	})

	It("reports other open errors", func() {
		_, err := ReadFile(GinkgoT().TempDir())
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(ErrNotFound))
	})

})
