// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	busyStyle   = termenv.Style{}.Foreground(termenv.ANSIYellow)
	foundStyle  = termenv.Style{}.Foreground(termenv.ANSIGreen)
	failedStyle = termenv.Style{}.Foreground(termenv.ANSIRed)
)

var hostnameStyle = termenv.Style{}.Bold()
