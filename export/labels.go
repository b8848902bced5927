// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package export

import "github.com/siemens/hostverify/types"

// Column headers.
var Header = []string{"Hostname", "IP Resolvido", "Status", "Verificado na Subrede"}

// Cell labels.
const (
	NotLocated = "IP não Localizado"
	Yes        = "Sim"
	No         = "Não"
)

// StatusLabel returns the label for the specified status.
func StatusLabel(status types.Status) string {
	switch status {
	case types.Online:
		return "Online"
	case types.Offline:
		return "Offline"
	default:
		return "Desconhecido"
	}
}

// Row returns the cells of a record.
func Row(r types.Record) []string {
	addr := r.Address
	if !r.Located() {
		addr = NotLocated
	}
	insubnet := No
	if r.InSubnet {
		insubnet = Yes
	}
	return []string{r.Hostname, addr, StatusLabel(r.Status), insubnet}
}
