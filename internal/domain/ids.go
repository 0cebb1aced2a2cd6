package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Id prefixes per table.
const (
	PrefixCustomer         = "C"
	PrefixPartner          = "P"
	PrefixPartnerGroup     = "PG"
	PrefixPartnerGroupLink = "PGL"
	PrefixUnit             = "U"
	PrefixUnitPartner      = "UP"
	PrefixContract         = "CT"
	PrefixInstallment      = "I"
	PrefixSafe             = "S"
	PrefixVoucher          = "V"
	PrefixBroker           = "B"
	PrefixBrokerDue        = "BD"
	PrefixPartnerDebt      = "PD"
	PrefixTransfer         = "T"
	PrefixAuditLog         = "LOG"
)

// NewID returns an opaque id such as "U-3f9a0c21b7d4".
func NewID(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func ensureID(id *string, prefix string) {
	if *id == "" {
		*id = NewID(prefix)
	}
}
