package draft

import "strings"

// KeyPrefix namespaces draft slots. One slot exists per case type.
const KeyPrefix = "focusCaseXDraft_"

// Key returns the slot key for caseType.
func Key(caseType string) string {
	return KeyPrefix + strings.TrimSpace(caseType)
}
