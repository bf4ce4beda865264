package extract

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/localeforge/core/pkg/domain"
)

// generateID derives a deterministic id from a descriptor's content: one
// running SHA-1 over the defaultMessage bytes followed by the description
// bytes when present, hex encoded. Equal (defaultMessage, description) pairs
// always yield equal ids, which the duplicate-consistency check relies on.
//
// Not a security-sensitive use of SHA-1; it is a stable content fingerprint.
func generateID(desc domain.MessageDescriptor) (string, error) {
	if desc.DefaultMessage == "" {
		return "", ErrMissingDefaultMessage
	}

	h := sha1.New()
	h.Write([]byte(desc.DefaultMessage))
	if desc.Description != "" {
		h.Write([]byte(desc.Description))
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
