package vault

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Payloads are persisted as self-describing binary-safe strings:
// image and pdf payloads carry a data-URI style header, note payloads
// are plain text (and empty, per the note invariant).

const (
	headerImage = "data:image/jpeg;base64,"
	headerPDF   = "data:application/pdf;base64,"
)

// EncodePayload serializes a payload for storage.
func EncodePayload(mime MimeType, payload []byte) string {
	switch mime {
	case MimeImage:
		return headerImage + base64.StdEncoding.EncodeToString(payload)
	case MimePDF:
		return headerPDF + base64.StdEncoding.EncodeToString(payload)
	default:
		return string(payload)
	}
}

// DecodePayload parses a stored payload string. Header-tagged values
// are base64-decoded; anything else is returned as raw text bytes.
// An empty string decodes to nil.
func DecodePayload(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "data:") {
		i := strings.IndexByte(s, ',')
		if i < 0 {
			return nil, fmt.Errorf("decode payload: malformed data header")
		}
		raw, err := base64.StdEncoding.DecodeString(s[i+1:])
		if err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		return raw, nil
	}
	return []byte(s), nil
}
