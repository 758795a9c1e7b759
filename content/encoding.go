package content

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// lineLength matches the 60-column wrapping GitHub applies to content.
const lineLength = 60

// Decode returns the plain bytes of f, undoing its transport encoding.
// Line breaks inside base64 payloads are ignored.
func (f *File) Decode() ([]byte, error) {
	switch strings.ToLower(f.Encoding) {
	case EncodingNone, EncodingUTF8:
		return f.Data, nil
	case EncodingBase64:
		cleaned := strings.Map(func(r rune) rune {
			switch r {
			case '\n', '\r', ' ', '\t':
				return -1
			}
			return r
		}, string(f.Data))
		data, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("decode base64 content of %s: %w", f.Path, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q for %s", f.Encoding, f.Path)
	}
}

// EncodeBase64 encodes data the way hosting APIs transmit file content:
// standard base64, wrapped with a newline every 60 characters.
func EncodeBase64(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)

	var b strings.Builder
	for len(encoded) > lineLength {
		b.WriteString(encoded[:lineLength])
		b.WriteByte('\n')
		encoded = encoded[lineLength:]
	}
	b.WriteString(encoded)
	return []byte(b.String())
}
