package genfile

import (
	"golang.org/x/text/encoding/charmap"
)

// ensureLatin1 verifies every generated line is representable in ISO-8859-1.
// SARS decodes the file as Latin-1 and rejects anything else, so the check
// runs before the content leaves the assembler.
func ensureLatin1(lines []string) error {
	enc := charmap.ISO8859_1.NewEncoder()
	for i, line := range lines {
		if _, err := enc.String(line); err != nil {
			encErr := &EncodingError{Line: i + 1}
			for _, r := range line {
				if r > 0xFF {
					encErr.Rune = r
					break
				}
			}
			return encErr
		}
	}
	return nil
}

// EncodeLatin1 converts validated file content to the ISO-8859-1 bytes that
// go on the wire.
func EncodeLatin1(content string) ([]byte, error) {
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(content))
}
