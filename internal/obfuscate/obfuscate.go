// Package obfuscate implements the reversible transform wrapped around CSV
// exports. It is Base64 plus a fixed character shift behind a magic marker;
// it discourages casual viewing and is not cryptographic.
package obfuscate

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	shiftKey    = 7
	magicHeader = "OOPS_ENC_V1"
)

// Marker prefixes every obfuscated payload and enables auto-detection on
// import.
const Marker = magicHeader + ":"

// Encrypt Base64-encodes the text, shifts every byte by the fixed offset and
// prepends the marker.
func Encrypt(plaintext string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(plaintext))
	return Marker + shift(encoded, shiftKey)
}

// Decrypt reverses Encrypt. Unmarked input is returned unchanged, so plain
// CSV passes through transparently. A marked but malformed payload returns an
// error; callers fall back to treating the content as plaintext.
func Decrypt(content string) (string, error) {
	if !IsEncrypted(content) {
		return content, nil
	}

	encoded := shift(strings.TrimPrefix(content, Marker), -shiftKey)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	return string(raw), nil
}

// IsEncrypted reports whether the content carries the obfuscation marker.
func IsEncrypted(content string) bool {
	return strings.HasPrefix(content, Marker)
}

func shift(s string, offset int) string {
	b := []byte(s)
	for i := range b {
		b[i] = byte(int(b[i]) + offset)
	}
	return string(b)
}
