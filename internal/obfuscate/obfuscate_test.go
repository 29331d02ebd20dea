package obfuscate

import (
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"CSV Fragment", "a,b,c\n1,2,3"},
		{"Empty", ""},
		{"Unicode", "Seat №42 — résultats"},
		{"Multiline Export", "SeatNumber,Name\nOOP001,Rahul Sharma\nOOP002,Ananya Patel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := Encrypt(tt.text)
			if !strings.HasPrefix(enc, Marker) {
				t.Fatalf("Encrypt output %q is missing the marker", enc)
			}

			dec, err := Decrypt(enc)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if dec != tt.text {
				t.Errorf("round trip produced %q, expected %q", dec, tt.text)
			}
		})
	}
}

func TestEncryptObscuresPayload(t *testing.T) {
	plain := "OOP001,Rahul Sharma,83"
	enc := Encrypt(plain)

	if strings.Contains(enc, "Rahul") {
		t.Error("obfuscated output leaks the plaintext")
	}
}

func TestDecryptPlaintextPassthrough(t *testing.T) {
	plain := "SeatNumber,Name\nOOP001,Rahul Sharma"

	dec, err := Decrypt(plain)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if dec != plain {
		t.Errorf("unmarked content changed: %q", dec)
	}
}

func TestDecryptMalformedPayload(t *testing.T) {
	// Shifting "!!!" down by the key yields bytes that are not valid Base64.
	if _, err := Decrypt(Marker + "!!!"); err == nil {
		t.Error("expected an error for a marked but malformed payload")
	}
}

func TestIsEncrypted(t *testing.T) {
	if IsEncrypted("a,b,c") {
		t.Error("plain CSV reported as encrypted")
	}
	if !IsEncrypted(Encrypt("a,b,c")) {
		t.Error("obfuscated output not recognized")
	}
	if IsEncrypted("OOPS_ENC_V2:xyz") {
		t.Error("a different marker version must not match")
	}
}
