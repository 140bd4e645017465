// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		salt  string
	}{
		{"standard", AdminScope, "secret-salt"},
		{"empty scope", "", "salt"},
		{"empty salt", AdminScope, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key1 := GenerateAdminKey(tt.scope, tt.salt)
			key2 := GenerateAdminKey(tt.scope, tt.salt)

			if key1 != key2 {
				t.Errorf("GenerateAdminKey() not deterministic: %s != %s", key1, key2)
			}
			if strings.Contains(key1, "=") {
				t.Errorf("GenerateAdminKey() contains padding: %s", key1)
			}
			if strings.ContainsAny(key1, "+/") {
				t.Errorf("GenerateAdminKey() is not URL-safe: %s", key1)
			}
		})
	}

	if GenerateAdminKey(AdminScope, "salt-a") == GenerateAdminKey(AdminScope, "salt-b") {
		t.Error("different salts should produce different keys")
	}
}

func TestValidateAdminKey(t *testing.T) {
	salt := "test-salt"
	valid := GenerateAdminKey(AdminScope, salt)

	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", valid, false},
		{"empty key", "", true},
		{"wrong key", "not-the-key", true},
		{"key for other scope", GenerateAdminKey("other", salt), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(AdminScope, tt.key, salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want ErrInvalidAdminKey", err)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("203.0.113.7", "salt")
	h2 := HashIP("203.0.113.7", "salt")
	h3 := HashIP("203.0.113.8", "salt")
	h4 := HashIP("203.0.113.7", "other-salt")

	if h1 != h2 {
		t.Error("HashIP() should be deterministic")
	}
	if h1 == h3 {
		t.Error("different IPs should hash differently")
	}
	if h1 == h4 {
		t.Error("different salts should hash differently")
	}
	if len(h1) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(h1))
	}
	if strings.Contains(h1, "203.0.113.7") {
		t.Error("HashIP() leaks the address")
	}
}
