package collectors

import (
	"encoding/base64"
	"reflect"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"https://example.com/sub", "http"},
		{"HTTP://example.com/sub", "http"},
		{"subs.txt", "file"},
		{"-", "file"},
		{"", "file"},
		{"./http-links.txt", "file"},
	}

	for _, tt := range tests {
		if got := KindOf(tt.target); got != tt.want {
			t.Errorf("KindOf(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestExtractFromBody(t *testing.T) {
	plain := "trojan://pw@a.example.com:443#a\nvless://id@b.example.com:443#b\n"
	want := []string{"trojan://pw@a.example.com:443#a", "vless://id@b.example.com:443#b"}

	encoded := base64.StdEncoding.EncodeToString([]byte(plain))
	wrapped := encoded[:10] + "\n" + encoded[10:] + "\n"

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"plain", plain, want},
		{"base64", encoded, want},
		{"base64 wrapped", wrapped, want},
		{"url safe base64", base64.RawURLEncoding.EncodeToString([]byte(plain)), want},
		{"nothing useful", "hello", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFromBody([]byte(tt.body))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFromBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("carrier-pigeon"); err == nil {
		t.Error("expected an error for an unregistered collector")
	}
}
