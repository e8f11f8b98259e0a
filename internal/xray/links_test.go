package xray

import (
	"reflect"
	"testing"
)

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "mixed text",
			text: "Here: vless://id@h.example.com:443?type=ws#a, and trojan://pw@h.example.com:443.\n" +
				"socks5://h.example.com:1080;\r\n",
			want: []string{
				"vless://id@h.example.com:443?type=ws#a",
				"trojan://pw@h.example.com:443",
				"socks5://h.example.com:1080",
			},
		},
		{
			name: "duplicates keep first position",
			text: "ss://YTpi@h.example.com:8388#x\nvmess://e30=\nss://YTpi@h.example.com:8388#x\n",
			want: []string{"ss://YTpi@h.example.com:8388#x", "vmess://e30="},
		},
		{
			name: "lookalike schemes",
			text: "xss://bad@h:1 123-vless://bad@h:1 https://example.com",
			want: []string{},
		},
		{
			name: "wrapped in punctuation",
			text: `("trojan://pw@h.example.com:443#t") 'vless://id@h.example.com:443'`,
			want: []string{"trojan://pw@h.example.com:443#t", "vless://id@h.example.com:443"},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLinks(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractLinks() = %q, want %q", got, tt.want)
			}
		})
	}
}
