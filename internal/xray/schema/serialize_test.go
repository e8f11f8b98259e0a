package schema

import "testing"

func strPtr(s string) *string { return &s }

func TestMarshalStreamSettings(t *testing.T) {
	tests := []struct {
		name string
		in   StreamSettings
		want string
	}{
		{
			name: "empty",
			in:   StreamSettings{},
			want: `{}`,
		},
		{
			name: "empty strings are kept",
			in:   StreamSettings{Network: strPtr(""), Security: strPtr("")},
			want: `{"network":"","security":""}`,
		},
		{
			name: "transport and security",
			in: StreamSettings{
				Network:           strPtr("grpc"),
				Security:          strPtr("reality"),
				TransportSettings: &GRPCSettings{ServiceName: strPtr("svc")},
				SecuritySettings:  &RealitySettings{PublicKey: strPtr("pk")},
			},
			want: `{"grpcSettings":{"multiMode":false,"serviceName":"svc"},"network":"grpc","realitySettings":{"publicKey":"pk","spiderX":""},"security":"reality"}`,
		},
		{
			name: "html characters",
			in: StreamSettings{
				TransportSettings: &WSSettings{Path: strPtr("/a?b=1&c=<d>")},
			},
			want: `{"wsSettings":{"path":"/a?b=1&c=<d>"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMarshalMetadataNullHost(t *testing.T) {
	got, err := Marshal(&Metadata{Name: "n", Address: "a", Port: 1, Protocol: "socks"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"n","host":null,"address":"a","port":1,"protocol":"socks"}`
	if got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
