package plugin

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"0.1.0", Version{0, 1, 0}, false},
		{"1.2.3", Version{1, 2, 3}, false},
		{"10.20.30", Version{10, 20, 30}, false},
		{"1.2", Version{}, true},
		{"1.2.3.4", Version{}, true},
		{"a.b.c", Version{}, true},
		{"1.-1.0", Version{}, true},
		{"", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{"current", ProtocolVersion, true},
		{"newer patch", "0.1.7", true},
		{"newer minor", "0.4.0", true},
		{"older than minimum", "0.0.9", false},
		{"different major", "1.1.0", false},
		{"malformed", "latest", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsCompatible(tt.version)
			if got != tt.want {
				t.Errorf("IsCompatible(%q) = %v, want %v (err: %v)", tt.version, got, tt.want, err)
			}
			if !got && err == nil {
				t.Errorf("IsCompatible(%q) returned false without an error", tt.version)
			}
		})
	}
}

func TestHandshakeUsesMajorVersion(t *testing.T) {
	if Handshake.ProtocolVersion != uint(CurrentVersion().Major) {
		t.Errorf("Handshake.ProtocolVersion = %d, want %d", Handshake.ProtocolVersion, CurrentVersion().Major)
	}
	if Handshake.MagicCookieKey != "SHADECRAFT_PLUGIN" {
		t.Errorf("Handshake.MagicCookieKey = %q", Handshake.MagicCookieKey)
	}
}
