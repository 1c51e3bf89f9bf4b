package errors

import (
	"strings"
	"testing"
)

func TestValidateSystemID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "SYS-0A1B2C3D", false},
		{"valid all digits", "SYS-01234567", false},

		{"empty", "", true},
		{"lowercase hex", "SYS-0a1b2c3d", true},
		{"wrong prefix", "RAIL-0A1B2C3D", true},
		{"too short", "SYS-0A1B", true},
		{"too long suffix", "SYS-0A1B2C3D4E", true},
		{"control char", "SYS-0A1B\x012C", true},
		{"oversized", "SYS-" + strings.Repeat("A", 70), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSystemID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSystemID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRailID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "RAIL-DEADBEEF", false},

		{"empty", "", true},
		{"system prefix", "SYS-DEADBEEF", true},
		{"no prefix", "DEADBEEF", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRailID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRailID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSnapshotPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "galaxy.json", false},
		{"valid nested", "out/settings/galaxy.json", false},
		{"valid absolute", "/tmp/galaxy.json", false},

		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGalaxyName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Perseus Reach", false},
		{"valid unicode", "Großer Arm", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"control char", "bad\x01name", true},
		{"too long", strings.Repeat("x", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGalaxyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGalaxyName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
