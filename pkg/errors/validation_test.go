package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "alice", false},
		{"valid numeric", "42", false},
		{"valid with spaces", "Ada Lovelace", false},
		{"valid unicode", "zoë", false},
		{"valid path-like", "team/alice", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", MaxNodeIDLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGraph) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidGraph)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		input   float64
		wantErr bool
	}{
		{0, false},
		{0.1, false},
		{100, false},
		{-0.5, true},
		{math.NaN(), true},
		{math.Inf(1), true},
		{math.Inf(-1), true},
	}

	for _, tt := range tests {
		err := ValidateWeight(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWeight(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/graph.layout.json", false},
		{"absolute", "/tmp/graph.svg", false},
		{"empty", "", true},
		{"null byte", "graph\x00.svg", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
