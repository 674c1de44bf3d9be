package util

import "testing"

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{name: "empty", input: "", expected: 0},
		{name: "plain integer", input: "1000", expected: 1000},
		{name: "plain fraction", input: "2.5", expected: 2.5},
		{name: "thousands", input: "10k", expected: 10000},
		{name: "thousands uppercase", input: "10K", expected: 10000},
		{name: "millions", input: "2.5M", expected: 2500000},
		{name: "billions", input: "1G", expected: 1e9},
		{name: "surrounding spaces", input: "  5k ", expected: 5000},
		{name: "unknown suffix", input: "5x", wantErr: true},
		{name: "not a number", input: "many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseQuantity(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuantity(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseQuantity(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	if got, err := ParseCount("10M"); err != nil || got != 10000000 {
		t.Errorf("ParseCount(10M) = %d, %v", got, err)
	}
	if _, err := ParseCount("1.5"); err == nil {
		t.Error("expected error for fractional count")
	}
	if _, err := ParseCount("-3"); err == nil {
		t.Error("expected error for negative count")
	}
}
