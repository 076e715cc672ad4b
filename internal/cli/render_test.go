package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"png"}},
		{"txt", []string{"txt"}},
		{"png,dot,svg", []string{"png", "dot", "svg"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"png", "txt", "dot", "svg"}); err != nil {
		t.Errorf("validateFormats() error: %v", err)
	}
	if err := validateFormats([]string{"png", "gif"}); err == nil {
		t.Error("validateFormats() expected error for gif")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		format string
		multi  bool
		want   string
	}{
		{"default next to input", "tiles.txt", "", "png", false, "tiles.png"},
		{"explicit single", "tiles.txt", "out.png", "png", false, "out.png"},
		{"multi appends extension", "tiles.txt", "out.png", "dot", true, "out.dot"},
		{"default multi", "puzzle/tiles.txt", "", "svg", true, "puzzle/tiles.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.input, tt.output, tt.format, tt.multi); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
