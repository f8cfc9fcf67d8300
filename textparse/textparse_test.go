package textparse

import "testing"

const terseUp = "Interface               Admin Link Proto    Local                 Remote\n" +
	"et-0/0/12               up    up"

const terseDown = "Interface               Admin Link Proto    Local                 Remote\n" +
	"et-0/0/12               up    down"

func TestField(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		line   int
		field  int
		want   string
		wantOK bool
	}{
		{
			name:   "terse link column up",
			text:   terseUp,
			line:   2,
			field:  3,
			want:   "up",
			wantOK: true,
		},
		{
			name:   "terse link column down",
			text:   terseDown,
			line:   2,
			field:  3,
			want:   "down",
			wantOK: true,
		},
		{
			name:  "empty text",
			text:  "",
			line:  2,
			field: 3,
		},
		{
			name:  "single line output",
			text:  "error: device et-0/0/12 not found",
			line:  2,
			field: 3,
		},
		{
			name:  "second line too short",
			text:  "Interface Admin Link\net-0/0/12",
			line:  2,
			field: 3,
		},
		{
			name:   "crlf line endings",
			text:   "Interface Admin Link\r\net-0/0/12 up up\r\n",
			line:   2,
			field:  3,
			want:   "up",
			wantOK: true,
		},
		{
			name:   "runs of whitespace collapse",
			text:   "a\tb\n  x \t y\t\tz  ",
			line:   2,
			field:  3,
			want:   "z",
			wantOK: true,
		},
		{
			name:  "zero line index",
			text:  terseUp,
			line:  0,
			field: 3,
		},
		{
			name:  "zero field index",
			text:  terseUp,
			line:  2,
			field: 0,
		},
		{
			name:   "first line first field",
			text:   terseUp,
			line:   1,
			field:  1,
			want:   "Interface",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Field(tt.text, tt.line, tt.field)
			if ok != tt.wantOK {
				t.Fatalf("Field() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Field() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "no ANSI codes",
			input: "et-0/0/12 up up",
			want:  "et-0/0/12 up up",
		},
		{
			name:  "colored text",
			input: "\x1b[31mdown\x1b[0m",
			want:  "down",
		},
		{
			name:  "cursor movement",
			input: "\x1b[2J\x1b[Het-0/0/12",
			want:  "et-0/0/12",
		},
		{
			name:  "CLI prompt erase sequence",
			input: "\x1b[0muser@mx480>\x1b[K show interfaces terse",
			want:  "user@mx480> show interfaces terse",
		},
		{
			name:  "mixed with newlines",
			input: "\x1b[32mline1\x1b[0m\nline2",
			want:  "line1\nline2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI() = %q, want %q", got, tt.want)
			}
		})
	}
}
