package shell

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
	}{
		{
			name:    "plain compile command",
			command: "gcc -I/foo -DX=1 file.c",
			want:    []string{"gcc", "-I/foo", "-DX=1", "file.c"},
		},
		{
			name:    "empty input",
			command: "",
			want:    []string{},
		},
		{
			name:    "only whitespace",
			command: "   \t  ",
			want:    []string{},
		},
		{
			name:    "collapsed whitespace",
			command: "cc   -c\t\tmain.c",
			want:    []string{"cc", "-c", "main.c"},
		},
		{
			name:    "single quotes are literal",
			command: `cc -DMSG='hello world' a.c`,
			want:    []string{"cc", "-DMSG=hello world", "a.c"},
		},
		{
			name:    "double quotes",
			command: `cc -DMSG="hello world" a.c`,
			want:    []string{"cc", "-DMSG=hello world", "a.c"},
		},
		{
			name:    "escaped quote inside double quotes",
			command: `cc -DSTR="say \"hi\"" a.c`,
			want:    []string{"cc", `-DSTR=say "hi"`, "a.c"},
		},
		{
			name:    "backslash inside double quotes",
			command: `cc -DSEP="a\\b" a.c`,
			want:    []string{"cc", `-DSEP=a\b`, "a.c"},
		},
		{
			name:    "backslash escapes space outside quotes",
			command: `cc -I/path/with\ space a.c`,
			want:    []string{"cc", "-I/path/with space", "a.c"},
		},
		{
			name:    "empty quoted token survives",
			command: `cc -DV='' a.c`,
			want:    []string{"cc", "-DV=", "a.c"},
		},
		{
			name:    "adjacent quoted pieces join",
			command: `cc -D'A'"B" a.c`,
			want:    []string{"cc", "-DAB", "a.c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.command)
			if err != nil {
				t.Fatalf("Split(%q) failed: %v", tt.command, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestSplitMalformed(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"unterminated single quote", `cc 'oops a.c`},
		{"unterminated double quote", `cc "oops a.c`},
		{"trailing backslash", `cc a.c \`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.command)
			if err == nil {
				t.Fatalf("Split(%q) should have failed", tt.command)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("Expected *ParseError, got %T", err)
			}
		})
	}
}
