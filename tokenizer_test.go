package codeconsole

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want *commandLine
	}{
		{"ping", &commandLine{Name: "ping"}},
		{"  ping \t", &commandLine{Name: "ping"}},
		{`cl -ln "Test Lobby" -mp 6`, &commandLine{Name: "cl", Pairs: []argumentPair{
			{Tag: "-ln", Value: "Test Lobby"},
			{Tag: "-mp", Value: "6"},
		}}},
		{`say -m "  padded  "`, &commandLine{Name: "say", Pairs: []argumentPair{
			{Tag: "-m", Value: "  padded  "},
		}}},
		{`say -m ""`, &commandLine{Name: "say", Pairs: []argumentPair{
			{Tag: "-m", Value: ""},
		}}},
		{"move -dx -5 -dy 2", &commandLine{Name: "move", Pairs: []argumentPair{
			{Tag: "-dx", Value: "-5"},
			{Tag: "-dy", Value: "2"},
		}}},
		{`path -p C:\games\"x"`, &commandLine{Name: "path", Pairs: []argumentPair{
			{Tag: "-p", Value: `C:\games\"x"`},
		}}},
		{"größe -wert 1", &commandLine{Name: "größe", Pairs: []argumentPair{
			{Tag: "-wert", Value: "1"},
		}}},
		{"snake_case2 -a_b x", &commandLine{Name: "snake_case2", Pairs: []argumentPair{
			{Tag: "-a_b", Value: "x"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := tokenize(tt.line)
			if err != nil {
				t.Fatalf("tokenize(%q) failed: %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestTokenize_UnquotedValuesHaveNoWhitespace(t *testing.T) {
	got, err := tokenize("cl -ln Test Lobby")
	if err == nil {
		t.Fatalf("expected a trailing positional word to be rejected, got %+v", got)
	}
}

func TestTokenize_Malformed(t *testing.T) {
	tests := []struct {
		line   string
		offset int
	}{
		{"", 0},
		{"  !cl", 2},
		{"cl!", 2},
		{"cl word", 3},
		{"cl -ln", 6},
		{`cl -ln "open`, 7},
		{`cl -ln "a"b`, 10},
		{"cl -ln x -", 9},
		{`cl -ln"x"`, 6},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := tokenize(tt.line)

			var malformed *MalformedCommandError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *MalformedCommandError, got %v", err)
			}
			if malformed.Offset != tt.offset {
				t.Errorf("offset = %d, want %d (%s)", malformed.Offset, tt.offset, malformed.Reason)
			}
		})
	}
}
