package tagger

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "plain sentence",
			input: "hello world!",
			want:  []Span{{Plain, "hello world!"}},
		},
		{
			name:  "empty",
			input: "",
			want:  []Span{},
		},
		{
			name:  "italic",
			input: "*b*",
			want:  []Span{{Italic, "b"}},
		},
		{
			name:  "italic space",
			input: "* *",
			want:  []Span{{Italic, " "}},
		},
		{
			name:  "bold",
			input: "**BB**",
			want:  []Span{{Bold, "BB"}},
		},
		{
			name:  "math",
			input: "$x + 2$",
			want:  []Span{{Math, "x + 2"}},
		},
		{
			name:  "markers inside math are content",
			input: "$x* **$",
			want:  []Span{{Math, "x* **"}},
		},
		{
			name:  "mixed",
			input: "An *italic* and **bold**",
			want: []Span{
				{Plain, "An "},
				{Italic, "italic"},
				{Plain, " and "},
				{Bold, "bold"},
			},
		},
		{
			name:  "line break drops the character",
			input: "hello\nworld!",
			want:  []Span{{Plain, "hello"}, {LineBreak, ""}, {Plain, "world!"}},
		},
		{
			name:  "newline inside a span is content",
			input: "**a\nb**",
			want:  []Span{{Bold, "a\nb"}},
		},
		{
			name:  "unterminated italic",
			input: "*abc",
			want:  []Span{{Plain, "*abc"}},
		},
		{
			name:  "unterminated after plain",
			input: "a $b",
			want:  []Span{{Plain, "a "}, {Plain, "$b"}},
		},
		{
			name:  "unterminated swallows later markers",
			input: "**a *b* $c$",
			want:  []Span{{Plain, "**a *b* $c$"}},
		},
		{
			name:  "triple star",
			input: "***",
			want:  []Span{{Plain, "***"}},
		},
		{
			name:  "empty bold",
			input: "****",
			want:  []Span{{Bold, ""}},
		},
		{
			name:  "single star inside italic never closes on double",
			input: "*a**b*",
			want:  []Span{{Italic, "a**b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"*i* **b** $m$",
		"*abc",
		"**unterminated *nested",
		"a\n\nb",
		"***",
		"*****",
		"$$",
		"$",
		"mixed *it**al* $x\n$ end",
		"ünïcödé *ok*",
		"\xff",
		"a\xc3*b*",
		"**\xfe**",
		"$\x80\n\xc3$",
	}

	for _, in := range inputs {
		if got := Render(Parse(in)); got != in {
			t.Errorf("Render(Parse(%q)) = %q", in, got)
		}
	}
}

func TestParse_KeepsInvalidUTF8(t *testing.T) {
	got := Parse("**\xfe**")
	want := []Span{{Kind: Bold, Text: "\xfe"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %#v, want %#v", got, want)
	}
}

func TestAll_StopsEarly(t *testing.T) {
	var got []Span
	for s := range All("a *b* c") {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}
	want := []Span{{Plain, "a "}, {Italic, "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSpan_JSON(t *testing.T) {
	data, err := json.Marshal(Span{Kind: Bold, Text: "x"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"kind":"bold","text":"x"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}
