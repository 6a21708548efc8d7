package utils

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"prose before and after", `Sure! Here you go: {"a": 1} Hope that helps.`, `{"a": 1}`},
		{"markdown fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"nested objects", `{"a": {"b": {"c": 3}}}`, `{"a": {"b": {"c": 3}}}`},
		{"braces inside strings", `{"text": "use {curly} braces"}`, `{"text": "use {curly} braces"}`},
		{"escaped quote in string", `{"text": "she said \"hi}\""}`, `{"text": "she said \"hi}\""}`},
		{"first of two objects", `{"a": 1} {"b": 2}`, `{"a": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tc.in)
			if err != nil {
				t.Fatalf("ExtractJSONObject: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			if !json.Valid([]byte(got)) {
				t.Fatalf("extracted text is not valid JSON: %q", got)
			}
		})
	}
}

func TestExtractJSONObjectNone(t *testing.T) {
	for _, in := range []string{"", "no braces here", `{"unterminated": 1`} {
		if _, err := ExtractJSONObject(in); !errors.Is(err, ErrNoJSONObject) {
			t.Errorf("ExtractJSONObject(%q) err = %v, want ErrNoJSONObject", in, err)
		}
	}
}
