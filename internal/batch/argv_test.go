package batch

import (
	"reflect"
	"testing"
)

func TestTokenizeGNU(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", `-Xcc -I/usr/include`, []string{"-Xcc", "-I/usr/include"}},
		{"single-quoted", `'-DFOO=bar baz'`, []string{"-DFOO=bar baz"}},
		{"double-quoted-escape", `"say \"hi\""`, []string{`say "hi"`}},
		{"backslash-escape", `foo\ bar`, []string{"foo bar"}},
		{"empty", "", nil},
		{"whitespace-only", "   ", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := TokenizeGNU(c.in)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("TokenizeGNU(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestExtractDashXcc(t *testing.T) {
	tokens := TokenizeGNU(`-module-name Foo -Xcc -I/usr/include -Xcc -DFOO=1 -target x86_64`)
	got := extractDashXcc(tokens)
	want := []string{"-I/usr/include", "-DFOO=1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractDashXcc() = %v, want %v", got, want)
	}
}

func TestExtractDashXccTrailingFlagIgnored(t *testing.T) {
	got := extractDashXcc([]string{"-Xcc"})
	if len(got) != 0 {
		t.Errorf("extractDashXcc() = %v, want empty for a trailing -Xcc with no value", got)
	}
}
