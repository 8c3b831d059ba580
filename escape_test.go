package ssr

import "testing"

func TestEscapeRoundtrip(t *testing.T) {
	clean := []string{"hello world", "no special chars here 123", ""}
	for _, s := range clean {
		if got := Escape(s); got != s {
			t.Errorf("Escape(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestEscapeSpecialChars(t *testing.T) {
	cases := map[string]string{
		"<script>": "&lt;script&gt;",
		"a & b":    "a &amp; b",
		"<&>":      "&lt;&amp;&gt;",
	}
	for in, want := range cases {
		if got := Escape(in); got != want {
			t.Errorf("Escape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeAttrQuotes(t *testing.T) {
	got := escapeAttr(`say "hi"`)
	want := `say &quot;hi&quot;`
	if got != want {
		t.Errorf("escapeAttr = %q, want %q", got, want)
	}
}

func TestEscapeApostropheAndDoubleQuoteInText(t *testing.T) {
	if got, want := Escape(`O'Reilly`), "O&#39;Reilly"; got != want {
		t.Errorf("Escape(%q) = %q, want %q", `O'Reilly`, got, want)
	}
	if got, want := Escape(`a"b`), "a&quot;b"; got != want {
		t.Errorf("Escape(%q) = %q, want %q", `a"b`, got, want)
	}
}

func TestEscapeAttrApostrophe(t *testing.T) {
	got := escapeAttr("it's here")
	want := "it&#39;s here"
	if got != want {
		t.Errorf("escapeAttr = %q, want %q", got, want)
	}
}
