package ssr

import "testing"

func TestDigestDeterministic(t *testing.T) {
	statics := []string{"<div>", "</div>"}
	d1 := Digest(statics)
	d2 := Digest(statics)
	if d1 != d2 {
		t.Fatalf("Digest is not deterministic: %q != %q", d1, d2)
	}
}

func TestDigestDependsOnlyOnStatics(t *testing.T) {
	a := Digest([]string{"<p>", "</p>"})
	b := Digest([]string{"<p>", "</p>"})
	if a != b {
		t.Fatalf("identical statics produced different digests: %q vs %q", a, b)
	}
}

func TestDigestDistinguishesDifferentStatics(t *testing.T) {
	a := Digest([]string{"<p>", "</p>"})
	b := Digest([]string{"<span>", "</span>"})
	if a == b {
		t.Fatalf("different statics produced the same digest: %q", a)
	}
}

func TestDigestSensitiveToHolePosition(t *testing.T) {
	// "a","bc" vs "ab","c" concatenate to the same text but split the
	// hole at a different point; resetting parity per fragment must keep
	// these distinct.
	a := Digest([]string{"a", "bc"})
	b := Digest([]string{"ab", "c"})
	if a == b {
		t.Fatalf("digest ignored hole position: both produced %q", a)
	}
}

func TestDigestHandlesNonBMPRunes(t *testing.T) {
	// Must not panic, and must still be deterministic, for a rune outside
	// the BMP (surrogate-pair territory in UTF-16 terms).
	statics := []string{"hello \U0001F600 world"}
	d1 := Digest(statics)
	d2 := Digest(statics)
	if d1 != d2 {
		t.Fatalf("non-BMP digest not deterministic: %q != %q", d1, d2)
	}
	if d1 == "" {
		t.Fatalf("digest was empty")
	}
}

func TestDigestForMemoizesPerHandle(t *testing.T) {
	h := NewHandle()
	statics := []string{"<div>", "</div>"}
	a := digestFor(h, statics)
	// A second call with different statics must still return the digest
	// memoized for h on the first call.
	b := digestFor(h, []string{"<p>", "</p>"})
	if a != b {
		t.Fatalf("digestFor not memoized per handle: %q then %q", a, b)
	}
}
