package util

import "testing"

func TestDigestStableAndConcatenated(t *testing.T) {
	got := Digest("v1", "x")
	if len(got) != DigestLen || !IsDigest(got) {
		t.Fatalf("Digest returned %q, want %d lowercase hex chars", got, DigestLen)
	}
	if got != Digest("v1", "x") {
		t.Fatalf("digest must be deterministic")
	}
	if got != Digest("v", "1x") {
		t.Fatalf("digest must hash the plain concatenation of salt and key")
	}
	if got == Digest("v2", "x") {
		t.Fatalf("salt must change the digest")
	}
}

func TestDigestEmpty(t *testing.T) {
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Digest("", ""); got != empty {
		t.Fatalf("Digest(\"\", \"\") = %s, want %s", got, empty)
	}
}

func TestDigestUTF8(t *testing.T) {
	// sha256 of the UTF-8 bytes of "v1héllo", as any other runtime computes it.
	const want = "1b7c9419e6f6517568bf399d2427539ad6fc22b16e17dbcc6b3b8259358a1269"
	if got := Digest("v1", "héllo"); got != want {
		t.Fatalf("Digest = %s, want %s", got, want)
	}
	if Digest("v1", "héllo") == Digest("v1", "hello") {
		t.Fatalf("non-ascii keys must not collapse")
	}
}

func TestSplitEntryName(t *testing.T) {
	d := Digest("v1", "k")
	cases := []struct {
		name   string
		ok     bool
		digest string
		rest   string
	}{
		{d + ".msgpack", true, d, "msgpack"},
		{d + ".1234-abcd.unfinished", true, d, "1234-abcd.unfinished"},
		{d, false, "", ""},
		{"notadigest.msgpack", false, "", ""},
		{d[:10] + ".msgpack", false, "", ""},
	}
	for _, tc := range cases {
		digest, rest, ok := SplitEntryName(tc.name)
		if ok != tc.ok || digest != tc.digest || rest != tc.rest {
			t.Fatalf("SplitEntryName(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.name, digest, rest, ok, tc.digest, tc.rest, tc.ok)
		}
	}
}
