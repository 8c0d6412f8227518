package lemma

import "testing"

func TestIdentityClassRoundTrips(t *testing.T) {
	c := minimalSuffixEdit("dog", "dog")
	if c != identityClass {
		t.Fatalf("got %+v, want the identity class", c)
	}
	if applyClass("Dog", c) != "dog" {
		t.Fatalf("applying the identity class should yield the lowercased word")
	}
}

func TestMinimalSuffixEditStripsCommonPrefix(t *testing.T) {
	c := minimalSuffixEdit("walking", "walk")
	want := Class{WFSuffix: "ing", LemmaSuffix: ""}
	if c != want {
		t.Fatalf("got %+v, want %+v", c, want)
	}
	if got := applyClass("walking", c); got != "walk" {
		t.Fatalf("applyClass(walking) = %q, want walk", got)
	}
}

func TestClassRegistryInternsIdentityAtZero(t *testing.T) {
	r := newClassRegistry()
	id, ok := r.lookup(identityClass)
	if !ok || id != 0 {
		t.Fatalf("identity class should be pre-interned at id 0, got (%d, %v)", id, ok)
	}
}

func TestHasRuneSuffix(t *testing.T) {
	c := Class{WFSuffix: "ing", LemmaSuffix: ""}
	if !hasRuneSuffix("walking", c) {
		t.Fatal("walking should match the -ing suffix class")
	}
	if hasRuneSuffix("cat", c) {
		t.Fatal("cat should not match the -ing suffix class")
	}
}
