package repository

import "testing"

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"printer": "printer",
		"100%":    `100\%`,
		"a_b":     `a\_b`,
		`C:\temp`: `C:\\temp`,
		`%_\`:     `\%\_\\`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidID(t *testing.T) {
	t.Parallel()

	if !validID("6f1c2b8e-2a4b-4d8e-9c3e-1f2a3b4c5d6e") {
		t.Fatal("validID(uuid) = false")
	}
	for _, id := range []string{"", "1", "not-a-uuid"} {
		if validID(id) {
			t.Fatalf("validID(%q) = true", id)
		}
	}
}
