package scan

import "testing"

func TestBuildBinNote(t *testing.T) {
	if got := buildBinNote("A1", "B2"); got != "Bin mismatch: expected A1; found B2" {
		t.Fatalf("unexpected note: %q", got)
	}
	if got := buildBinNote("", "B2"); got != "Bin mismatch: expected (blank); found B2" {
		t.Fatalf("unexpected blank note: %q", got)
	}
}

func TestBuildReviewReason(t *testing.T) {
	if got := buildReviewReason("A1", "B2"); got != "Expected bin: A1 | Found bin: B2" {
		t.Fatalf("unexpected reason: %q", got)
	}
	if got := buildReviewReason("", "B2"); got != "Expected bin: (blank) | Found bin: B2" {
		t.Fatalf("unexpected blank reason: %q", got)
	}
}

func TestAppendNote(t *testing.T) {
	note := buildBinNote("A1", "B2")

	got := appendNote("", note)
	if got != note {
		t.Fatalf("append to empty: %q", got)
	}

	got = appendNote("existing note", note)
	if got != "existing note\n"+note {
		t.Fatalf("append to existing: %q", got)
	}

	// appending the same note twice must not duplicate it
	got = appendNote(got, note)
	if got != "existing note\n"+note {
		t.Fatalf("duplicate note appended: %q", got)
	}
}
