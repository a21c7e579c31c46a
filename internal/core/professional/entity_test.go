package professional

import (
	"errors"
	"testing"
)

func TestParseEmploymentState(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"EMPLOYED", "UNEMPLOYED", "AVAILABLE_FOR_WORK", "NOT_AVAILABLE"} {
		got, err := ParseEmploymentState(raw)
		if err != nil {
			t.Fatalf("ParseEmploymentState(%q) returned error: %v", raw, err)
		}
		if string(got) != raw {
			t.Fatalf("ParseEmploymentState(%q) = %q", raw, got)
		}
	}

	if _, err := ParseEmploymentState("available_for_work"); !errors.Is(err, ErrInvalidEmploymentState) {
		t.Fatalf("expected ErrInvalidEmploymentState, got %v", err)
	}
}

func TestProfessionalClone_CopiesSkills(t *testing.T) {
	t.Parallel()

	p := &Professional{ID: "p-1", Skills: []string{"go", "sql"}}
	clone := p.Clone()
	clone.Skills[0] = "kotlin"

	if p.Skills[0] != "go" {
		t.Fatalf("clone shares skills slice with original")
	}
}
