package orgquery

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStageErrorPreservesInnerKind(t *testing.T) {
	inner := BirthdayError("from_next_birthday", InvalidDateError("someday"))
	err := StageError("birthday", inner, "PLAN employee\n")

	if !IsKind(err, ErrBirthdayFilter) {
		t.Fatalf("kind = %v", err)
	}
	if StageOf(err) != "birthday" {
		t.Fatalf("stage = %q", StageOf(err))
	}
	var oe *Error
	if !errors.As(err, &oe) {
		t.Fatal("not an *Error")
	}
	if oe.Field != "from_next_birthday" {
		t.Fatalf("field = %q", oe.Field)
	}
	if oe.Plan == "" {
		t.Fatal("plan text dropped")
	}
}

func TestStageErrorWrapsForeignError(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := StageError("name", cause, "")

	if !IsKind(err, ErrFilterStage) {
		t.Fatalf("kind = %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
}

func TestErrorTextIncludesStageAndField(t *testing.T) {
	err := &Error{Kind: ErrInvalidColumn, Stage: "projection", Field: "ssn", Message: "invalid column(s): ssn"}
	text := err.Error()
	for _, want := range []string{"invalid_column", "stage=projection", "field=ssn"} {
		if !strings.Contains(text, want) {
			t.Fatalf("error text %q missing %q", text, want)
		}
	}
}

func TestIsKindOnForeignError(t *testing.T) {
	if IsKind(errors.New("plain"), ErrSQL) {
		t.Fatal("plain error matched a kind")
	}
}
