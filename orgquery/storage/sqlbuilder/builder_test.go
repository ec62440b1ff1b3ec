package sqlbuilder

import "testing"

func TestQuestionPlaceholders(t *testing.T) {
	b := New(PlaceholderQuestion)
	if got := b.Arg("x"); got != "?" {
		t.Fatalf("placeholder = %q", got)
	}
	if got := b.Arg(7); got != "?" {
		t.Fatalf("placeholder = %q", got)
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d", b.Len())
	}
	if args := b.Args(); args[0] != "x" || args[1] != 7 {
		t.Fatalf("args = %v", args)
	}
}

func TestDollarPlaceholdersNumber(t *testing.T) {
	b := New(PlaceholderDollar)
	if got := b.Arg("a"); got != "$1" {
		t.Fatalf("placeholder = %q", got)
	}
	if got := b.Arg("b"); got != "$2" {
		t.Fatalf("placeholder = %q", got)
	}
}
