package diag

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	err := &Error{
		Type:    "rle parse error",
		Message: "unexpected character",
		Context: *contextOf("glider.rle", "x = 3, y = 3\nbo$2bo$3q!", "q"),
	}

	wantErrorString := "rle parse error: glider.rle:2:9: unexpected character"
	if got := err.Error(); got != wantErrorString {
		t.Errorf("Error() -> %q, want %q", got, wantErrorString)
	}

	wantRanging := Ranging{From: 21, To: 22}
	if got := err.Range(); got != wantRanging {
		t.Errorf("Range() -> %v, want %v", got, wantRanging)
	}

	// Type is capitalized in return value of Show
	wantShow := "Rle parse error: {unexpected character}\n" +
		"  glider.rle:2:9: bo$2bo$3<q>!"
	if got := err.Show(""); got != wantShow {
		t.Errorf("Show() -> %q, want %q", got, wantShow)
	}
}

var errCause = errors.New("cause")

func TestError_Unwrap(t *testing.T) {
	err := &Error{Type: "t", Message: "m", Cause: errCause}
	if !errors.Is(err, errCause) {
		t.Errorf("errors.Is does not find the cause")
	}
	if (&Error{}).Unwrap() != nil {
		t.Errorf("Unwrap of an error without cause is not nil")
	}
}
