package exitcode

import (
	"errors"
	"testing"

	"github.com/aidanlsb/xcproj/internal/errs"
)

func TestFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, Success},
		{errors.New("boom"), GeneralError},
		{errs.InvalidArgument("bad"), InvalidArgument},
		{errs.NotFound("missing"), NotFound},
		{errs.OperationFailed("nope"), OperationFailed},
		{errs.PersistenceFailed(errors.New("disk"), "save"), PersistenceFailed},
	}
	for _, tt := range tests {
		if got := For(tt.err); got != tt.want {
			t.Errorf("For(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if String(InvalidArgument) != "Invalid argument" {
		t.Errorf("String(InvalidArgument) = %q", String(InvalidArgument))
	}
	if String(99) != "Unknown error" {
		t.Errorf("String(99) = %q", String(99))
	}
}
