package commands

import (
	"errors"
	"os"

	"github.com/aidanlsb/xcproj/internal/errs"
)

func asError(err error, target **errs.Error) bool {
	return errors.As(err, target)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
