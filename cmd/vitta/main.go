package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/vitta/internal/models"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Command completed
	ExitInvalidInput = 1 // Goal or calculator input was rejected
	ExitError        = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, models.ErrInvalidInput):
		return ExitInvalidInput
	default:
		return ExitError
	}
}
