package main

import (
	"errors"
	"fmt"
	"io"

	fluffytag "github.com/itsatony/go-fluffytag"
)

func runManifest(args []string, stdout, stderr io.Writer) int {
	path, err := parseManifestArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	m, err := fluffytag.ParseManifestFile(path)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgManifestInvalid, err)
		return ExitCodeError
	}

	fmt.Fprintf(stdout, "manifest ok: %d tags\n", len(m.Tags))
	for _, tag := range m.Tags {
		fmt.Fprintf(stdout, "  %s -> %s\n", tag.Name, tag.Handler)
	}
	return ExitCodeSuccess
}

func parseManifestArgs(args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", errors.New(ErrMsgMissingManifest)
	}
	return args[0], nil
}
