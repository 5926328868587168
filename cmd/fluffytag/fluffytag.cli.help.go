package main

import (
	"fmt"
	"io"
	"runtime"
)

func runHelp(args []string, stdout io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeSuccess
	}

	cmd := args[0]
	switch cmd {
	case CmdNameScan:
		fmt.Fprintln(stdout, HelpScanUsage)
	case CmdNameManifest:
		fmt.Fprintln(stdout, HelpManifestUsage)
	case CmdNameVersion:
		fmt.Fprintln(stdout, HelpVersionUsage)
	case CmdNameHelp:
		fmt.Fprintln(stdout, HelpHelpUsage)
	default:
		fmt.Fprintf(stdout, FmtErrorWithDetail, ErrMsgUnknownCommand, cmd)
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeUsageError
	}

	return ExitCodeSuccess
}

func runVersion(args []string, stdout io.Writer) int {
	fmt.Fprintf(stdout, "fluffytag %s (%s)\n", AppVersion, runtime.Version())
	return ExitCodeSuccess
}
