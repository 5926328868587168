package main

// Command names
const (
	CmdNameScan     = "scan"
	CmdNameManifest = "manifest"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagInput     = "input"
	FlagTags      = "tags"
	FlagManifest  = "manifest"
	FlagFormat    = "format"
	FlagThreshold = "threshold"
)

// Flag names - short form
const (
	FlagInputShort  = "i"
	FlagTagsShort   = "t"
	FlagFormatShort = "f"
)

// Flag defaults
const (
	FlagDefaultFormat = OutputFormatText
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 3
)

// Version information
const (
	AppVersion = "0.1.0"
)

// Error message constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgReadInputFailed   = "failed to read input"
	ErrMsgInvalidFlags      = "invalid flags"
	ErrMsgMissingTags       = "at least one tag name or a manifest is required"
	ErrMsgManifestInvalid   = "manifest validation failed"
	ErrMsgMissingManifest   = "a manifest file path is required"
	ErrMsgInvalidThreshold  = "threshold must be a positive integer"
	ErrMsgWriteOutputFailed = "failed to write output"
)

// Output format strings
const (
	FmtErrorWithCause  = "Error: %s: %v\n"
	FmtErrorWithDetail = "Error: %s: %s\n"
)

// Help text
const (
	HelpMainUsage = `fluffytag - streaming tag processor for LLM output

Usage:
  fluffytag <command> [flags]

Commands:
  scan      Scan a stream for tags and print tag events
  manifest  Validate a YAML tag manifest
  version   Print version information
  help      Show help for a command

Use "fluffytag help <command>" for details.`

	HelpScanUsage = `fluffytag scan - scan a stream for tags and print tag events

Usage:
  fluffytag scan --tags <name,name,...> [flags]

Flags:
  -i, --input <path>     Input file (default: stdin)
  -t, --tags <names>     Comma-separated tag names to recognize
      --manifest <path>  YAML manifest declaring the tag vocabulary
  -f, --format <fmt>     Output format: text or json (default: text)
      --threshold <n>    Untagged auto-process threshold (default: 20)`

	HelpManifestUsage = `fluffytag manifest - validate a YAML tag manifest

Usage:
  fluffytag manifest <path>`

	HelpVersionUsage = `fluffytag version - print version information

Usage:
  fluffytag version`

	HelpHelpUsage = `fluffytag help - show help for a command

Usage:
  fluffytag help [command]`
)
