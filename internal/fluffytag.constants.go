package internal

// Character constants used by the scanner and tracker
const (
	CharTagOpen     = byte('<')
	CharTagClose    = byte('>')
	CharOpenBrace   = byte('{')
	CharCloseBrace  = byte('}')
	CharDoubleQuote = byte('"')
	CharSingleQuote = byte('\'')
	CharSlash       = byte('/')
)

// Tag token markers
const (
	StrClosingTagPrefix = "</"
	StrSelfClosingEnd   = "/>"
	StrTagOpen          = "<"
	StrTagClose         = ">"
)

// Log message constants
const (
	LogMsgScannerCreated = "scanner created"
	LogMsgScannerReset   = "scanner reset"
	LogMsgTokenComplete  = "tag token complete"
)

// Log field constants
const (
	LogFieldToken = "token"
	LogFieldBytes = "bytes"
)
