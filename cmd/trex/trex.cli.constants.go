package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagContext  = "context"
	FlagEntry    = "entry"
	FlagMarks    = "marks"
	FlagOutput   = "output"
	FlagFormat   = "format"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagContextShort  = "c"
	FlagEntryShort    = "e"
	FlagMarksShort    = "m"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// File permissions for --output targets
const (
	FilePermissions = 0644
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand   = "unknown command"
	ErrMsgMissingTemplate  = "template chain file required"
	ErrMsgReadFileFailed   = "failed to read file"
	ErrMsgParseChainFailed = "chain parsing failed"
	ErrMsgInvalidChain     = "chain validation failed"
	ErrMsgRenderFailed     = "render failed"
	ErrMsgWriteFailed      = "failed to write output"
	ErrMsgInvalidFormat    = "invalid output format"
	ErrMsgJSONEncodeFailed = "failed to encode JSON"
)

// Status messages
const (
	MsgChainValid = "chain is valid"
)

// Version information
const (
	VersionCurrent      = "1.0.0"
	VersionTextTemplate = "go-trex version %s\nGo: %s"
)

// Output format strings
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)

// Help text
const (
	HelpMainUsage = `go-trex - chained-provider template resolution CLI

Usage:
  trex <command> [flags]

Commands:
  render     Resolve an entrypoint from a YAML chain definition
  validate   Check a YAML chain definition for structural errors
  version    Show version information
  help       Show help for a command

Run 'trex help <command>' for command details.`

	HelpRenderUsage = `Usage: trex render -t <chain.yaml> [flags]

Resolves an entrypoint against a template chain, optionally layered
under a context chain. Chain definitions are YAML lists of providers in
root-first order; entries are plain values.

Flags:
  -t, --template  template chain file ("-" for stdin, required)
  -c, --context   context chain file
  -e, --entry     entrypoint name (default "main")
  -m, --marks     wrap string output in debug-mark delimiters
  -o, --output    output file (default "-" for stdout)
  -F, --format    output format: text or json (default "text")`

	HelpValidateUsage = `Usage: trex validate -t <chain.yaml> [flags]

Parses the chain definition and builds the merged lookup, reporting the
first structural error (missing id, duplicate id).

Flags:
  -t, --template  template chain file ("-" for stdin, required)
  -c, --context   context chain file`

	HelpVersionUsage = `Usage: trex version [flags]

Flags:
  -F, --format  output format: text or json (default "text")`

	HelpHelpUsage = `Usage: trex help [command]`
)
