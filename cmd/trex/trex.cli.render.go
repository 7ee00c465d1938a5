package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	trex "github.com/itsatony/go-trex"
)

// renderCmdConfig holds parsed render command configuration
type renderCmdConfig struct {
	templatePath string
	contextPath  string
	entrypoint   string
	marks        bool
	outputPath   string
	format       string
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, CmdNameRender, err)
		return ExitCodeUsageError
	}

	tmpl, ctxChain, code := loadChains(cfg.templatePath, cfg.contextPath, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}

	opts := []trex.Option{
		trex.WithEntrypoint(cfg.entrypoint),
		trex.WithDebugMarks(cfg.marks),
	}
	if ctxChain != nil {
		opts = append(opts, trex.WithContextChain(ctxChain))
	}

	result, err := trex.Render(context.Background(), tmpl, opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	out, err := formatResult(result, cfg.format)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONEncodeFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, out, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderCmdConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderCmdConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.contextPath, FlagContext, "", "")
	fs.StringVar(&cfg.contextPath, FlagContextShort, "", "")
	fs.StringVar(&cfg.entrypoint, FlagEntry, trex.DefaultEntrypoint, "")
	fs.StringVar(&cfg.entrypoint, FlagEntryShort, trex.DefaultEntrypoint, "")
	fs.BoolVar(&cfg.marks, FlagMarks, false, "")
	fs.BoolVar(&cfg.marks, FlagMarksShort, false, "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validation
	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// loadChains reads and parses the template chain and optional context chain.
func loadChains(templatePath, contextPath string, stdin io.Reader, stderr io.Writer) (*trex.Provider, *trex.Provider, int) {
	templateData, err := readInput(templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return nil, nil, ExitCodeInputError
	}
	tmpl, err := trex.ParseChainYAML(templateData)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseChainFailed, err)
		return nil, nil, ExitCodeInputError
	}

	var ctxChain *trex.Provider
	if contextPath != "" {
		contextData, err := readInput(contextPath, stdin)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			return nil, nil, ExitCodeInputError
		}
		ctxChain, err = trex.ParseChainYAML(contextData)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseChainFailed, err)
			return nil, nil, ExitCodeInputError
		}
	}

	return tmpl, ctxChain, ExitCodeSuccess
}

// formatResult encodes a resolved value for output. Text format passes
// strings through verbatim and JSON-encodes everything else.
func formatResult(result any, format string) ([]byte, error) {
	if format == OutputFormatText {
		if s, ok := result.(string); ok {
			return []byte(s + FmtNewline), nil
		}
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(jsonBytes, FmtNewline...), nil
}
