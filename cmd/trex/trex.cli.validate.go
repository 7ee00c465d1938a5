package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	trex "github.com/itsatony/go-trex"
)

// validateCmdConfig holds parsed validate command configuration
type validateCmdConfig struct {
	templatePath string
	contextPath  string
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, CmdNameValidate, err)
		return ExitCodeUsageError
	}

	tmpl, ctxChain, code := loadChains(cfg.templatePath, cfg.contextPath, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}

	if _, err := trex.NewChainProvider(tmpl, ctxChain, nil); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidChain, err)
		return ExitCodeValidationError
	}

	fmt.Fprintln(stdout, MsgChainValid)
	return ExitCodeSuccess
}

func parseValidateFlags(args []string) (*validateCmdConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &validateCmdConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.contextPath, FlagContext, "", "")
	fs.StringVar(&cfg.contextPath, FlagContextShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}
