// Package cli implements the archief command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/archief/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// lookupError classifies a failed lookup: bad input and unknown entities are
// user errors, everything else (store corruption included) is a system error.
func lookupError(err error) error {
	switch {
	case errors.Is(err, types.ErrMalformedKey),
		errors.Is(err, types.ErrObjectNotFound),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidLimit):
		return userError(err)
	default:
		return sysError(err)
	}
}

// ExitCode maps an error returned by the root command to a process exit
// code. Errors without a classification (flag parsing, unknown commands)
// are user errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "archief" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "archief",
		Short: "Catalogue site for an association's archive",
		Long: "Archief serves a read-only catalogue of collection objects and a\n" +
			"news feed, and offers command-line lookups against the same store.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: ./.archief or the user config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .archief-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(flags),
		newServeCmd(flags),
		newObjectCmd(flags),
		newCollectionsCmd(flags),
		newMessagesCmd(flags),
		newMessageCmd(flags),
		newSeedCmd(flags),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
	}
	return ExitCode(err)
}
