package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bincc/bincc/internal/config"
	"github.com/bincc/bincc/internal/rules"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

const configEnv = "BINCC_CONFIG"

func main() {
	// A missing .env is normal; the process environment still applies.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	var cerr *config.ValidationError
	var rerr *rules.ValidationError
	switch {
	case errors.As(err, &cerr):
		for _, msg := range cerr.Problems {
			fmt.Fprintln(w, msg)
		}
	case errors.As(err, &rerr):
		for _, msg := range rerr.Problems {
			fmt.Fprintln(w, msg)
		}
	default:
		fmt.Fprintln(w, err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bincc",
		Short:         "Identify payment card brands and validate card data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv(configEnv), "Path to config file (env "+configEnv+")")
	root.PersistentFlags().StringVar(&a.tablePath, "table", "", "Path to a brand table overriding the built-in one")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newIdentifyCmd(a))
	root.AddCommand(newCVVCmd(a))
	root.AddCommand(newBrandsCmd(a))
	root.AddCommand(newBINCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the config file and brand table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			table, err := a.loadTable(cfg)
			if err != nil {
				return err
			}
			warnings, err := rules.ValidateTable(table)
			s := newStyles(a.colorEnabled(cmd.OutOrStdout()))
			for _, w := range warnings {
				s.warn.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d brands)\n", s.ok.Sprint("table ok"), table.Len())
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version=%s commit=%s buildDate=%s\n", version, commit, buildDate)
		},
	}
}
