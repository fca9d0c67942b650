package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bincc/bincc/internal/logging"
	"github.com/bincc/bincc/internal/normalize"
	"github.com/bincc/bincc/internal/rules"
)

func newBINCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bin <prefix>",
		Short: "Identify a brand and issuer from a partial number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := normalize.Number(args[0])
			return a.run(cmd.ErrOrStderr(), func() error {
				start := time.Now()
				brand, ok := a.engine.IdentifyBIN(prefix)
				info, known := a.engine.LookupBIN(prefix)
				a.record(logging.Lookup{
					Operation: logging.OpBIN,
					BIN:       rules.BINOf(prefix),
					Length:    len(prefix),
					Brand:     brand,
					Supported: ok,
				}, start)

				s := newStyles(a.colorEnabled(cmd.OutOrStdout()))
				out := cmd.OutOrStdout()
				if !ok {
					_, err := fmt.Fprintln(out, s.fail.Sprint("unsupported"))
					return err
				}
				if _, err := fmt.Fprintf(out, "brand: %s\n", s.brand.Sprint(brand)); err != nil {
					return err
				}
				if !known {
					return nil
				}
				fmt.Fprintf(out, "bin: %s\n", info.Bin)
				if info.Issuer != "" {
					fmt.Fprintf(out, "issuer: %s\n", info.Issuer)
				}
				if info.Type != "" {
					fmt.Fprintf(out, "type: %s\n", info.Type)
				}
				if info.Category != "" {
					fmt.Fprintf(out, "category: %s\n", info.Category)
				}
				if len(info.Countries) > 0 {
					fmt.Fprintf(out, "countries: %s\n", strings.Join(info.Countries, ","))
				}
				return nil
			})
		},
	}
}
