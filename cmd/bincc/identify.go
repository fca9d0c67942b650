package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bincc/bincc/internal/logging"
	"github.com/bincc/bincc/internal/normalize"
	"github.com/bincc/bincc/internal/rules"
)

type identifyResult struct {
	Number    string `json:"number"`
	Brand     string `json:"brand,omitempty"`
	Name      string `json:"name,omitempty"`
	Supported bool   `json:"supported"`
	Luhn      bool   `json:"luhn"`
}

func newIdentifyCmd(a *app) *cobra.Command {
	var asJSON bool
	var raw bool

	cmd := &cobra.Command{
		Use:   "identify [number...]",
		Short: "Identify the brand of card numbers",
		Long:  "Identify the brand of card numbers given as arguments or one per line on stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return errors.New("at least one card number is required")
			}

			return a.run(cmd.ErrOrStderr(), func() error {
				results := make([]identifyResult, 0, len(inputs))
				for _, input := range inputs {
					number := input
					if !raw {
						number = normalize.Number(input)
					}
					results = append(results, a.identify(number))
				}

				if asJSON {
					encoder := json.NewEncoder(cmd.OutOrStdout())
					encoder.SetIndent("", "  ")
					return encoder.Encode(results)
				}

				s := newStyles(a.colorEnabled(cmd.OutOrStdout()))
				for _, r := range results {
					brand := s.fail.Sprint("unsupported")
					if r.Supported {
						brand = s.brand.Sprint(r.Brand)
					}
					luhn := s.ok.Sprint("luhn ok")
					if !r.Luhn {
						luhn = s.fail.Sprint("luhn fail")
					}
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", r.Number, brand, luhn); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&raw, "raw", false, "Do not strip spaces, dashes and dots from input")

	return cmd
}

func (a *app) identify(number string) identifyResult {
	start := time.Now()
	res := identifyResult{Number: mask(number), Luhn: a.engine.LuhnValid(number)}
	if b, ok := a.engine.IdentifyDetailed(number); ok {
		res.Brand = b.ID
		res.Name = b.DisplayName
		res.Supported = true
	}

	a.record(logging.Lookup{
		Operation: logging.OpIdentify,
		BIN:       rules.BINOf(number),
		Length:    len(number),
		Brand:     res.Brand,
		Supported: res.Supported,
		Luhn:      boolPtr(res.Luhn),
	}, start)
	return res
}
