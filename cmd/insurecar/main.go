// Command insurecar prices and validates policy scenarios offline, using the
// same rules as the policy service.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"insurecar/internal/policy/rules"
)

// Exit codes.
const (
	exitViolations = 2
	exitInput      = 3
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

type options struct {
	today  string
	locale string
}

// clock resolves --today, defaulting to the current UTC date.
func (o *options) clock() (time.Time, error) {
	if o.today == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, o.today)
	if err != nil {
		return time.Time{}, codeError(exitInput, "--today: expected YYYY-MM-DD, got %q", o.today)
	}
	return t, nil
}

func (o *options) printer() (*message.Printer, error) {
	tag, err := language.Parse(o.locale)
	if err != nil {
		return nil, codeError(exitInput, "--locale: %v", err)
	}
	return message.NewPrinter(tag), nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "insurecar",
		Short: "Price and validate auto insurance policy scenarios",
		Long: `insurecar evaluates a YAML policy scenario against the pricing and
validation rules of the policy service. Use "-" to read the scenario from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.today, "today", "", "evaluation date (YYYY-MM-DD), defaults to the current date")
	root.PersistentFlags().StringVar(&opts.locale, "locale", language.AmericanEnglish.String(), "locale used to format amounts")

	quoteCmd := &cobra.Command{
		Use:   "quote <scenario.yaml>",
		Short: "Print the premium and its factor breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := opts.clock()
			if err != nil {
				return err
			}
			p, err := opts.printer()
			if err != nil {
				return err
			}
			s, err := loadScenario(args[0])
			if err != nil {
				return codeError(exitInput, "%v", err)
			}
			return runQuote(cmd.OutOrStdout(), p, s, now)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "List every reason the scenario's policy cannot be created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := opts.clock()
			if err != nil {
				return err
			}
			p, err := opts.printer()
			if err != nil {
				return err
			}
			s, err := loadScenario(args[0])
			if err != nil {
				return codeError(exitInput, "%v", err)
			}
			return runValidate(cmd.OutOrStdout(), p, s, now)
		},
	}

	root.AddCommand(quoteCmd, validateCmd)
	return root
}

func runQuote(w io.Writer, p *message.Printer, s *scenario, now time.Time) error {
	parties, err := s.parties()
	if err != nil {
		return codeError(exitInput, "%v", err)
	}
	months, err := s.months()
	if err != nil {
		return codeError(exitInput, "%v", err)
	}

	b := rules.PricePremium(parties.customer, parties.vehicle, parties.coverage, months, now)
	p.Fprintf(w, "Driver:          %s (age %d)\n", parties.customer.FullName(), parties.customer.Age(now))
	p.Fprintf(w, "Vehicle:         %s (age %d)\n", parties.vehicle.FullDescription(), parties.vehicle.Age(now))
	p.Fprintf(w, "Term:            %d months\n", months)
	p.Fprintf(w, "Base premium:    %v\n", money(b.Base))
	p.Fprintf(w, "Age factor:      %s\n", b.AgeFactor.String())
	p.Fprintf(w, "Vehicle factor:  %s\n", b.VehicleFactor.String())
	p.Fprintf(w, "Duration factor: %s\n", b.DurationFactor.String())
	p.Fprintf(w, "Premium:         %v\n", money(b.Premium))
	return nil
}

func runValidate(w io.Writer, p *message.Printer, s *scenario, now time.Time) error {
	parties, err := s.parties()
	if err != nil {
		return codeError(exitInput, "%v", err)
	}
	policy, err := s.policy(parties, now)
	if err != nil {
		return codeError(exitInput, "%v", err)
	}

	violations := rules.ValidatePolicy(policy, now)
	if len(violations) == 0 {
		p.Fprintf(w, "OK: policy is valid, premium %v\n", money(policy.Premium))
		return nil
	}
	for _, v := range violations {
		p.Fprintf(w, "- %s\n", v)
	}
	return codeError(exitViolations, "%d violation(s)", len(violations))
}

// money formats a cent amount with locale grouping.
func money(d decimal.Decimal) any {
	return number.Decimal(d.InexactFloat64(), number.Scale(2))
}
