package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"phonefield/internal/phonefield/transport"

	"github.com/spf13/cobra"
)

func countriesCmd() *cobra.Command {
	var allowed string
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the country catalog",
		Example: `  phonefield countries
  phonefield countries --allowed ke,+256,Tanzania`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := svc.ListCountries(allowed)
			return render(cmd.OutOrStdout(), list, func(w io.Writer) error {
				return writeCountries(w, list.Items)
			})
		},
	}
	cmd.Flags().StringVar(&allowed, "allowed", "", "comma separated codes, dialing codes or names")
	return cmd
}

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup CODE",
		Short: "Print a single catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := svc.GetCountry(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c, func(w io.Writer) error {
				return writeCountries(w, []transport.CountryResponse{c})
			})
		},
	}
}

func localeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locale TAG",
		Short: "Resolve a locale tag to a country, falling back to the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := svc.CountryForLocale(args[0])
			return render(cmd.OutOrStdout(), c, func(w io.Writer) error {
				return writeCountries(w, []transport.CountryResponse{c})
			})
		},
	}
}

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect NUMBER",
		Short: "Detect the country of an international number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := svc.DetectCountry(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
				if err := writeCountries(w, []transport.CountryResponse{resp.Country}); err != nil {
					return err
				}
				_, err := fmt.Fprintln(w, resp.E164)
				return err
			})
		},
	}
}

func writeCountries(w io.Writer, items []transport.CountryResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Flag, strings.ToUpper(c.Code), c.PhoneNoCode, c.Name)
	}
	return tw.Flush()
}
