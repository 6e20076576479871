package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"phonefield/internal/countries"
	"phonefield/internal/phonefield/domain"
	"phonefield/internal/phonefield/service"
	"phonefield/internal/phonefield/transport"
	"phonefield/platform/apperr"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func deriveCmd() *cobra.Command {
	var (
		country   string
		allowed   string
		snapshot  string
		candidate string
	)
	cmd := &cobra.Command{
		Use:   "derive [NUMBER]",
		Short: "Derive the international forms of a local phone number",
		Example: `  phonefield derive --country ke 0712345678
  phonefield derive --snapshot field.yaml -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				resp transport.PhoneFieldResponse
				err  error
			)
			if snapshot != "" {
				var snap domain.Snapshot
				data, err := readFile(cmd, snapshot)
				if err != nil {
					return err
				}
				if err := yaml.Unmarshal(data, &snap); err != nil {
					return apperr.Wrap(apperr.KindBadRequest, "invalid snapshot file", err)
				}
				if len(args) == 1 {
					snap.RawDigits = args[0]
				}
				req := transport.DeriveRequest{Snapshot: transport.FromSnapshot(snap)}
				if cmd.Flags().Changed("candidate") {
					req.Candidate = &candidate
				}
				resp, err = svc.Derive(ctx, req)
				if err != nil {
					return err
				}
			} else {
				if country != "" && !countries.IsKnownCode(country) {
					return apperr.Validation(fmt.Sprintf("unknown country code %q", country))
				}
				req := transport.CreateRequest{
					DefaultCountryCode: country,
					AllowedCountries:   service.SplitAllowList(allowed),
				}
				if len(args) == 1 {
					req.RawDigits = args[0]
				}
				resp, err = svc.Create(ctx, req)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("candidate") {
					resp, err = svc.Derive(ctx, transport.DeriveRequest{
						Snapshot:  transport.FromSnapshot(resp.Snapshot),
						Candidate: &candidate,
					})
					if err != nil {
						return err
					}
				}
			}

			return render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
				return writeField(w, resp)
			})
		},
	}
	cmd.Flags().StringVarP(&country, "country", "c", "", "default country code")
	cmd.Flags().StringVar(&allowed, "allowed", "", "comma separated allow-list")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "YAML snapshot file to restore (- for stdin)")
	cmd.Flags().StringVar(&candidate, "candidate", "", "also validate this number against the selected country")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "country")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "allowed")
	return cmd
}

func writeField(w io.Writer, r transport.PhoneFieldResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "country\t%s %s (%s)\n", r.Country.Flag, r.Country.Name, r.PhoneCodeWithPrefix)
	fmt.Fprintf(tw, "local\t%s\n", r.LocalNumberWithoutPrefix)
	fmt.Fprintf(tw, "formatted local\t%s\n", r.FormattedLocalNumber)
	fmt.Fprintf(tw, "full\t%s\n", r.FullNumber)
	fmt.Fprintf(tw, "formatted full\t%s\n", r.FormattedFullNumber)
	fmt.Fprintf(tw, "international\t%s\n", r.InternationalNumber)
	fmt.Fprintf(tw, "valid\t%t\n", r.IsValid)
	fmt.Fprintf(tw, "valid (strict)\t%t\n", r.IsValidStrict)
	if r.CandidateValid != nil {
		fmt.Fprintf(tw, "candidate valid\t%t\n", *r.CandidateValid)
	}
	return tw.Flush()
}
