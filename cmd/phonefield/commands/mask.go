package commands

import (
	"fmt"
	"io"
	"strings"

	"phonefield/internal/phonefield/transport"

	"github.com/spf13/cobra"
)

func maskCmd() *cobra.Command {
	var (
		country string
		offset  int
	)
	cmd := &cobra.Command{
		Use:   "mask TEXT",
		Short: "Apply a country's display mask to raw text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := transport.MaskRequest{Country: country, Text: args[0]}
			if cmd.Flags().Changed("offset") {
				req.Offset = &offset
			}
			resp, err := svc.Mask(req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
				if resp.Offset != nil {
					_, err := fmt.Fprintf(w, "%s\n%s^\n", resp.Text, strings.Repeat(" ", *resp.Offset))
					return err
				}
				_, err := fmt.Fprintln(w, resp.Text)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&country, "country", "c", "", "country code whose mask to apply")
	cmd.Flags().IntVar(&offset, "offset", 0, "cursor offset in TEXT to map into the masked text")
	_ = cmd.MarkFlagRequired("country")
	return cmd
}
