package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newEndpointsCmd(o *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "List the configured OCR endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := o.build()
			if err != nil {
				return err
			}
			resp := mgr.Endpoints()
			out := cmd.OutOrStdout()
			switch output {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(resp.Endpoints)
			case "", "table":
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tMODEL\tURL")
				for _, e := range resp.Endpoints {
					name := e.Name
					if name == resp.Default {
						name += " *"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", name, e.Model, e.URL)
				}
				return tw.Flush()
			}
			return fmt.Errorf("unknown output format %q: use table, json or yaml", output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json|yaml")
	return cmd
}
