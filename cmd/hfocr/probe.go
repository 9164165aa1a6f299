package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProbeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check whether the selected model is loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := o.build()
			if err != nil {
				return err
			}
			id, sess, err := mgr.Configure("", o.sessionRequest())
			if err != nil {
				return err
			}
			st, err := mgr.Probe(cmd.Context(), id)
			if err != nil {
				return withHint(fmt.Errorf("%s: %w", sess.Endpoint.Name, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tloaded=%t\tstate=%s\n", sess.Endpoint.Name, st.Loaded, st.State)
			return nil
		},
	}
}
