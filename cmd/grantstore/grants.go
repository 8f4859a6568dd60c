package main

import (
	// Standard Library Imports
	"encoding/json"
	"time"

	// External Imports
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

func filterFlags(cmd *cobra.Command, filter *storage.GrantFilter) {
	cmd.Flags().StringVar(&filter.SubjectID, "subject", "", "Subject ID")
	cmd.Flags().StringVar(&filter.SessionID, "session", "", "Session ID")
	cmd.Flags().StringVar(&filter.ClientID, "client", "", "Client ID")
	cmd.Flags().StringVar(&filter.Type, "type", "", "Grant type")
}

func newSweepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove grants that have expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := a.backend.grants.RemoveExpired(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			a.log.WithField("count", deleted).Info("removed expired grants")
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var filter storage.GrantFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List grants matching a filter as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			grants, err := a.backend.grants.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, grant := range grants {
				if err := enc.Encode(grant); err != nil {
					return err
				}
			}
			return nil
		},
	}
	filterFlags(cmd, &filter)
	return cmd
}

func newRevokeCmd(a *app) *cobra.Command {
	var filter storage.GrantFilter
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke every grant matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.backend.grants.RemoveAllWithPolicy(cmd.Context(), filter, a.policy())
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"filter": filter,
				"policy": a.policy().String(),
			}).Info("revoked grants")
			return nil
		},
	}
	filterFlags(cmd, &filter)
	cmd.Flags().BoolVar(&a.strict, "strict", false, "Fail when a storage error prevents revocation")
	return cmd
}
