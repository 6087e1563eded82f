// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/blinklabs-io/nftvoter/governance"
	"github.com/spf13/cobra"
)

func realmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realm",
		Short: "Manage governance realm records",
	}
	cmd.AddCommand(realmSetCommand())
	return cmd
}

func realmSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace a realm record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			realm := &governance.Realm{}
			var err error
			if realm.Address, err = keyFlag(cmd, "address"); err != nil {
				return err
			}
			if realm.GovernanceProgramID, err = keyFlag(cmd, "program"); err != nil {
				return err
			}
			if realm.CommunityMint, err = keyFlag(cmd, "community-mint"); err != nil {
				return err
			}
			if realm.CouncilMint, err = optionalKeyFlag(cmd, "council-mint"); err != nil {
				return err
			}
			if realm.Authority, err = optionalKeyFlag(cmd, "authority"); err != nil {
				return err
			}
			if realm.Name, err = cmd.Flags().GetString("name"); err != nil {
				return err
			}
			return runWithEnv(cmd, func(e *env) error {
				if err := e.db.SetRealm(realm, nil); err != nil {
					return err
				}
				e.logger.Info(
					"stored realm",
					"component", programName,
					"realm", realm.Address.String(),
				)
				return nil
			})
		},
	}
	cmd.Flags().String("address", "", "realm address")
	cmd.Flags().String("program", "", "governance program id")
	cmd.Flags().String("name", "", "realm name")
	cmd.Flags().String("community-mint", "", "community token mint")
	cmd.Flags().String("council-mint", "", "council token mint")
	cmd.Flags().String("authority", "", "realm authority")
	return cmd
}
