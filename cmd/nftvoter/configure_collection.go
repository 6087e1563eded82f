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
	"github.com/blinklabs-io/nftvoter/voter"
	"github.com/spf13/cobra"
)

func configureCollectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure-collection",
		Short: "Insert or replace the vote weight config of a collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req voter.ConfigureCollectionRequest
			var err error
			if req.Registrar, err = keyFlag(cmd, "registrar"); err != nil {
				return err
			}
			if req.Realm, err = keyFlag(cmd, "realm"); err != nil {
				return err
			}
			if req.RealmAuthority, err = keyFlag(cmd, "authority"); err != nil {
				return err
			}
			if req.Collection, err = keyFlag(cmd, "collection"); err != nil {
				return err
			}
			if req.Weight, err = cmd.Flags().GetUint16("weight"); err != nil {
				return err
			}
			if req.Size, err = cmd.Flags().GetUint32("size"); err != nil {
				return err
			}
			return runWithEnv(cmd, func(e *env) error {
				v, err := e.voter()
				if err != nil {
					return err
				}
				r, err := v.ConfigureCollection(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), r)
			})
		},
	}
	cmd.Flags().String("registrar", "", "registrar address")
	cmd.Flags().String("realm", "", "realm address")
	cmd.Flags().String("authority", "", "signing realm authority")
	cmd.Flags().String("collection", "", "collection identity")
	cmd.Flags().Uint16("weight", 0, "vote weight per token of the collection")
	cmd.Flags().Uint32("size", 0, "number of tokens in the collection")
	return cmd
}
