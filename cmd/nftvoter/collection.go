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
	"fmt"

	"github.com/spf13/cobra"
)

func collectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Query collection configs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "registrars <collection>",
		Short: "List the registrars that configure a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := keyArg(args, 0)
			if err != nil {
				return err
			}
			return runWithEnv(cmd, func(e *env) error {
				registrars, err := e.db.RegistrarsForCollection(collection)
				if err != nil {
					return err
				}
				for _, key := range registrars {
					fmt.Fprintln(cmd.OutOrStdout(), key.String())
				}
				return nil
			})
		},
	})
	return cmd
}
