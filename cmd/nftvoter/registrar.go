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

	"github.com/blinklabs-io/nftvoter/registrar"
	"github.com/spf13/cobra"
)

func registrarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registrar",
		Short: "Manage registrar records",
	}
	cmd.AddCommand(registrarCreateCommand())
	cmd.AddCommand(registrarShowCommand())
	return cmd
}

func registrarCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty registrar and print its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			programID, err := keyFlag(cmd, "program")
			if err != nil {
				return err
			}
			realm, err := keyFlag(cmd, "realm")
			if err != nil {
				return err
			}
			mint, err := keyFlag(cmd, "mint")
			if err != nil {
				return err
			}
			maxCollections, err := cmd.Flags().GetUint8("max-collections")
			if err != nil {
				return err
			}
			return runWithEnv(cmd, func(e *env) error {
				key, err := e.db.CreateRegistrar(
					registrar.New(programID, realm, mint, maxCollections),
					nil,
				)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), key.String())
				return nil
			})
		},
	}
	cmd.Flags().String("program", "", "governance program id")
	cmd.Flags().String("realm", "", "realm address")
	cmd.Flags().String("mint", "", "governing token mint")
	cmd.Flags().Uint8("max-collections", 0, "maximum number of collection configs")
	return cmd
}

func registrarShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <registrar>",
		Short: "Print a registrar as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keyArg(args, 0)
			if err != nil {
				return err
			}
			return runWithEnv(cmd, func(e *env) error {
				r, err := e.db.GetRegistrar(key, nil)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), r)
			})
		},
	}
}
