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
	"errors"
	"fmt"
	"io"

	"github.com/blinklabs-io/nftvoter/pubkey"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// keyFlag reads a required base58 identity flag
func keyFlag(cmd *cobra.Command, name string) (pubkey.PublicKey, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return pubkey.PublicKey{}, err
	}
	if value == "" {
		return pubkey.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	ret, err := pubkey.NewFromBase58(value)
	if err != nil {
		return pubkey.PublicKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return ret, nil
}

// optionalKeyFlag reads a base58 identity flag, returning nil when it is unset
func optionalKeyFlag(cmd *cobra.Command, name string) (*pubkey.PublicKey, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	ret, err := keyFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

// keyArg parses a base58 identity positional argument
func keyArg(args []string, idx int) (pubkey.PublicKey, error) {
	if idx >= len(args) {
		return pubkey.PublicKey{}, errors.New("missing address argument")
	}
	return pubkey.NewFromBase58(args[idx])
}

func runWithEnv(cmd *cobra.Command, fn func(*env) error) error {
	e, err := openEnv(cmd.Context(), configFromCommand(cmd))
	if err != nil {
		return err
	}
	runErr := fn(e)
	return errors.Join(runErr, e.Close(cmd.Context(), cmd.ErrOrStderr()))
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
