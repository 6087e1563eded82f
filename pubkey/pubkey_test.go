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

package pubkey_test

import (
	"bytes"
	"testing"

	"github.com/blinklabs-io/nftvoter/pubkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase58(t *testing.T) {
	// System program is all zero bytes
	zero, err := pubkey.NewFromBase58("11111111111111111111111111111111")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "11111111111111111111111111111111", zero.String())

	key, err := pubkey.New(bytes.Repeat([]byte{0xab}, pubkey.Size))
	require.NoError(t, err)
	decoded, err := pubkey.NewFromBase58(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
	assert.False(t, decoded.IsZero())
}

func TestInvalid(t *testing.T) {
	testDefs := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "bad alphabet", input: "0OIl"},
		{name: "too short", input: "2g"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := pubkey.NewFromBase58(testDef.input)
			require.ErrorIs(t, err, pubkey.ErrInvalidPublicKey)
		})
	}
	_, err := pubkey.New(make([]byte, 31))
	require.ErrorIs(t, err, pubkey.ErrInvalidPublicKey)
}

func TestText(t *testing.T) {
	key, err := pubkey.New(bytes.Repeat([]byte{0x01}, pubkey.Size))
	require.NoError(t, err)
	text, err := key.MarshalText()
	require.NoError(t, err)
	var out pubkey.PublicKey
	require.NoError(t, out.UnmarshalText(text))
	assert.Equal(t, key, out)
}
