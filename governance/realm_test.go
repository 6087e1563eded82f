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

package governance_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/blinklabs-io/nftvoter/governance"
	"github.com/blinklabs-io/nftvoter/pubkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testKey(b byte) pubkey.PublicKey {
	var ret pubkey.PublicKey
	copy(ret[:], bytes.Repeat([]byte{b}, pubkey.Size))
	return ret
}

type mapSource map[pubkey.PublicKey]*governance.Realm

func (m mapSource) GetRealm(address pubkey.PublicKey) (*governance.Realm, error) {
	realm, ok := m[address]
	if !ok {
		return nil, governance.ErrRealmNotFound
	}
	return realm, nil
}

type errSource struct {
	err error
}

func (e errSource) GetRealm(pubkey.PublicKey) (*governance.Realm, error) {
	return nil, e.err
}

var (
	programID     = testKey(0x01)
	realmAddr     = testKey(0x02)
	communityMint = testKey(0x03)
	councilMint   = testKey(0x04)
	authority     = testKey(0x05)
)

func testSource() mapSource {
	council := councilMint
	auth := authority
	return mapSource{
		realmAddr: {
			Address:             realmAddr,
			GovernanceProgramID: programID,
			Name:                "test realm",
			CommunityMint:       communityMint,
			CouncilMint:         &council,
			Authority:           &auth,
		},
		testKey(0x20): {
			Address:             testKey(0x20),
			GovernanceProgramID: programID,
			Name:                "no authority",
			CommunityMint:       communityMint,
		},
	}
}

func TestResolveAuthority(t *testing.T) {
	resolver := governance.NewStoreResolver(testSource())
	for _, mint := range []pubkey.PublicKey{communityMint, councilMint} {
		got, err := resolver.ResolveAuthority(
			context.Background(),
			programID,
			realmAddr,
			mint,
		)
		require.NoError(t, err)
		assert.Equal(t, authority, got)
	}
}

func TestResolveAuthorityErrors(t *testing.T) {
	testDefs := []struct {
		name      string
		programID pubkey.PublicKey
		realm     pubkey.PublicKey
		mint      pubkey.PublicKey
		err       error
	}{
		{
			name:      "missing realm",
			programID: programID,
			realm:     testKey(0x99),
			mint:      communityMint,
			err:       governance.ErrRealmLookupFailed,
		},
		{
			name:      "wrong program",
			programID: testKey(0x98),
			realm:     realmAddr,
			mint:      communityMint,
			err:       governance.ErrRealmLookupFailed,
		},
		{
			name:      "wrong mint",
			programID: programID,
			realm:     realmAddr,
			mint:      testKey(0x97),
			err:       governance.ErrRealmLookupFailed,
		},
		{
			name:      "no authority",
			programID: programID,
			realm:     testKey(0x20),
			mint:      communityMint,
			err:       governance.ErrRealmAuthorityUnset,
		},
	}
	resolver := governance.NewStoreResolver(testSource())
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := resolver.ResolveAuthority(
				context.Background(),
				testDef.programID,
				testDef.realm,
				testDef.mint,
			)
			require.ErrorIs(t, err, testDef.err)
		})
	}
}

func TestResolveAuthoritySourceError(t *testing.T) {
	sourceErr := errors.New("disk on fire")
	resolver := governance.NewStoreResolver(errSource{err: sourceErr})
	_, err := resolver.ResolveAuthority(
		context.Background(),
		programID,
		realmAddr,
		communityMint,
	)
	require.ErrorIs(t, err, governance.ErrRealmLookupFailed)
	require.ErrorIs(t, err, sourceErr)
}
