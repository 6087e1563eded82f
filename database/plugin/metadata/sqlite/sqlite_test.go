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

package sqlite

import (
	"bytes"
	"testing"

	"github.com/blinklabs-io/nftvoter/database/models"
	"github.com/blinklabs-io/nftvoter/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *MetadataStoreSqlite {
	t.Helper()
	store, err := New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testBytes(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func TestInMemoryStoresAreIsolated(t *testing.T) {
	store1 := setupTestDB(t)
	store2 := setupTestDB(t)
	require.NoError(t, store1.SetRealm(&models.Realm{
		Address:             testBytes(0x01),
		GovernanceProgramID: testBytes(0x02),
		CommunityMint:       testBytes(0x03),
	}, nil))
	realm, err := store2.GetRealm(testBytes(0x01), nil)
	require.NoError(t, err)
	assert.Nil(t, realm)
}

func TestRealm(t *testing.T) {
	store := setupTestDB(t)
	realm, err := store.GetRealm(testBytes(0x01), nil)
	require.NoError(t, err)
	assert.Nil(t, realm)

	require.NoError(t, store.SetRealm(&models.Realm{
		Address:             testBytes(0x01),
		GovernanceProgramID: testBytes(0x02),
		Name:                "realm",
		CommunityMint:       testBytes(0x03),
	}, nil))
	realm, err = store.GetRealm(testBytes(0x01), nil)
	require.NoError(t, err)
	require.NotNil(t, realm)
	assert.Equal(t, "realm", realm.Name)
	assert.Empty(t, realm.Authority)

	// Replacing sets the authority
	require.NoError(t, store.SetRealm(&models.Realm{
		Address:             testBytes(0x01),
		GovernanceProgramID: testBytes(0x02),
		Name:                "renamed",
		CommunityMint:       testBytes(0x03),
		Authority:           testBytes(0x04),
	}, nil))
	realm, err = store.GetRealm(testBytes(0x01), nil)
	require.NoError(t, err)
	require.NotNil(t, realm)
	assert.Equal(t, "renamed", realm.Name)
	assert.Equal(t, testBytes(0x04), realm.Authority)
}

func TestCollectionConfigs(t *testing.T) {
	store := setupTestDB(t)
	registrar := testBytes(0x10)
	require.NoError(t, store.SetCollectionConfigs(registrar, []models.CollectionConfig{
		{Position: 0, Collection: testBytes(0xc0), Weight: 1, Size: 10},
		{Position: 1, Collection: testBytes(0xc1), Weight: 2, Size: 20},
	}, nil))
	require.NoError(t, store.SetCollectionConfigs(testBytes(0x11), []models.CollectionConfig{
		{Position: 0, Collection: testBytes(0xc1), Weight: 3, Size: 30},
	}, nil))

	configs, err := store.GetCollectionConfigs(registrar, nil)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, testBytes(0xc0), configs[0].Collection)
	assert.Equal(t, testBytes(0xc1), configs[1].Collection)

	byCollection, err := store.GetCollectionConfigsByCollection(testBytes(0xc1), nil)
	require.NoError(t, err)
	require.Len(t, byCollection, 2)
	assert.Equal(t, registrar, byCollection[0].Registrar)
	assert.Equal(t, testBytes(0x11), byCollection[1].Registrar)

	// Replacing drops entries that are no longer present
	require.NoError(t, store.SetCollectionConfigs(registrar, []models.CollectionConfig{
		{Position: 0, Collection: testBytes(0xc0), Weight: 5, Size: 50},
	}, nil))
	configs, err = store.GetCollectionConfigs(registrar, nil)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, uint16(5), configs[0].Weight)
}

func TestTransactionRollback(t *testing.T) {
	store := setupTestDB(t)
	txn := store.Transaction()
	require.NoError(t, store.SetRealm(&models.Realm{
		Address:             testBytes(0x01),
		GovernanceProgramID: testBytes(0x02),
		CommunityMint:       testBytes(0x03),
	}, txn))
	require.NoError(t, txn.Rollback())
	// Finished transactions are rejected
	_, err := store.GetRealm(testBytes(0x01), txn)
	require.Error(t, err)

	realm, err := store.GetRealm(testBytes(0x01), nil)
	require.NoError(t, err)
	assert.Nil(t, realm)
}

func TestCommitTimestamp(t *testing.T) {
	store := setupTestDB(t)
	ts, err := store.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Zero(t, ts)

	txn := store.Transaction()
	require.NoError(t, store.SetCommitTimestamp(1234, txn))
	require.NoError(t, txn.Commit())
	ts, err = store.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(1234), ts)

	require.ErrorIs(t, store.SetCommitTimestamp(1, nil), types.ErrNilTxn)
}

func TestOnDisk(t *testing.T) {
	dataDir := t.TempDir()
	store, err := New(WithDataDir(dataDir))
	require.NoError(t, err)
	require.NoError(t, store.SetRealm(&models.Realm{
		Address:             testBytes(0x01),
		GovernanceProgramID: testBytes(0x02),
		CommunityMint:       testBytes(0x03),
	}, nil))
	require.NoError(t, store.Close())

	reopened, err := New(WithDataDir(dataDir))
	require.NoError(t, err)
	defer reopened.Close()
	realm, err := reopened.GetRealm(testBytes(0x01), nil)
	require.NoError(t, err)
	require.NotNil(t, realm)
}
