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

package metadata

import (
	"github.com/blinklabs-io/nftvoter/database/models"
	"github.com/blinklabs-io/nftvoter/database/types"
)

// MetadataStore holds queryable records. Except for SetCommitTimestamp, methods
// accept a nil txn, in which case the query runs outside of any transaction
type MetadataStore interface {
	Close() error
	Transaction() types.Txn
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(timestamp int64, txn types.Txn) error

	// Realms
	GetRealm(address []byte, txn types.Txn) (*models.Realm, error)
	SetRealm(realm *models.Realm, txn types.Txn) error

	// Collection config index
	GetCollectionConfigs(registrar []byte, txn types.Txn) ([]models.CollectionConfig, error)
	GetCollectionConfigsByCollection(collection []byte, txn types.Txn) ([]models.CollectionConfig, error)
	SetCollectionConfigs(registrar []byte, configs []models.CollectionConfig, txn types.Txn) error
}
