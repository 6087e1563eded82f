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
	"fmt"

	"github.com/blinklabs-io/nftvoter/database/models"
	"github.com/blinklabs-io/nftvoter/database/types"
)

// GetCollectionConfigs returns the indexed collection configs of a registrar in position order
func (d *MetadataStoreSqlite) GetCollectionConfigs(
	registrar []byte,
	txn types.Txn,
) ([]models.CollectionConfig, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.CollectionConfig
	result := db.Where("registrar = ?", registrar).
		Order("position").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// GetCollectionConfigsByCollection returns the indexed collection configs for a collection across all registrars
func (d *MetadataStoreSqlite) GetCollectionConfigsByCollection(
	collection []byte,
	txn types.Txn,
) ([]models.CollectionConfig, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.CollectionConfig
	result := db.Where("collection = ?", collection).
		Order("id").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// SetCollectionConfigs replaces the indexed collection configs of a registrar
func (d *MetadataStoreSqlite) SetCollectionConfigs(
	registrar []byte,
	configs []models.CollectionConfig,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Where("registrar = ?", registrar).Delete(&models.CollectionConfig{}); result.Error != nil {
		return fmt.Errorf("failed to clear collection configs: %w", result.Error)
	}
	if len(configs) == 0 {
		return nil
	}
	for i := range configs {
		configs[i].ID = 0
		configs[i].Registrar = registrar
	}
	if result := db.Create(&configs); result.Error != nil {
		return fmt.Errorf("failed to save collection configs: %w", result.Error)
	}
	return nil
}
