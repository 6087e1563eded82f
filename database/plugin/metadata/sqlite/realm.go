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
	"errors"
	"fmt"

	"github.com/blinklabs-io/nftvoter/database/models"
	"github.com/blinklabs-io/nftvoter/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetRealm gets a realm by address. It returns nil if no realm exists at the address
func (d *MetadataStoreSqlite) GetRealm(
	address []byte,
	txn types.Txn,
) (*models.Realm, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Realm{}
	result := db.Where("address = ?", address).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetRealm creates or replaces the realm at realm.Address
func (d *MetadataStoreSqlite) SetRealm(
	realm *models.Realm,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"governance_program_id",
			"name",
			"community_mint",
			"council_mint",
			"authority",
		}),
	}).Create(realm)
	if result.Error != nil {
		return fmt.Errorf("failed to save realm: %w", result.Error)
	}
	return nil
}
