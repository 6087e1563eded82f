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

package database

import (
	"fmt"

	"github.com/blinklabs-io/nftvoter/database/models"
	"github.com/blinklabs-io/nftvoter/governance"
	"github.com/blinklabs-io/nftvoter/pubkey"
)

// GetRealm loads a realm. It returns governance.ErrRealmNotFound if no realm exists at the address
func (d *Database) GetRealm(address pubkey.PublicKey) (*governance.Realm, error) {
	tmpRealm, err := d.Metadata().GetRealm(address.Bytes(), nil)
	if err != nil {
		return nil, err
	}
	if tmpRealm == nil {
		return nil, governance.ErrRealmNotFound
	}
	return realmFromModel(tmpRealm)
}

// SetRealm creates or replaces a realm
func (d *Database) SetRealm(realm *governance.Realm, txn *Txn) error {
	tmpRealm := &models.Realm{
		Address:             realm.Address.Bytes(),
		GovernanceProgramID: realm.GovernanceProgramID.Bytes(),
		Name:                realm.Name,
		CommunityMint:       realm.CommunityMint.Bytes(),
	}
	if realm.CouncilMint != nil {
		tmpRealm.CouncilMint = realm.CouncilMint.Bytes()
	}
	if realm.Authority != nil {
		tmpRealm.Authority = realm.Authority.Bytes()
	}
	if txn == nil {
		return d.Metadata().SetRealm(tmpRealm, nil)
	}
	return d.Metadata().SetRealm(tmpRealm, txn.Metadata())
}

func realmFromModel(m *models.Realm) (*governance.Realm, error) {
	var err error
	ret := &governance.Realm{
		Name: m.Name,
	}
	if ret.Address, err = pubkey.New(m.Address); err != nil {
		return nil, fmt.Errorf("realm address: %w", err)
	}
	if ret.GovernanceProgramID, err = pubkey.New(m.GovernanceProgramID); err != nil {
		return nil, fmt.Errorf("realm governance program: %w", err)
	}
	if ret.CommunityMint, err = pubkey.New(m.CommunityMint); err != nil {
		return nil, fmt.Errorf("realm community mint: %w", err)
	}
	if len(m.CouncilMint) > 0 {
		tmpKey, err := pubkey.New(m.CouncilMint)
		if err != nil {
			return nil, fmt.Errorf("realm council mint: %w", err)
		}
		ret.CouncilMint = &tmpKey
	}
	if len(m.Authority) > 0 {
		tmpKey, err := pubkey.New(m.Authority)
		if err != nil {
			return nil, fmt.Errorf("realm authority: %w", err)
		}
		ret.Authority = &tmpKey
	}
	return ret, nil
}
