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
	"errors"
	"fmt"

	"github.com/blinklabs-io/nftvoter/database/models"
	"github.com/blinklabs-io/nftvoter/database/types"
	"github.com/blinklabs-io/nftvoter/pubkey"
	"github.com/blinklabs-io/nftvoter/registrar"
)

var (
	ErrRegistrarNotFound = errors.New("registrar not found")
	ErrRegistrarExists   = errors.New("registrar already exists")
)

// GetRegistrar loads the registrar at the given address
func (d *Database) GetRegistrar(
	key pubkey.PublicKey,
	txn *Txn,
) (*registrar.Registrar, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	data, err := d.Blob().Get(txn.Blob(), types.RegistrarBlobKey(key.Bytes()))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRegistrarNotFound, key)
		}
		return nil, err
	}
	ret := &registrar.Registrar{}
	if err := ret.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("registrar %s: %w", key, err)
	}
	return ret, nil
}

// CreateRegistrar stores a new registrar at its derived address and returns
// that address. It fails if a registrar already exists there
func (d *Database) CreateRegistrar(
	r *registrar.Registrar,
	txn *Txn,
) (pubkey.PublicKey, error) {
	key := r.Key()
	create := func(txn *Txn) error {
		_, err := d.GetRegistrar(key, txn)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrRegistrarExists, key)
		}
		if !errors.Is(err, ErrRegistrarNotFound) {
			return err
		}
		return d.setRegistrar(key, r, txn)
	}
	if txn == nil {
		return key, d.Transaction(true).Do(create)
	}
	return key, create(txn)
}

// UpdateRegistrar loads the registrar at the given address, applies fn to it
// and stores the result. If fn or any write fails, nothing is stored
func (d *Database) UpdateRegistrar(
	key pubkey.PublicKey,
	fn func(*registrar.Registrar) error,
) error {
	return d.Transaction(true).Do(func(txn *Txn) error {
		r, err := d.GetRegistrar(key, txn)
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
		return d.setRegistrar(key, r, txn)
	})
}

// RegistrarsForCollection returns the addresses of the registrars that configure the collection
func (d *Database) RegistrarsForCollection(
	collection pubkey.PublicKey,
) ([]pubkey.PublicKey, error) {
	configs, err := d.Metadata().GetCollectionConfigsByCollection(
		collection.Bytes(),
		nil,
	)
	if err != nil {
		return nil, err
	}
	ret := make([]pubkey.PublicKey, 0, len(configs))
	for _, cc := range configs {
		key, err := pubkey.New(cc.Registrar)
		if err != nil {
			return nil, err
		}
		ret = append(ret, key)
	}
	return ret, nil
}

func (d *Database) setRegistrar(
	key pubkey.PublicKey,
	r *registrar.Registrar,
	txn *Txn,
) error {
	data, err := r.MarshalBinary()
	if err != nil {
		return err
	}
	if err := d.Blob().Set(txn.Blob(), types.RegistrarBlobKey(key.Bytes()), data); err != nil {
		return fmt.Errorf("failed to save registrar: %w", err)
	}
	return d.setCollectionIndex(key, r, txn)
}

// setCollectionIndex replaces the index rows of a registrar with its current collection configs
func (d *Database) setCollectionIndex(
	key pubkey.PublicKey,
	r *registrar.Registrar,
	txn *Txn,
) error {
	configs := make([]models.CollectionConfig, 0, len(r.CollectionConfigs))
	for i, cc := range r.CollectionConfigs {
		configs = append(
			configs,
			models.CollectionConfig{
				Position:   uint8(i), //nolint:gosec // bounded by MaxCollections
				Collection: cc.Collection.Bytes(),
				Weight:     cc.Weight,
				Size:       cc.Size,
			},
		)
	}
	return d.Metadata().SetCollectionConfigs(key.Bytes(), configs, txn.Metadata())
}
