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

// Package registrar contains the registrar record of the NFT voter and the
// collection configurations it owns.
package registrar

import (
	"errors"
	"fmt"
	"slices"

	"github.com/blinklabs-io/nftvoter/pubkey"
)

const (
	// CollectionConfigReservedSize is the padding kept at the end of every collection config
	CollectionConfigReservedSize = 8
	// RegistrarReservedSize is the padding kept at the end of the registrar record
	RegistrarReservedSize = 128
)

var ErrCollectionConfigCapacityExceeded = errors.New(
	"collection config capacity exceeded",
)

// CollectionConfig describes how one NFT collection contributes to vote weight.
// Weight is applied per held token of the collection and Size is the expected
// number of tokens in the collection
type CollectionConfig struct {
	Collection pubkey.PublicKey                   `yaml:"collection"`
	Weight     uint16                             `yaml:"weight"`
	Size       uint32                             `yaml:"size"`
	Reserved   [CollectionConfigReservedSize]byte `yaml:"-"`
}

// Registrar owns the collection configs for one realm and governing token mint
type Registrar struct {
	GovernanceProgramID pubkey.PublicKey            `yaml:"governanceProgramId"`
	Realm               pubkey.PublicKey            `yaml:"realm"`
	GoverningTokenMint  pubkey.PublicKey            `yaml:"governingTokenMint"`
	MaxCollections      uint8                       `yaml:"maxCollections"`
	CollectionConfigs   []CollectionConfig          `yaml:"collectionConfigs"`
	Reserved            [RegistrarReservedSize]byte `yaml:"-"`
}

// New returns an empty registrar with room for maxCollections collection configs
func New(
	governanceProgramID pubkey.PublicKey,
	realm pubkey.PublicKey,
	governingTokenMint pubkey.PublicKey,
	maxCollections uint8,
) *Registrar {
	return &Registrar{
		GovernanceProgramID: governanceProgramID,
		Realm:               realm,
		GoverningTokenMint:  governingTokenMint,
		MaxCollections:      maxCollections,
		CollectionConfigs:   make([]CollectionConfig, 0, maxCollections),
	}
}

// Clone returns a deep copy of the registrar
func (r *Registrar) Clone() *Registrar {
	ret := *r
	ret.CollectionConfigs = slices.Clone(r.CollectionConfigs)
	return &ret
}

// CollectionConfigIndex returns the position of the config for the given
// collection, or -1 if the collection is not configured
func (r *Registrar) CollectionConfigIndex(collection pubkey.PublicKey) int {
	return slices.IndexFunc(
		r.CollectionConfigs,
		func(cc CollectionConfig) bool {
			return cc.Collection == collection
		},
	)
}

// CollectionConfig returns the config for the given collection, if any
func (r *Registrar) CollectionConfig(
	collection pubkey.PublicKey,
) (CollectionConfig, bool) {
	idx := r.CollectionConfigIndex(collection)
	if idx < 0 {
		return CollectionConfig{}, false
	}
	return r.CollectionConfigs[idx], true
}

// ConfigureCollection inserts or replaces the config for cfg.Collection and
// returns its position. An existing config is overwritten in place. A new
// collection is appended, unless the registrar is already at capacity. The
// reserved bytes of the stored config are always zeroed
func (r *Registrar) ConfigureCollection(cfg CollectionConfig) (int, error) {
	cfg.Reserved = [CollectionConfigReservedSize]byte{}
	if idx := r.CollectionConfigIndex(cfg.Collection); idx >= 0 {
		r.CollectionConfigs[idx] = cfg
		return idx, nil
	}
	if len(r.CollectionConfigs) >= int(r.MaxCollections) {
		return -1, fmt.Errorf(
			"%w: registrar holds %d of %d collections",
			ErrCollectionConfigCapacityExceeded,
			len(r.CollectionConfigs),
			r.MaxCollections,
		)
	}
	r.CollectionConfigs = append(r.CollectionConfigs, cfg)
	return len(r.CollectionConfigs) - 1, nil
}
