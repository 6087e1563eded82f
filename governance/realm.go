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

// Package governance exposes the read contract of the governance program that
// owns realms: looking up the current authority of a realm.
package governance

import (
	"context"
	"errors"
	"fmt"

	"github.com/blinklabs-io/nftvoter/pubkey"
)

var (
	ErrRealmLookupFailed   = errors.New("realm lookup failed")
	ErrRealmAuthorityUnset = errors.New("realm authority not set")
	ErrRealmNotFound       = errors.New("realm not found")
)

// Realm is the subset of a governance realm needed to resolve its authority
type Realm struct {
	Address             pubkey.PublicKey  `yaml:"address"`
	GovernanceProgramID pubkey.PublicKey  `yaml:"governanceProgramId"`
	Name                string            `yaml:"name"`
	CommunityMint       pubkey.PublicKey  `yaml:"communityMint"`
	CouncilMint         *pubkey.PublicKey `yaml:"councilMint,omitempty"`
	Authority           *pubkey.PublicKey `yaml:"authority,omitempty"`
}

// IsGoverningTokenMint returns true if mint is the community or council mint of the realm
func (r *Realm) IsGoverningTokenMint(mint pubkey.PublicKey) bool {
	if r.CommunityMint == mint {
		return true
	}
	return r.CouncilMint != nil && *r.CouncilMint == mint
}

// RealmAuthorityResolver returns the current authority of a realm. Lookups are
// read-only and are not cancelled by the context, which is carried for tracing
type RealmAuthorityResolver interface {
	ResolveAuthority(
		ctx context.Context,
		governanceProgramID pubkey.PublicKey,
		realm pubkey.PublicKey,
		governingTokenMint pubkey.PublicKey,
	) (pubkey.PublicKey, error)
}

// RealmSource provides read access to realm records. It returns
// ErrRealmNotFound when no realm exists at the address
type RealmSource interface {
	GetRealm(address pubkey.PublicKey) (*Realm, error)
}

// StoreResolver resolves realm authorities from a RealmSource
type StoreResolver struct {
	source RealmSource
}

func NewStoreResolver(source RealmSource) *StoreResolver {
	return &StoreResolver{source: source}
}

func (s *StoreResolver) ResolveAuthority(
	_ context.Context,
	governanceProgramID pubkey.PublicKey,
	realmAddr pubkey.PublicKey,
	governingTokenMint pubkey.PublicKey,
) (pubkey.PublicKey, error) {
	realm, err := s.source.GetRealm(realmAddr)
	if err != nil {
		return pubkey.PublicKey{}, fmt.Errorf(
			"%w: realm %s: %w",
			ErrRealmLookupFailed,
			realmAddr,
			err,
		)
	}
	return AuthorityForGoverningTokenMint(
		realm,
		governanceProgramID,
		governingTokenMint,
	)
}

// AuthorityForGoverningTokenMint checks that the realm is owned by the
// governance program and governed by the mint, and returns its authority
func AuthorityForGoverningTokenMint(
	realm *Realm,
	governanceProgramID pubkey.PublicKey,
	governingTokenMint pubkey.PublicKey,
) (pubkey.PublicKey, error) {
	if realm.GovernanceProgramID != governanceProgramID {
		return pubkey.PublicKey{}, fmt.Errorf(
			"%w: realm %s is owned by program %s, not %s",
			ErrRealmLookupFailed,
			realm.Address,
			realm.GovernanceProgramID,
			governanceProgramID,
		)
	}
	if !realm.IsGoverningTokenMint(governingTokenMint) {
		return pubkey.PublicKey{}, fmt.Errorf(
			"%w: mint %s does not govern realm %s",
			ErrRealmLookupFailed,
			governingTokenMint,
			realm.Address,
		)
	}
	if realm.Authority == nil {
		return pubkey.PublicKey{}, fmt.Errorf(
			"%w: realm %s",
			ErrRealmAuthorityUnset,
			realm.Address,
		)
	}
	return *realm.Authority, nil
}
