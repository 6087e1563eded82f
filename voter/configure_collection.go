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

package voter

import (
	"context"
	"errors"
	"fmt"

	"github.com/blinklabs-io/nftvoter/pubkey"
	"github.com/blinklabs-io/nftvoter/registrar"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrInvalidRegistrarRealm   = errors.New("invalid registrar realm")
	ErrInvalidCollectionWeight = errors.New("invalid collection weight")
	ErrInvalidCollectionSize   = errors.New("invalid collection size")
	ErrInvalidRealmAuthority   = errors.New("invalid realm authority")
)

// ConfigureCollectionRequest configures the vote weight of one collection
// within the registrar at address Registrar. RealmAuthority is the signer
// claiming to be the current authority of Realm
type ConfigureCollectionRequest struct {
	Registrar      pubkey.PublicKey
	Realm          pubkey.PublicKey
	RealmAuthority pubkey.PublicKey
	Collection     pubkey.PublicKey
	Weight         uint16
	Size           uint32
}

// ConfigureCollection inserts or replaces the config of a collection in a
// registrar, after checking that the signer is the authority of the realm
// owning the registrar. On any failure the stored registrar is left untouched.
// It returns the registrar as persisted
func (v *Voter) ConfigureCollection(
	ctx context.Context,
	req ConfigureCollectionRequest,
) (*registrar.Registrar, error) {
	ctx, span := v.tracer.Start(
		ctx,
		"ConfigureCollection",
		trace.WithAttributes(
			attribute.String("registrar", req.Registrar.String()),
			attribute.String("realm", req.Realm.String()),
			attribute.String("collection", req.Collection.String()),
			attribute.Int("weight", int(req.Weight)),
			attribute.Int64("size", int64(req.Size)),
		),
	)
	defer span.End()

	var ret *registrar.Registrar
	var position int
	err := v.store.UpdateRegistrar(
		req.Registrar,
		func(r *registrar.Registrar) error {
			if err := v.authorize(ctx, r, req); err != nil {
				return err
			}
			idx, err := r.ConfigureCollection(
				registrar.CollectionConfig{
					Collection: req.Collection,
					Weight:     req.Weight,
					Size:       req.Size,
				},
			)
			if err != nil {
				return err
			}
			position = idx
			ret = r.Clone()
			return nil
		},
	)
	v.metrics.configureCollection.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		v.logger.Debug(
			"collection configuration rejected",
			"component", "voter",
			"registrar", req.Registrar.String(),
			"collection", req.Collection.String(),
			"error", err,
		)
		return nil, err
	}
	span.SetAttributes(attribute.Int("position", position))
	v.logger.Info(
		"configured collection",
		"component", "voter",
		"registrar", req.Registrar.String(),
		"collection", req.Collection.String(),
		"weight", req.Weight,
		"size", req.Size,
		"position", position,
	)
	return ret, nil
}

// authorize runs the checks that precede the upsert, in order
func (v *Voter) authorize(
	ctx context.Context,
	r *registrar.Registrar,
	req ConfigureCollectionRequest,
) error {
	if r.Realm != req.Realm {
		return fmt.Errorf(
			"%w: registrar belongs to realm %s, not %s",
			ErrInvalidRegistrarRealm,
			r.Realm,
			req.Realm,
		)
	}
	if req.Weight == 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidCollectionWeight)
	}
	if req.Size == 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidCollectionSize)
	}
	authority, err := v.resolver.ResolveAuthority(
		ctx,
		r.GovernanceProgramID,
		req.Realm,
		r.GoverningTokenMint,
	)
	if err != nil {
		return err
	}
	if authority != req.RealmAuthority {
		return fmt.Errorf(
			"%w: %s is not the authority of realm %s",
			ErrInvalidRealmAuthority,
			req.RealmAuthority,
			req.Realm,
		)
	}
	return nil
}
