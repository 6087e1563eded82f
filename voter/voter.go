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

// Package voter implements the administrative operations of the NFT voter
// plugin for governance realms.
package voter

import (
	"errors"
	"io"
	"log/slog"

	"github.com/blinklabs-io/nftvoter/governance"
	"github.com/blinklabs-io/nftvoter/pubkey"
	"github.com/blinklabs-io/nftvoter/registrar"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/blinklabs-io/nftvoter/voter"

// RegistrarStore provides exclusive read-modify-write access to registrars.
// UpdateRegistrar must persist the registrar only if fn returns nil, and must
// discard every write of a failed update
type RegistrarStore interface {
	UpdateRegistrar(
		key pubkey.PublicKey,
		fn func(*registrar.Registrar) error,
	) error
}

type Voter struct {
	store          RegistrarStore
	resolver       governance.RealmAuthorityResolver
	logger         *slog.Logger
	promRegistry   prometheus.Registerer
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
	metrics        *voterMetrics
}

type VoterOptionFunc func(*Voter)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) VoterOptionFunc {
	return func(v *Voter) {
		v.logger = logger
	}
}

// WithPromRegistry specifies the prometheus registry to use for metrics
func WithPromRegistry(registry prometheus.Registerer) VoterOptionFunc {
	return func(v *Voter) {
		v.promRegistry = registry
	}
}

// WithTracerProvider specifies the tracer provider. The global provider is used by default
func WithTracerProvider(provider trace.TracerProvider) VoterOptionFunc {
	return func(v *Voter) {
		v.tracerProvider = provider
	}
}

func New(
	store RegistrarStore,
	resolver governance.RealmAuthorityResolver,
	opts ...VoterOptionFunc,
) (*Voter, error) {
	if store == nil {
		return nil, errors.New("no registrar store provided")
	}
	if resolver == nil {
		return nil, errors.New("no realm authority resolver provided")
	}
	v := &Voter{
		store:    store,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		v.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if v.tracerProvider == nil {
		v.tracerProvider = otel.GetTracerProvider()
	}
	v.tracer = v.tracerProvider.Tracer(tracerName)
	metrics, err := newVoterMetrics(v.promRegistry)
	if err != nil {
		return nil, err
	}
	v.metrics = metrics
	return v, nil
}
