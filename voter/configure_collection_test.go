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

package voter_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/blinklabs-io/nftvoter/governance"
	"github.com/blinklabs-io/nftvoter/pubkey"
	"github.com/blinklabs-io/nftvoter/registrar"
	"github.com/blinklabs-io/nftvoter/voter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"
)

func testKey(b byte) pubkey.PublicKey {
	var ret pubkey.PublicKey
	copy(ret[:], bytes.Repeat([]byte{b}, pubkey.Size))
	return ret
}

var (
	programID     = testKey(0x01)
	realmAddr     = testKey(0x02)
	communityMint = testKey(0x03)
	authority     = testKey(0x05)
	collection    = testKey(0xc0)
)

// memStore keeps encoded registrars and only stores an update when fn succeeds
type memStore struct {
	records map[pubkey.PublicKey][]byte
}

func newMemStore() *memStore {
	return &memStore{records: make(map[pubkey.PublicKey][]byte)}
}

func (m *memStore) put(t *testing.T, r *registrar.Registrar) pubkey.PublicKey {
	t.Helper()
	data, err := r.MarshalBinary()
	require.NoError(t, err)
	key := r.Key()
	m.records[key] = data
	return key
}

func (m *memStore) UpdateRegistrar(
	key pubkey.PublicKey,
	fn func(*registrar.Registrar) error,
) error {
	data, ok := m.records[key]
	if !ok {
		return errors.New("registrar not found")
	}
	r := &registrar.Registrar{}
	if err := r.UnmarshalBinary(data); err != nil {
		return err
	}
	if err := fn(r); err != nil {
		return err
	}
	newData, err := r.MarshalBinary()
	if err != nil {
		return err
	}
	m.records[key] = newData
	return nil
}

type fakeResolver struct {
	authority pubkey.PublicKey
	err       error
	calls     int
}

func (f *fakeResolver) ResolveAuthority(
	_ context.Context,
	_ pubkey.PublicKey,
	_ pubkey.PublicKey,
	_ pubkey.PublicKey,
) (pubkey.PublicKey, error) {
	f.calls++
	if f.err != nil {
		return pubkey.PublicKey{}, f.err
	}
	return f.authority, nil
}

type testEnv struct {
	store    *memStore
	resolver *fakeResolver
	registry *prometheus.Registry
	voter    *voter.Voter
	key      pubkey.PublicKey
}

func newTestEnv(t *testing.T, maxCollections uint8) *testEnv {
	t.Helper()
	env := &testEnv{
		store:    newMemStore(),
		resolver: &fakeResolver{authority: authority},
		registry: prometheus.NewRegistry(),
	}
	env.key = env.store.put(
		t,
		registrar.New(programID, realmAddr, communityMint, maxCollections),
	)
	v, err := voter.New(
		env.store,
		env.resolver,
		voter.WithPromRegistry(env.registry),
	)
	require.NoError(t, err)
	env.voter = v
	return env
}

func (e *testEnv) request(weight uint16, size uint32) voter.ConfigureCollectionRequest {
	return voter.ConfigureCollectionRequest{
		Registrar:      e.key,
		Realm:          realmAddr,
		RealmAuthority: authority,
		Collection:     collection,
		Weight:         weight,
		Size:           size,
	}
}

func (e *testEnv) stored(t *testing.T) *registrar.Registrar {
	t.Helper()
	r := &registrar.Registrar{}
	require.NoError(t, r.UnmarshalBinary(e.store.records[e.key]))
	return r
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := voter.New(nil, &fakeResolver{})
	require.Error(t, err)
	_, err = voter.New(newMemStore(), nil)
	require.Error(t, err)
}

func TestConfigureCollectionEmpty(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	env := newTestEnv(t, 4)
	got, err := env.voter.ConfigureCollection(
		context.Background(),
		env.request(5, 100),
	)
	require.NoError(t, err)
	want := []registrar.CollectionConfig{
		{Collection: collection, Weight: 5, Size: 100},
	}
	assert.Equal(t, want, got.CollectionConfigs)
	assert.Equal(t, want, env.stored(t).CollectionConfigs)
	assert.Equal(
		t,
		float64(1),
		counterValue(t, env.registry, "ok"),
	)
}

func TestConfigureCollectionOverwrite(t *testing.T) {
	env := newTestEnv(t, 4)
	other := testKey(0xc1)
	req := env.request(1, 10)
	req.Collection = other
	_, err := env.voter.ConfigureCollection(context.Background(), req)
	require.NoError(t, err)
	_, err = env.voter.ConfigureCollection(context.Background(), env.request(5, 100))
	require.NoError(t, err)
	_, err = env.voter.ConfigureCollection(context.Background(), env.request(7, 50))
	require.NoError(t, err)
	assert.Equal(
		t,
		[]registrar.CollectionConfig{
			{Collection: other, Weight: 1, Size: 10},
			{Collection: collection, Weight: 7, Size: 50},
		},
		env.stored(t).CollectionConfigs,
	)
}

func TestConfigureCollectionIdempotent(t *testing.T) {
	env := newTestEnv(t, 2)
	_, err := env.voter.ConfigureCollection(context.Background(), env.request(3, 30))
	require.NoError(t, err)
	once := append([]byte{}, env.store.records[env.key]...)
	_, err = env.voter.ConfigureCollection(context.Background(), env.request(3, 30))
	require.NoError(t, err)
	assert.Equal(t, once, env.store.records[env.key])
}

func TestConfigureCollectionCapacity(t *testing.T) {
	const maxCollections = 3
	env := newTestEnv(t, maxCollections)
	for i := range maxCollections {
		req := env.request(uint16(i+1), 100)
		req.Collection = testKey(byte(0xd0 + i))
		_, err := env.voter.ConfigureCollection(context.Background(), req)
		require.NoError(t, err)
	}
	before := append([]byte{}, env.store.records[env.key]...)
	_, err := env.voter.ConfigureCollection(context.Background(), env.request(1, 1))
	require.ErrorIs(t, err, registrar.ErrCollectionConfigCapacityExceeded)
	assert.Equal(t, before, env.store.records[env.key])
	assert.Equal(
		t,
		float64(1),
		counterValue(t, env.registry, "capacity_exceeded"),
	)
}

func TestConfigureCollectionRejected(t *testing.T) {
	testDefs := []struct {
		name          string
		mutate        func(*voter.ConfigureCollectionRequest, *fakeResolver)
		err           error
		label         string
		resolverCalls int
	}{
		{
			name: "zero weight",
			mutate: func(req *voter.ConfigureCollectionRequest, _ *fakeResolver) {
				req.Weight = 0
			},
			err:   voter.ErrInvalidCollectionWeight,
			label: "invalid_collection_weight",
		},
		{
			name: "zero size",
			mutate: func(req *voter.ConfigureCollectionRequest, _ *fakeResolver) {
				req.Size = 0
			},
			err:   voter.ErrInvalidCollectionSize,
			label: "invalid_collection_size",
		},
		{
			name: "realm mismatch wins over zero weight and size",
			mutate: func(req *voter.ConfigureCollectionRequest, _ *fakeResolver) {
				req.Realm = testKey(0x42)
				req.Weight = 0
				req.Size = 0
			},
			err:   voter.ErrInvalidRegistrarRealm,
			label: "invalid_registrar_realm",
		},
		{
			name: "wrong authority",
			mutate: func(req *voter.ConfigureCollectionRequest, _ *fakeResolver) {
				req.RealmAuthority = testKey(0x66)
			},
			err:           voter.ErrInvalidRealmAuthority,
			label:         "invalid_realm_authority",
			resolverCalls: 1,
		},
		{
			name: "authority unset",
			mutate: func(_ *voter.ConfigureCollectionRequest, r *fakeResolver) {
				r.err = governance.ErrRealmAuthorityUnset
			},
			err:           governance.ErrRealmAuthorityUnset,
			label:         "realm_authority_unset",
			resolverCalls: 1,
		},
		{
			name: "lookup failed",
			mutate: func(_ *voter.ConfigureCollectionRequest, r *fakeResolver) {
				r.err = governance.ErrRealmLookupFailed
			},
			err:           governance.ErrRealmLookupFailed,
			label:         "realm_lookup_failed",
			resolverCalls: 1,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			env := newTestEnv(t, 4)
			_, err := env.voter.ConfigureCollection(
				context.Background(),
				env.request(1, 1),
			)
			require.NoError(t, err)
			before := append([]byte{}, env.store.records[env.key]...)
			env.resolver.calls = 0

			req := env.request(9, 9)
			testDef.mutate(&req, env.resolver)
			got, err := env.voter.ConfigureCollection(context.Background(), req)
			require.ErrorIs(t, err, testDef.err)
			assert.Nil(t, got)
			assert.Equal(t, before, env.store.records[env.key])
			assert.Equal(t, testDef.resolverCalls, env.resolver.calls)
			assert.Equal(
				t,
				float64(1),
				counterValue(t, env.registry, testDef.label),
			)
		})
	}
}

func TestConfigureCollectionSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() {
		require.NoError(t, provider.Shutdown(context.Background()))
	}()
	store := newMemStore()
	key := store.put(t, registrar.New(programID, realmAddr, communityMint, 1))
	v, err := voter.New(
		store,
		&fakeResolver{authority: authority},
		voter.WithTracerProvider(provider),
	)
	require.NoError(t, err)
	req := voter.ConfigureCollectionRequest{
		Registrar:      key,
		Realm:          realmAddr,
		RealmAuthority: testKey(0x66),
		Collection:     collection,
		Weight:         1,
		Size:           1,
	}
	_, err = v.ConfigureCollection(context.Background(), req)
	require.ErrorIs(t, err, voter.ErrInvalidRealmAuthority)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ConfigureCollection", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestMetricsShareRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	for range 2 {
		_, err := voter.New(
			newMemStore(),
			&fakeResolver{},
			voter.WithPromRegistry(registry),
		)
		require.NoError(t, err)
	}
	count, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// counterValue returns the configure collection counter for a result label
func counterValue(
	t *testing.T,
	registry *prometheus.Registry,
	label string,
) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "nftvoter_configure_collection_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == "result" && pair.GetValue() == label {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("no metric with result %q", label)
	return 0
}
