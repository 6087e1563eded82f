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
	"errors"

	"github.com/blinklabs-io/nftvoter/governance"
	"github.com/blinklabs-io/nftvoter/registrar"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOk    = "ok"
	resultError = "error"
)

type voterMetrics struct {
	configureCollection *prometheus.CounterVec
}

func newVoterMetrics(registry prometheus.Registerer) (*voterMetrics, error) {
	m := &voterMetrics{
		configureCollection: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nftvoter_configure_collection_total",
				Help: "Total number of collection configuration requests by result",
			},
			[]string{"result"},
		),
	}
	if registry == nil {
		return m, nil
	}
	if err := registry.Register(m.configureCollection); err != nil {
		// Share the counter with another voter on the same registry
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			if existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec); ok {
				m.configureCollection = existing
				return m, nil
			}
		}
		return nil, err
	}
	return m, nil
}

// resultLabel maps an operation error to a bounded metric label
func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultOk
	case errors.Is(err, ErrInvalidRegistrarRealm):
		return "invalid_registrar_realm"
	case errors.Is(err, ErrInvalidCollectionWeight):
		return "invalid_collection_weight"
	case errors.Is(err, ErrInvalidCollectionSize):
		return "invalid_collection_size"
	case errors.Is(err, ErrInvalidRealmAuthority):
		return "invalid_realm_authority"
	case errors.Is(err, governance.ErrRealmAuthorityUnset):
		return "realm_authority_unset"
	case errors.Is(err, governance.ErrRealmLookupFailed):
		return "realm_lookup_failed"
	case errors.Is(err, registrar.ErrCollectionConfigCapacityExceeded):
		return "capacity_exceeded"
	default:
		return resultError
	}
}
