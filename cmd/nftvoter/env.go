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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/nftvoter/database"
	"github.com/blinklabs-io/nftvoter/governance"
	"github.com/blinklabs-io/nftvoter/internal/config"
	"github.com/blinklabs-io/nftvoter/voter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// env holds the resources shared by the subcommands
type env struct {
	cfg             *config.Config
	logger          *slog.Logger
	db              *database.Database
	promRegistry    *prometheus.Registry
	tracingShutdown func(context.Context) error
}

func openEnv(ctx context.Context, cfg *config.Config) (*env, error) {
	logger := commonRun()
	e := &env{
		cfg:    cfg,
		logger: logger,
	}
	if cfg.MetricsEnabled {
		e.promRegistry = prometheus.NewRegistry()
	}
	shutdown, err := setupTracing(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup tracing: %w", err)
	}
	e.tracingShutdown = shutdown
	dbConfig := &database.Config{
		DataDir:       cfg.DatabasePath,
		Logger:        logger,
		BlobCacheSize: cfg.BlobCacheSize,
		Tracing:       cfg.Tracing,
	}
	// Avoid storing a typed nil in the interface
	if e.promRegistry != nil {
		dbConfig.PromRegistry = e.promRegistry
	}
	db, err := database.New(dbConfig)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		_ = shutdown(ctx)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	e.db = db
	return e, nil
}

func (e *env) voter() (*voter.Voter, error) {
	opts := []voter.VoterOptionFunc{
		voter.WithLogger(e.logger),
	}
	if e.promRegistry != nil {
		opts = append(opts, voter.WithPromRegistry(e.promRegistry))
	}
	return voter.New(e.db, governance.NewStoreResolver(e.db), opts...)
}

// Close writes out collected metrics, flushes spans and closes the database
func (e *env) Close(ctx context.Context, metricsOut io.Writer) error {
	var err error
	if e.promRegistry != nil {
		err = errors.Join(err, writeMetrics(e.promRegistry, metricsOut))
	}
	err = errors.Join(err, e.tracingShutdown(ctx))
	err = errors.Join(err, e.db.Close())
	return err
}

func writeMetrics(registry prometheus.Gatherer, w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
