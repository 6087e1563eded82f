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

package badger

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestWithDataDir(t *testing.T) {
	b := &BlobStoreBadger{}
	WithDataDir("/tmp/test")(b)
	assert.Equal(t, "/tmp/test", b.dataDir)
}

func TestWithCacheSizes(t *testing.T) {
	b := &BlobStoreBadger{}
	WithBlockCacheSize(123456789)(b)
	WithIndexCacheSize(987654321)(b)
	assert.Equal(t, uint64(123456789), b.blockCacheSize)
	assert.Equal(t, uint64(987654321), b.indexCacheSize)
}

func TestWithLogger(t *testing.T) {
	b := &BlobStoreBadger{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	WithLogger(logger)(b)
	assert.Same(t, logger, b.logger)
}

func TestWithPromRegistry(t *testing.T) {
	b := &BlobStoreBadger{}
	registry := prometheus.NewRegistry()
	WithPromRegistry(registry)(b)
	assert.Equal(t, registry, b.promRegistry)
}

func TestWithSyncWrites(t *testing.T) {
	b := &BlobStoreBadger{}
	WithSyncWrites(true)(b)
	assert.True(t, b.syncWrites)
	WithSyncWrites(false)(b)
	assert.False(t, b.syncWrites)
}
