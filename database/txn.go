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
	"sync"
	"time"

	"github.com/blinklabs-io/nftvoter/database/types"
)

// ErrPartialCommit is returned when registrar records were committed but the
// collection index was not. The index is rebuilt the next time the database is opened
var ErrPartialCommit = errors.New("partial commit")

// Txn coordinates a blob store transaction with a metadata store transaction.
// Read-only transactions only hold a blob store snapshot, and their metadata
// reads run outside of any transaction
type Txn struct {
	db        *Database
	blobTxn   types.Txn
	metaTxn   types.Txn
	lock      sync.Mutex
	done      bool
	readWrite bool
}

func NewTxn(db *Database, readWrite bool) *Txn {
	t := &Txn{
		db:        db,
		blobTxn:   db.Blob().NewTransaction(readWrite),
		readWrite: readWrite,
	}
	if readWrite {
		t.metaTxn = db.Metadata().Transaction()
	}
	return t
}

// Metadata returns the metadata transaction handle, which is nil for read-only transactions
func (t *Txn) Metadata() types.Txn {
	return t.metaTxn
}

// Blob returns the blob transaction handle
func (t *Txn) Blob() types.Txn {
	return t.blobTxn
}

// Do executes the specified function in the context of the transaction. Any errors returned will result
// in the transaction being rolled back
func (t *Txn) Do(fn func(*Txn) error) error {
	if err := fn(t); err != nil {
		if err2 := t.Rollback(); err2 != nil {
			return fmt.Errorf(
				"rollback failed: %w: original error: %w",
				err2,
				err,
			)
		}
		return err
	}
	if err := t.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

// Commit stamps both stores with the same commit timestamp and commits the
// blob store first. If that fails, the metadata transaction is discarded
func (t *Txn) Commit() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	if !t.readWrite {
		return t.discard()
	}
	if err := t.db.updateCommitTimestamp(t, time.Now().UnixMilli()); err != nil {
		return errors.Join(
			fmt.Errorf("failed to update commit timestamp: %w", err),
			t.discard(),
		)
	}
	if err := t.blobTxn.Commit(); err != nil {
		return errors.Join(
			fmt.Errorf("blob commit failed: %w", err),
			t.discard(),
		)
	}
	if err := t.metaTxn.Commit(); err != nil {
		t.db.logger.Error(
			"collection index commit failed after registrar commit",
			"component", "database",
			"error", err,
		)
		_ = t.metaTxn.Rollback()
		return fmt.Errorf("%w: %w", ErrPartialCommit, err)
	}
	return nil
}

func (t *Txn) Rollback() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	return t.discard()
}

func (t *Txn) discard() error {
	var err error
	if rbErr := t.blobTxn.Rollback(); rbErr != nil {
		err = errors.Join(err, fmt.Errorf("blob rollback: %w", rbErr))
	}
	if t.metaTxn != nil {
		if rbErr := t.metaTxn.Rollback(); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("metadata rollback: %w", rbErr))
		}
	}
	return err
}

// Release rolls back the transaction if it is still open and logs any
// failure, which makes it safe to defer
func (t *Txn) Release() {
	if err := t.Rollback(); err != nil {
		t.db.logger.Debug(
			"transaction release failed",
			"component", "database",
			"error", err,
			"read_write", t.readWrite,
		)
	}
}
