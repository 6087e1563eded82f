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

	"github.com/blinklabs-io/nftvoter/database/types"
	"github.com/blinklabs-io/nftvoter/pubkey"
	"github.com/blinklabs-io/nftvoter/registrar"
)

// CommitTimestampError reports stores that did not see the same last commit
type CommitTimestampError struct {
	MetadataTimestamp int64
	BlobTimestamp     int64
}

func (e CommitTimestampError) Error() string {
	return fmt.Sprintf(
		"commit timestamp mismatch: %d (metadata) != %d (blob)",
		e.MetadataTimestamp,
		e.BlobTimestamp,
	)
}

func (d *Database) checkCommitTimestamp() error {
	metadataTimestamp, err := d.Metadata().GetCommitTimestamp()
	if err != nil {
		return fmt.Errorf("failed to get metadata timestamp: %w", err)
	}
	blobTimestamp, err := d.Blob().GetCommitTimestamp()
	if err != nil {
		return fmt.Errorf("failed to get blob timestamp: %w", err)
	}
	if blobTimestamp != metadataTimestamp {
		return CommitTimestampError{
			MetadataTimestamp: metadataTimestamp,
			BlobTimestamp:     blobTimestamp,
		}
	}
	return nil
}

// recoverCommitTimestamp repairs a collection index left behind by a partial
// commit. The blob store commits first, so only a newer blob timestamp is recoverable
func (d *Database) recoverCommitTimestamp(err error) error {
	var tsErr CommitTimestampError
	if !errors.As(err, &tsErr) || tsErr.BlobTimestamp < tsErr.MetadataTimestamp {
		return err
	}
	d.logger.Warn(
		"collection index is behind registrar records, rebuilding",
		"component", "database",
		"metadata_timestamp", tsErr.MetadataTimestamp,
		"blob_timestamp", tsErr.BlobTimestamp,
	)
	return d.rebuildCollectionIndex()
}

// rebuildCollectionIndex rewrites the collection index rows of every stored registrar
func (d *Database) rebuildCollectionIndex() error {
	prefix := []byte(types.RegistrarBlobKeyPrefix)
	count := 0
	err := d.Transaction(true).Do(func(txn *Txn) error {
		return d.Blob().ForEachWithPrefix(
			txn.Blob(),
			prefix,
			func(key, val []byte) error {
				addr, err := pubkey.New(key[len(prefix):])
				if err != nil {
					return fmt.Errorf("registrar key %x: %w", key, err)
				}
				r := &registrar.Registrar{}
				if err := r.UnmarshalBinary(val); err != nil {
					return fmt.Errorf("registrar %s: %w", addr, err)
				}
				count++
				return d.setCollectionIndex(addr, r, txn)
			},
		)
	})
	if err != nil {
		return fmt.Errorf("failed to rebuild collection index: %w", err)
	}
	d.logger.Info(
		fmt.Sprintf("rebuilt collection index of %d registrars", count),
		"component", "database",
	)
	return nil
}

func (d *Database) updateCommitTimestamp(txn *Txn, timestamp int64) error {
	if err := d.Metadata().SetCommitTimestamp(timestamp, txn.Metadata()); err != nil {
		return err
	}
	return d.Blob().SetCommitTimestamp(timestamp, txn.Blob())
}
