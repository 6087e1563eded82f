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

package registrar

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/blinklabs-io/nftvoter/pubkey"
)

// Record layout (little endian):
//
//	discriminator          [8]byte
//	governance program id  [32]byte
//	realm                  [32]byte
//	governing token mint   [32]byte
//	max collections        uint8
//	collection count       uint32
//	collection configs     [count]CollectionConfig
//	reserved               [128]byte
//
// CollectionConfig layout:
//
//	collection  [32]byte
//	weight      uint16
//	size        uint32
//	reserved    [8]byte
const (
	DiscriminatorSize      = 8
	CollectionConfigSize   = pubkey.Size + 2 + 4 + CollectionConfigReservedSize
	registrarHeaderSize    = DiscriminatorSize + 3*pubkey.Size + 1 + 4
	registrarFixedSize     = registrarHeaderSize + RegistrarReservedSize
	collectionCountOffset  = DiscriminatorSize + 3*pubkey.Size + 1
	maxCollectionsOffset   = DiscriminatorSize + 3*pubkey.Size
	collectionConfigOffset = registrarHeaderSize
)

var Discriminator = [DiscriminatorSize]byte{'n', 'f', 't', 'v', 'r', 'e', 'g', 'r'}

var ErrInvalidRecord = errors.New("invalid registrar record")

// RecordSize returns the encoded size of a registrar holding n collection configs
func RecordSize(n int) int {
	return registrarFixedSize + n*CollectionConfigSize
}

// MarshalBinary encodes the collection config in its fixed record layout
func (c CollectionConfig) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, CollectionConfigSize)
	return c.appendBinary(buf), nil
}

func (c CollectionConfig) appendBinary(buf []byte) []byte {
	buf = append(buf, c.Collection[:]...)
	buf = binary.LittleEndian.AppendUint16(buf, c.Weight)
	buf = binary.LittleEndian.AppendUint32(buf, c.Size)
	buf = append(buf, c.Reserved[:]...)
	return buf
}

// UnmarshalBinary decodes a collection config from its fixed record layout
func (c *CollectionConfig) UnmarshalBinary(data []byte) error {
	if len(data) != CollectionConfigSize {
		return fmt.Errorf(
			"%w: collection config is %d bytes, expected %d",
			ErrInvalidRecord,
			len(data),
			CollectionConfigSize,
		)
	}
	copy(c.Collection[:], data[0:pubkey.Size])
	c.Weight = binary.LittleEndian.Uint16(data[pubkey.Size:])
	c.Size = binary.LittleEndian.Uint32(data[pubkey.Size+2:])
	copy(c.Reserved[:], data[pubkey.Size+6:])
	return nil
}

// MarshalBinary encodes the registrar in its fixed record layout
func (r *Registrar) MarshalBinary() ([]byte, error) {
	if len(r.CollectionConfigs) > int(r.MaxCollections) {
		return nil, fmt.Errorf(
			"%w: %d collection configs exceed capacity of %d",
			ErrInvalidRecord,
			len(r.CollectionConfigs),
			r.MaxCollections,
		)
	}
	buf := make([]byte, 0, RecordSize(len(r.CollectionConfigs)))
	buf = append(buf, Discriminator[:]...)
	buf = append(buf, r.GovernanceProgramID[:]...)
	buf = append(buf, r.Realm[:]...)
	buf = append(buf, r.GoverningTokenMint[:]...)
	buf = append(buf, r.MaxCollections)
	buf = binary.LittleEndian.AppendUint32(
		buf,
		uint32(len(r.CollectionConfigs)), //nolint:gosec // bounded by MaxCollections
	)
	for _, cc := range r.CollectionConfigs {
		buf = cc.appendBinary(buf)
	}
	buf = append(buf, r.Reserved[:]...)
	return buf, nil
}

// UnmarshalBinary decodes a registrar from its fixed record layout
func (r *Registrar) UnmarshalBinary(data []byte) error {
	if len(data) < registrarFixedSize {
		return fmt.Errorf(
			"%w: record is %d bytes, minimum is %d",
			ErrInvalidRecord,
			len(data),
			registrarFixedSize,
		)
	}
	if !bytes.Equal(data[:DiscriminatorSize], Discriminator[:]) {
		return fmt.Errorf("%w: bad discriminator", ErrInvalidRecord)
	}
	maxCollections := data[maxCollectionsOffset]
	count := binary.LittleEndian.Uint32(data[collectionCountOffset:])
	if count > uint32(maxCollections) {
		return fmt.Errorf(
			"%w: %d collection configs exceed capacity of %d",
			ErrInvalidRecord,
			count,
			maxCollections,
		)
	}
	if len(data) != RecordSize(int(count)) {
		return fmt.Errorf(
			"%w: record is %d bytes, expected %d",
			ErrInvalidRecord,
			len(data),
			RecordSize(int(count)),
		)
	}
	off := DiscriminatorSize
	copy(r.GovernanceProgramID[:], data[off:off+pubkey.Size])
	off += pubkey.Size
	copy(r.Realm[:], data[off:off+pubkey.Size])
	off += pubkey.Size
	copy(r.GoverningTokenMint[:], data[off:off+pubkey.Size])
	r.MaxCollections = maxCollections
	r.CollectionConfigs = make([]CollectionConfig, count, maxCollections)
	off = collectionConfigOffset
	for i := range r.CollectionConfigs {
		if err := r.CollectionConfigs[i].UnmarshalBinary(
			data[off : off+CollectionConfigSize],
		); err != nil {
			return err
		}
		off += CollectionConfigSize
	}
	copy(r.Reserved[:], data[off:])
	return nil
}
