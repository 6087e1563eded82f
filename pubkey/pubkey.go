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

package pubkey

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Size is the length in bytes of an account identity
const Size = 32

var ErrInvalidPublicKey = errors.New("invalid public key")

// PublicKey identifies an account (realm, mint, collection, signer, program)
type PublicKey [Size]byte

// New returns a PublicKey from a 32-byte slice
func New(b []byte) (PublicKey, error) {
	var ret PublicKey
	if len(b) != Size {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidPublicKey,
			Size,
			len(b),
		)
	}
	copy(ret[:], b)
	return ret, nil
}

// NewFromBase58 decodes the base58 text form of a PublicKey
func NewFromBase58(s string) (PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
	}
	return New(b)
}

// MustFromBase58 is like NewFromBase58 but panics on error. It is intended for constants and tests
func MustFromBase58(s string) PublicKey {
	ret, err := NewFromBase58(s)
	if err != nil {
		panic(err)
	}
	return ret
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PublicKey) UnmarshalText(text []byte) error {
	tmp, err := NewFromBase58(string(text))
	if err != nil {
		return err
	}
	*p = tmp
	return nil
}
