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
	"github.com/blinklabs-io/nftvoter/pubkey"
	"golang.org/x/crypto/blake2b"
)

const keySeed = "registrar"

// Key derives the address of the registrar for a realm and governing token mint
func Key(realm, governingTokenMint pubkey.PublicKey) pubkey.PublicKey {
	buf := make([]byte, 0, len(keySeed)+2*pubkey.Size)
	buf = append(buf, keySeed...)
	buf = append(buf, realm[:]...)
	buf = append(buf, governingTokenMint[:]...)
	return pubkey.PublicKey(blake2b.Sum256(buf))
}

// Key returns the address of this registrar
func (r *Registrar) Key() pubkey.PublicKey {
	return Key(r.Realm, r.GoverningTokenMint)
}
