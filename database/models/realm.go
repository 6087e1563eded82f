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

package models

// Realm is a governance realm as seen by the NFT voter. CouncilMint and
// Authority are empty when the realm has none
type Realm struct {
	ID                  uint   `gorm:"primarykey"`
	Address             []byte `gorm:"uniqueIndex;size:32;not null"`
	GovernanceProgramID []byte `gorm:"size:32;not null"`
	Name                string `gorm:"size:128"`
	CommunityMint       []byte `gorm:"index;size:32;not null"`
	CouncilMint         []byte `gorm:"size:32"`
	Authority           []byte `gorm:"size:32"`
}

// TableName returns the table name
func (Realm) TableName() string {
	return "realm"
}
