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

// CollectionConfig indexes the collection configs held by each registrar so
// that registrars can be looked up by collection. The registrar blob record
// remains the source of truth
type CollectionConfig struct {
	ID         uint   `gorm:"primarykey"`
	Registrar  []byte `gorm:"uniqueIndex:idx_collection_config_registrar_position,priority:1;uniqueIndex:idx_collection_config_registrar_collection,priority:1;size:32;not null"`
	Position   uint8  `gorm:"uniqueIndex:idx_collection_config_registrar_position,priority:2;not null"`
	Collection []byte `gorm:"uniqueIndex:idx_collection_config_registrar_collection,priority:2;index;size:32;not null"`
	Weight     uint16 `gorm:"not null"`
	Size       uint32 `gorm:"not null"`
}

// TableName returns the table name
func (CollectionConfig) TableName() string {
	return "collection_config"
}
