// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/orbitchain/orbit/kv"
	"github.com/orbitchain/orbit/orbit"
)

const (
	accountKeyPrefix = "a/"

	recordCacheSize = 8192
)

func accountKey(id orbit.AccountID) []byte {
	return append([]byte(accountKeyPrefix), id...)
}

// Stater provides State instances over a key-value store, with a shared
// cache of encoded account records.
type Stater struct {
	store kv.GetPutter
	cache *lru.Cache // account id -> encoded record
}

// NewStater creates a Stater over the given store.
func NewStater(store kv.GetPutter) *Stater {
	cache, _ := lru.New(recordCacheSize)
	return &Stater{store: store, cache: cache}
}

// NewState creates a fresh state view.
func (s *Stater) NewState() *State {
	return newState(s)
}

// loadAccount loads the account record for the given id.
// It returns nil when no record exists.
func (s *Stater) loadAccount(id orbit.AccountID) (*Account, error) {
	var data []byte
	if cached, ok := s.cache.Get(id); ok {
		data = cached.([]byte)
		metricRecordCache().AddWithLabel(1, map[string]string{"event": "hit"})
	} else {
		metricRecordCache().AddWithLabel(1, map[string]string{"event": "miss"})
		var err error
		data, err = s.store.Get(accountKey(id))
		if err != nil {
			if s.store.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		s.cache.Add(id, data)
	}
	return decodeAccount(data)
}

// cacheRecord refreshes the record cache after a committed write.
// data is the encoded record, or nil when the record was deleted.
func (s *Stater) cacheRecord(id orbit.AccountID, data []byte) {
	if data == nil {
		s.cache.Remove(id)
		return
	}
	s.cache.Add(id, data)
}
