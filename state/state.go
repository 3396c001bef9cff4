// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/orbitchain/orbit/kv"
	"github.com/orbitchain/orbit/orbit"
	"github.com/orbitchain/orbit/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the account state.
//
// It buffers all mutations in a revision journal. Nothing touches the
// underlying store until the staged changes are committed.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap // keeps revisions of account state
}

// account journal key
type accountKeyT orbit.AccountID

func newState(stater *Stater) *State {
	state := State{stater: stater}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.cacheGetter(key)
	})
	// base level holds all changes until the first checkpoint
	state.sm.Push()
	return &state
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case accountKeyT:
		acc, err := s.stater.loadAccount(orbit.AccountID(k))
		if err != nil {
			return nil, false, err
		}
		// nil *Account means no record exists
		return acc, true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

// getAccount gets the account by id. The returned account must not be
// modified; nil means no record exists.
func (s *State) getAccount(id orbit.AccountID) (*Account, error) {
	v, _, err := s.sm.Get(accountKeyT(id))
	if err != nil {
		return nil, err
	}
	return v.(*Account), nil
}

// GetAccount returns a copy of the account for the given id, or nil when
// no record exists.
func (s *State) GetAccount(id orbit.AccountID) (*Account, error) {
	acc, err := s.getAccount(id)
	if err != nil {
		return nil, &Error{err}
	}
	if acc == nil {
		return nil, nil
	}
	return acc.Copy(), nil
}

// Exists returns whether a record exists for the given id.
func (s *State) Exists(id orbit.AccountID) (bool, error) {
	acc, err := s.getAccount(id)
	if err != nil {
		return false, &Error{err}
	}
	return acc != nil, nil
}

// UpdateAccount writes the account into the journal.
func (s *State) UpdateAccount(id orbit.AccountID, acc *Account) {
	s.sm.Put(accountKeyT(id), acc.Copy())
}

// DeleteAccount removes the record for the given id.
func (s *State) DeleteAccount(id orbit.AccountID) {
	s.sm.Put(accountKeyT(id), (*Account)(nil))
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage computes the final records from cumulative changes and makes a
// stage object to commit them to the underlying store in one batch.
func (s *State) Stage() (*Stage, error) {
	changes := make(map[orbit.AccountID]*Account)
	s.sm.Journal(func(k, v any) bool {
		switch key := k.(type) {
		case accountKeyT:
			changes[orbit.AccountID(key)] = v.(*Account)
		}
		return true
	})

	batch := s.stater.store.NewBatch()
	records := make(map[orbit.AccountID][]byte, len(changes))
	for id, acc := range changes {
		if acc == nil {
			if err := batch.Delete(accountKey(id)); err != nil {
				return nil, &Error{err}
			}
			records[id] = nil
			continue
		}
		data, err := encodeAccount(acc)
		if err != nil {
			return nil, &Error{err}
		}
		if err := batch.Put(accountKey(id), data); err != nil {
			return nil, &Error{err}
		}
		records[id] = data
	}
	return &Stage{
		stater:  s.stater,
		batch:   batch,
		records: records,
	}, nil
}

// Stage abstracts the process of committing buffered state changes.
type Stage struct {
	stater  *Stater
	batch   kv.Batch
	records map[orbit.AccountID][]byte
}

// Commit writes the batch and refreshes the record cache.
func (s *Stage) Commit() error {
	if err := s.batch.Write(); err != nil {
		return &Error{err}
	}
	for id, data := range s.records {
		s.stater.cacheRecord(id, data)
	}
	metricAccountCommits().Add(int64(len(s.records)))
	return nil
}
