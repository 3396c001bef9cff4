// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbitchain/orbit/stackedmap"
)

func M(a ...any) []any {
	return a
}

func TestStackedMap(t *testing.T) {
	src := make(map[string]string)
	src["base"] = "from src"

	sm := stackedmap.New(func(key any) (any, bool, error) {
		v, ok := src[key.(string)]
		return v, ok, nil
	})

	assert.Equal(t, M(sm.Get("base")), M("from src", true, nil))

	rev0 := sm.Push()
	assert.Equal(t, 0, rev0)
	sm.Put("k1", "v1")
	assert.Equal(t, M(sm.Get("k1")), M("v1", true, nil))

	rev1 := sm.Push()
	sm.Put("k1", "v1.1")
	sm.Put("k2", "v2")
	assert.Equal(t, M(sm.Get("k1")), M("v1.1", true, nil))

	sm.PopTo(rev1)
	assert.Equal(t, M(sm.Get("k1")), M("v1", true, nil))
	assert.Equal(t, M(sm.Get("k2")), M("", false, nil))

	sm.Pop()
	assert.Equal(t, 0, sm.Depth())
	assert.Equal(t, M(sm.Get("k1")), M("", false, nil))
}

func TestJournal(t *testing.T) {
	sm := stackedmap.New(func(key any) (any, bool, error) {
		return nil, false, nil
	})

	sm.Push()
	sm.Put("a", 1)
	sm.Push()
	sm.Put("b", 2)
	sm.Put("a", 3)

	var entries []any
	sm.Journal(func(k, v any) bool {
		entries = append(entries, k, v)
		return true
	})
	assert.Equal(t, []any{"a", 1, "b", 2, "a", 3}, entries)

	sm.Pop()
	entries = entries[:0]
	sm.Journal(func(k, v any) bool {
		entries = append(entries, k, v)
		return true
	})
	assert.Equal(t, []any{"a", 1}, entries)
}
