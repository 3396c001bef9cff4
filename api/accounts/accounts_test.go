// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitchain/orbit/kv"
	"github.com/orbitchain/orbit/orbit"
	"github.com/orbitchain/orbit/state"
)

func newTestServer(t *testing.T) (*httptest.Server, *state.Stater) {
	db, _ := kv.NewMem()
	stater := state.NewStater(db)

	router := mux.NewRouter()
	New(stater).Mount(router, "/accounts")

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, stater
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())
	return body, res.StatusCode
}

func TestGetAccount(t *testing.T) {
	ts, stater := newTestServer(t)

	acc := state.NewAccount(180)
	acc.Balance = big.NewInt(1_000_000)
	acc.Staked = big.NewInt(500)
	acc.NonRefundable = big.NewInt(30_000)

	st := stater.NewState()
	st.UpdateAccount(orbit.AccountID("alice"), acc)
	stage, err := st.Stage()
	require.NoError(t, err)
	require.NoError(t, stage.Commit())

	body, status := httpGet(t, ts.URL+"/accounts/alice")
	require.Equal(t, http.StatusOK, status)

	var got Account
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "1000000", got.Amount)
	assert.Equal(t, "500", got.Locked)
	assert.Equal(t, "30000", got.NonRefundable)
	assert.Equal(t, uint64(180), got.StorageUsage)
	assert.Equal(t, uint8(2), got.Version)
	assert.False(t, got.HasCode)
}

func TestGetAccountNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	_, status := httpGet(t, ts.URL+"/accounts/nobody")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetAccountBadID(t *testing.T) {
	ts, _ := newTestServer(t)

	_, status := httpGet(t, ts.URL+"/accounts/UPPER")
	assert.Equal(t, http.StatusBadRequest, status)
}
