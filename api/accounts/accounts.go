// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/orbitchain/orbit/api/utils"
	"github.com/orbitchain/orbit/orbit"
	"github.com/orbitchain/orbit/state"
)

type Accounts struct {
	stater *state.Stater
}

func New(stater *state.Stater) *Accounts {
	return &Accounts{stater}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	id, err := orbit.ParseAccountID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}

	acc, err := a.stater.NewState().GetAccount(id)
	if err != nil {
		return err
	}
	if acc == nil {
		return utils.NotFound(errors.Errorf("no account %v", id))
	}
	return utils.WriteJSON(w, convertAccount(acc))
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
