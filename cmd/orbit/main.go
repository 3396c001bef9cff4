// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/orbitchain/orbit/api"
	"github.com/orbitchain/orbit/genesis"
	"github.com/orbitchain/orbit/log"
	"github.com/orbitchain/orbit/metrics"
	"github.com/orbitchain/orbit/state"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.New("pkg", "main")
)

// seededKey marks a database whose genesis alloc has been written.
var seededKey = []byte("genesis-seeded")

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Orbit",
		Usage:     "Orbit account and storage staking service",
		Copyright: "2025 The Orbit developers",
		Flags: []cli.Flag{
			dataDirFlag,
			memFlag,
			cacheFlag,
			genesisFlag,
			paramsFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			pprofFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	params := loadParams(ctx)

	mainDB := openMainDB(ctx)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	stater := state.NewStater(mainDB)

	if ctx.IsSet(genesisFlag.Name) {
		seeded, err := mainDB.Has(seededKey)
		if err != nil {
			fatal("check genesis marker:", err)
		}
		if seeded {
			logger.Info("genesis alloc already seeded, skipping")
		} else {
			alloc, err := genesis.LoadAlloc(ctx.String(genesisFlag.Name))
			if err != nil {
				fatal(err)
			}
			if err := genesis.Build(stater, params, alloc); err != nil {
				fatal("seed genesis alloc:", err)
			}
			if err := mainDB.Put(seededKey, []byte{1}); err != nil {
				fatal("write genesis marker:", err)
			}
			logger.Info("genesis alloc seeded", "accounts", len(alloc.Accounts))
		}
	}

	srv := &http.Server{
		Handler: api.New(stater, api.Options{
			AllowedOrigins:  ctx.String(apiCorsFlag.Name),
			PprofOn:         ctx.Bool(pprofFlag.Name),
			EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
			EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		}),
	}

	listener, err := net.Listen("tcp", ctx.String(apiAddrFlag.Name))
	if err != nil {
		fatal("listen API addr:", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	logger.Info("API service started", "addr", listener.Addr(), "version", fullVersion())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down...", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("API shutdown", "err", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
