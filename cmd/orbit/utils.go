// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/orbitchain/orbit/kv"
	"github.com/orbitchain/orbit/log"
	"github.com/orbitchain/orbit/orbit"
)

func fatal(args ...interface{}) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".orbit")
	}
	return ""
}

func initLogger(ctx *cli.Context) {
	level := log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		lvl := new(slog.LevelVar)
		lvl.Set(level)
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func openMainDB(ctx *cli.Context) *kv.LevelDB {
	cacheMB := int(ctx.Uint64(cacheFlag.Name))

	if ctx.Bool(memFlag.Name) {
		db, err := kv.NewMem()
		if err != nil {
			fatal("open in-memory database:", err)
		}
		return db
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal("unable to infer default data dir, use --" + dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal("create data dir:", err)
	}
	db, err := kv.NewLevelDB(filepath.Join(dataDir, "accounts.db"), cacheMB)
	if err != nil {
		fatal("open database:", err)
	}
	return db
}

func loadParams(ctx *cli.Context) orbit.Params {
	if !ctx.IsSet(paramsFlag.Name) {
		return orbit.DefaultParams()
	}
	params, err := orbit.LoadParams(ctx.String(paramsFlag.Name))
	if err != nil {
		fatal("load params:", err)
	}
	return params
}
