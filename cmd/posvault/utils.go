// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"os/user"
	"path/filepath"
	goruntime "runtime"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/api"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/log"
	"github.com/posvault/posvault/lvldb"
	"github.com/posvault/posvault/metrics"
	"github.com/posvault/posvault/runtime"
	"github.com/posvault/posvault/staker"
	"github.com/posvault/posvault/token"
)

func resolveSettings(ctx *cli.Context) (*settings, error) {
	s := &settings{
		DataDir:   ctx.GlobalString(dataDirFlag.Name),
		Verbosity: ctx.GlobalInt(verbosityFlag.Name),
		JSONLogs:  ctx.GlobalBool(jsonLogsFlag.Name),
		CacheSize: ctx.GlobalInt(cacheSizeFlag.Name),
		Metrics:   ctx.GlobalBool(enableMetricsFlag.Name),
	}
	if path := ctx.GlobalString(configFlag.Name); path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg.apply(s, ctx.GlobalIsSet)
	}
	if s.DataDir == "" {
		return nil, errors.New("unable to infer default data dir, use --data-dir")
	}
	return s, nil
}

func initLogger(s *settings) {
	var logger log.Logger
	if s.JSONLogs {
		logger = log.NewJSONLogger(os.Stderr, s.Verbosity)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		logger = log.NewTerminalLogger(os.Stderr, s.Verbosity, useColor)
	}
	log.SetDefault(logger)
	runtime.SetLogger(logger.With("pkg", "runtime"))
	token.SetLogger(logger.With("pkg", "token"))
	staker.SetLogger(logger.With("pkg", "staker"))
	api.SetLogger(logger.With("pkg", "api"))
}

// env is an opened account database with the programs installed.
type env struct {
	settings *settings
	db       *lvldb.DB
	store    *accounts.Store
	rt       *runtime.Runtime
}

func openEnv(ctx *cli.Context) (*env, error) {
	s, err := resolveSettings(ctx)
	if err != nil {
		return nil, err
	}
	initLogger(s)
	if s.Metrics {
		metrics.EnablePrometheus()
	}

	if err := os.MkdirAll(s.DataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	db, err := lvldb.New(filepath.Join(s.DataDir, "accounts.db"), lvldb.Options{
		CacheMiB:  128,
		OpenFiles: 64,
	})
	if err != nil {
		return nil, err
	}
	store, err := accounts.NewStore(db, s.CacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}

	rt := runtime.New(store)
	if err := rt.Register(core.TokenProgramID, token.Program{}); err != nil {
		db.Close()
		return nil, err
	}
	if err := rt.Register(core.StakerProgramID, staker.Program{}); err != nil {
		db.Close()
		return nil, err
	}
	log.Root().Debug("database opened", "dir", s.DataDir)
	return &env{settings: s, db: db, store: store, rt: rt}, nil
}

func (e *env) Close() {
	if e.settings.Metrics {
		if err := metrics.Dump(os.Stderr); err != nil {
			log.Root().Warn("failed to dump metrics", "err", err)
		}
	}
	if err := e.db.Close(); err != nil {
		log.Root().Warn("failed to close database", "err", err)
	}
}

func (e *env) exec(ins *runtime.Instruction, keys ...*secp256k1.PrivateKey) error {
	tx := runtime.NewTx(uint64(time.Now().UnixNano()), ins).WithSignatures(keys...)
	return e.rt.Execute(tx)
}

// stakeState loads the state of depositMint at its canonical address.
func (e *env) stakeState(depositMint core.Address) (core.Address, *staker.StakeState, error) {
	return api.FindState(e.rt, depositMint)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch goruntime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "posvault")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "posvault")
		default:
			return filepath.Join(home, ".posvault")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func parseAddress(ctx *cli.Context, flag cli.StringFlag) (core.Address, error) {
	v := ctx.String(flag.Name)
	if v == "" {
		return core.Address{}, errors.Errorf("missing --%s", flag.Name)
	}
	addr, err := core.ParseAddress(v)
	if err != nil {
		return core.Address{}, errors.Wrapf(err, "--%s", flag.Name)
	}
	return addr, nil
}
