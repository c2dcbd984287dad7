// Copyright (c) 2025 The VeChainThor developers

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

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/api"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/log"
	"github.com/posvault/posvault/staker"
	"github.com/posvault/posvault/token"
)

func signer(ctx *cli.Context) (*secp256k1.PrivateKey, error) {
	path := ctx.String(keyFlag.Name)
	if path == "" {
		return nil, errors.Errorf("missing --%s", keyFlag.Name)
	}
	return loadKey(path)
}

func amount(ctx *cli.Context) (uint64, error) {
	v := ctx.Uint64(amountFlag.Name)
	if v == 0 {
		return 0, errors.Errorf("missing --%s", amountFlag.Name)
	}
	return v, nil
}

func printYAML(v any) error {
	enc := yaml.NewEncoder(stdout)
	defer enc.Close()
	return enc.Encode(v)
}

func keygenAction(ctx *cli.Context) error {
	out := ctx.String(outFlag.Name)
	if out == "" {
		return errors.Errorf("missing --%s", outFlag.Name)
	}
	key, err := keygen(out)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, keyAddress(key))
	return nil
}

func mintCreateAction(ctx *cli.Context) error {
	authority, err := signer(ctx)
	if err != nil {
		return err
	}
	decimals := ctx.Uint(decimalsFlag.Name)
	if decimals > 18 {
		return errors.Errorf("decimals out of range: %d", decimals)
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	mint, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return err
	}
	ins := token.NewCreateMintInstruction(keyAddress(mint), uint8(decimals), keyAddress(authority))
	if err := env.exec(ins, mint); err != nil {
		return err
	}
	fmt.Fprintln(stdout, keyAddress(mint))
	return nil
}

func accountCreateAction(ctx *cli.Context) error {
	key, err := signer(ctx)
	if err != nil {
		return err
	}
	mint, err := parseAddress(ctx, mintFlag)
	if err != nil {
		return err
	}
	owner := keyAddress(key)
	if ctx.String(ownerFlag.Name) != "" {
		if owner, err = parseAddress(ctx, ownerFlag); err != nil {
			return err
		}
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	acc, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return err
	}
	if err := env.exec(token.NewCreateAccountInstruction(keyAddress(acc), mint, owner), acc); err != nil {
		return err
	}
	fmt.Fprintln(stdout, keyAddress(acc))
	return nil
}

func mintIssueAction(ctx *cli.Context) error {
	authority, err := signer(ctx)
	if err != nil {
		return err
	}
	mint, err := parseAddress(ctx, mintFlag)
	if err != nil {
		return err
	}
	to, err := parseAddress(ctx, toFlag)
	if err != nil {
		return err
	}
	value, err := amount(ctx)
	if err != nil {
		return err
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	return env.exec(token.NewMintToInstruction(mint, to, keyAddress(authority), value), authority)
}

func initAction(ctx *cli.Context) error {
	admin, err := signer(ctx)
	if err != nil {
		return err
	}
	depositMint, err := parseAddress(ctx, depositMintFlag)
	if err != nil {
		return err
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	a, args, err := staker.FindInitializeArgs(core.StakerProgramID, keyAddress(admin), depositMint)
	if err != nil {
		return err
	}
	if err := env.exec(staker.NewInitializeInstruction(a, args), admin); err != nil {
		return err
	}
	return printYAML(map[string]core.Address{
		"state":           a.StakeState,
		"receipt-mint":    a.ReceiptMint,
		"vault":           a.Vault,
		"mint-authority":  a.MintAuthority,
		"vault-authority": a.VaultAuthority,
	})
}

func registerAction(ctx *cli.Context) error {
	user, err := signer(ctx)
	if err != nil {
		return err
	}
	depositMint, err := parseAddress(ctx, depositMintFlag)
	if err != nil {
		return err
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	stateAddr, state, err := env.stakeState(depositMint)
	if err != nil {
		return err
	}
	deposit, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return err
	}
	receipt, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return err
	}
	ins := staker.NewRegisterStakeInstruction(staker.RegisterStakeAccounts{
		StakeState:  stateAddr,
		User:        keyAddress(user),
		DepositMint: state.DepositMint,
		UserDeposit: keyAddress(deposit),
		ReceiptMint: state.ReceiptMint,
		UserReceipt: keyAddress(receipt),
	})
	if err := env.exec(ins, user, deposit, receipt); err != nil {
		return err
	}
	return printYAML(map[string]core.Address{
		"deposit": keyAddress(deposit),
		"receipt": keyAddress(receipt),
	})
}

type position struct {
	user      *secp256k1.PrivateKey
	stateAddr core.Address
	state     *staker.StakeState
	deposit   core.Address
	receipt   core.Address
	amount    uint64
}

func loadPosition(ctx *cli.Context, e *env) (*position, error) {
	var (
		p   position
		err error
	)
	if p.user, err = signer(ctx); err != nil {
		return nil, err
	}
	depositMint, err := parseAddress(ctx, depositMintFlag)
	if err != nil {
		return nil, err
	}
	if p.deposit, err = parseAddress(ctx, depositFlag); err != nil {
		return nil, err
	}
	if p.receipt, err = parseAddress(ctx, receiptFlag); err != nil {
		return nil, err
	}
	if p.amount, err = amount(ctx); err != nil {
		return nil, err
	}
	if p.stateAddr, p.state, err = e.stakeState(depositMint); err != nil {
		return nil, err
	}
	return &p, nil
}

func stakeAction(ctx *cli.Context) error {
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	p, err := loadPosition(ctx, env)
	if err != nil {
		return err
	}
	a, err := staker.NewStakeAccounts(core.StakerProgramID, p.stateAddr, p.state, keyAddress(p.user), p.deposit, p.receipt)
	if err != nil {
		return err
	}
	return env.exec(staker.NewStakeInstruction(a, p.amount), p.user)
}

func unstakeAction(ctx *cli.Context) error {
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	p, err := loadPosition(ctx, env)
	if err != nil {
		return err
	}
	a, err := staker.NewUnstakeAccounts(core.StakerProgramID, p.stateAddr, p.state, keyAddress(p.user), p.deposit, p.receipt)
	if err != nil {
		return err
	}
	return env.exec(staker.NewUnstakeInstruction(a, p.amount), p.user)
}

func showStateAction(ctx *cli.Context) error {
	depositMint, err := parseAddress(ctx, depositMintFlag)
	if err != nil {
		return err
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	view, err := api.LoadState(env.rt, depositMint)
	if err != nil {
		return err
	}
	return printYAML(view)
}

func balanceAction(ctx *cli.Context) error {
	addr, err := parseAddress(ctx, accountFlag)
	if err != nil {
		return err
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	view, err := api.LoadToken(env.rt, addr)
	if err != nil {
		return err
	}
	return printYAML(view)
}

func serveAction(ctx *cli.Context) error {
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	handler := api.New(env.rt, api.Options{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		EnableMetrics:  env.settings.Metrics,
	})
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	go func() { served <- srv.Serve(listener) }()
	fmt.Fprintln(stdout, "http://"+listener.Addr().String())
	log.Root().Info("API started", "addr", listener.Addr())

	select {
	case err := <-served:
		return err
	case <-sigCtx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type accountView struct {
	Address core.Address `yaml:"address"`
	Owner   core.Address `yaml:"owner"`
	Size    int          `yaml:"size"`
}

func accountsAction(ctx *cli.Context) error {
	var (
		owner    core.Address
		filtered = ctx.String(ownerFlag.Name) != ""
		err      error
	)
	if filtered {
		if owner, err = parseAddress(ctx, ownerFlag); err != nil {
			return err
		}
	}
	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	views := []accountView{}
	if err := env.store.Range(func(addr core.Address, acc *accounts.Account) bool {
		if !filtered || acc.Owner == owner {
			views = append(views, accountView{addr, acc.Owner, len(acc.Data)})
		}
		return true
	}); err != nil {
		return err
	}
	return printYAML(views)
}
