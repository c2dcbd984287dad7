// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string

	stdout io.Writer = os.Stdout
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	return &cli.App{
		Version: fullVersion(),
		Name:    "posvault",
		Usage:   "Deposit and receipt staking ledger",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			verbosityFlag,
			jsonLogsFlag,
			cacheSizeFlag,
			enableMetricsFlag,
		},
		Commands: []cli.Command{
			{
				Name:   "keygen",
				Usage:  "generate a signing key",
				Flags:  []cli.Flag{outFlag},
				Action: keygenAction,
			},
			{
				Name:   "mint-create",
				Usage:  "create a mint with the signer as mint authority",
				Flags:  []cli.Flag{keyFlag, decimalsFlag},
				Action: mintCreateAction,
			},
			{
				Name:   "account-create",
				Usage:  "create a token account of a mint",
				Flags:  []cli.Flag{keyFlag, mintFlag, ownerFlag},
				Action: accountCreateAction,
			},
			{
				Name:   "mint-issue",
				Usage:  "mint tokens into an account, signed by the mint authority",
				Flags:  []cli.Flag{keyFlag, mintFlag, toFlag, amountFlag},
				Action: mintIssueAction,
			},
			{
				Name:   "init",
				Usage:  "initialize the stake state of a deposit mint",
				Flags:  []cli.Flag{keyFlag, depositMintFlag},
				Action: initAction,
			},
			{
				Name:   "register",
				Usage:  "create the deposit and receipt accounts of the signer",
				Flags:  []cli.Flag{keyFlag, depositMintFlag},
				Action: registerAction,
			},
			{
				Name:   "stake",
				Usage:  "lock deposit tokens and receive receipts",
				Flags:  []cli.Flag{keyFlag, depositMintFlag, depositFlag, receiptFlag, amountFlag},
				Action: stakeAction,
			},
			{
				Name:   "unstake",
				Usage:  "burn receipts and withdraw deposit tokens",
				Flags:  []cli.Flag{keyFlag, depositMintFlag, depositFlag, receiptFlag, amountFlag},
				Action: unstakeAction,
			},
			{
				Name:   "show-state",
				Usage:  "print the stake state of a deposit mint",
				Flags:  []cli.Flag{depositMintFlag},
				Action: showStateAction,
			},
			{
				Name:   "balance",
				Usage:  "print a token account or mint",
				Flags:  []cli.Flag{accountFlag},
				Action: balanceAction,
			},
			{
				Name:   "accounts",
				Usage:  "list committed accounts, optionally only those of one owner program",
				Flags:  []cli.Flag{ownerFlag},
				Action: accountsAction,
			},
			{
				Name:   "serve",
				Usage:  "serve a read-only HTTP API over the data dir until interrupted",
				Flags:  []cli.Flag{apiAddrFlag, apiCorsFlag},
				Action: serveAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}
