// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/posvault/posvault/log"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml file with default values for the global flags",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory of the account database",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LvlWarn,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache-size",
		Value: 1024,
		Usage: "number of decoded accounts kept in memory",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "print prometheus metrics to stderr on exit",
	}

	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "hex encoded private key file of the signer",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "file to write the new key to",
	}
	decimalsFlag = cli.UintFlag{
		Name:  "decimals",
		Value: 6,
		Usage: "decimal precision of the new mint",
	}
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "address of a mint",
	}
	depositMintFlag = cli.StringFlag{
		Name:  "deposit-mint",
		Usage: "address of the deposit mint of the stake state",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "owner of the new token account, the signer when omitted",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "address of the receiving token account",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "address of a token account or mint",
	}
	depositFlag = cli.StringFlag{
		Name:  "deposit",
		Usage: "address of the user's deposit token account",
	}
	receiptFlag = cli.StringFlag{
		Name:  "receipt",
		Usage: "address of the user's receipt token account",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "amount in base units",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
)
