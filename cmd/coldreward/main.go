// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/nixen/coldreward/kv"
	"github.com/nixen/coldreward/log"
	"github.com/nixen/coldreward/metrics"
	"github.com/nixen/coldreward/tracker"
	"github.com/nixen/coldreward/trackerdb"
)

var (
	version   string
	gitCommit string
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%.8s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "coldreward",
		Usage:   "inspect a cold reward tracker database",
		Flags: []cli.Flag{
			dataDirFlag,
			verbosityFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Commands: []cli.Command{
			{
				Name:  "eligible",
				Usage: "list addresses eligible for the cold reward at a reward height",
				Flags: []cli.Flag{
					dataDirFlag,
					heightFlag,
					verbosityFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: eligibleAction,
			},
			{
				Name:   "checkpoint",
				Usage:  "print the persisted checkpoint marker",
				Flags:  []cli.Flag{dataDirFlag, verbosityFlag},
				Action: checkpointAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coldreward"
	}
	return filepath.Join(home, ".coldreward")
}

func initLogger(ctx *cli.Context) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	useColor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)))
}

func startMetrics(ctx *cli.Context) {
	if !ctx.Bool(enableMetricsFlag.Name) {
		return
	}
	metrics.InitializePrometheusMetrics()
	addr := ctx.String(metricsAddrFlag.Name)
	go func() {
		if err := http.ListenAndServe(addr, metrics.HTTPHandler()); err != nil {
			log.Warn("metrics service stopped", "err", err)
		}
	}()
	log.Info("metrics service started", "addr", addr)
}

func openStore(ctx *cli.Context) (*trackerdb.Store, error) {
	path := filepath.Join(ctx.String(dataDirFlag.Name), "tracker.db")
	return trackerdb.Open(path, kv.Options{CacheSize: 64, OpenFilesCacheCapacity: 64})
}

func eligibleAction(ctx *cli.Context) error {
	initLogger(ctx)
	startMetrics(ctx)

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	height := uint32(ctx.Uint64(heightFlag.Name))
	eligible, err := tracker.New(store).EligibleAddresses(height)
	if err != nil {
		return err
	}
	for _, e := range eligible {
		fmt.Printf("%v\t%d\n", e.Address, e.Multiplier)
	}
	log.Info("eligibility query done", "height", height, "count", len(eligible))
	return nil
}

func checkpointAction(ctx *cli.Context) error {
	initLogger(ctx)

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	checkpoint, err := store.Checkpoint()
	if err != nil {
		return err
	}
	fmt.Println(checkpoint)
	return nil
}
