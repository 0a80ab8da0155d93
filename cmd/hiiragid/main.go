// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command hiiragid runs the e-amusement protocol codec server: it loads the
// compiled-in plugins, then serves the single POST endpoint described in
// spec.md section 6.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/hiiragi-go/hiiragi/eamusehttp"
	"github.com/hiiragi-go/hiiragi/plugin"

	// Blank-imported so its init() self-registers into plugin.Default per
	// SPEC_FULL.md's Open Question 4 decision (compile-time plugin discovery).
	_ "github.com/hiiragi-go/hiiragi/plugin/beatstream"
)

func main() {
	app := &cli.App{
		Name:  "hiiragid",
		Usage: "e-amusement protocol codec server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "address to listen on",
				Value: ":8082",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "one of crit, error, warn, info, debug, trace",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	lvl, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true)))

	listen := c.String("listen")
	log.Info("hiiragi is loading", "listen", listen)

	router := eamusehttp.NewRouter(plugin.Default)
	log.Info("hiiragi is serving", "listen", listen)
	return http.ListenAndServe(listen, router)
}

// parseLevel maps the --log-level flag onto the package's slog-based level
// constants. go-ethereum/log has no string-to-level parser of its own, so
// callers that take the level as a flag (as this one does) spell it out.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "crit", "critical":
		return log.LevelCrit, nil
	case "error":
		return log.LevelError, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "info":
		return log.LevelInfo, nil
	case "debug":
		return log.LevelDebug, nil
	case "trace":
		return log.LevelTrace, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}
