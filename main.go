// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/beevik/go2a03/host"
	"github.com/beevik/term"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/pkg/profile"
)

const statsviewURL = "/debug/statsview"

var (
	profileDir   string
	statsAddress string
)

func init() {
	flag.StringVar(&profileDir, "profile", "", "write a CPU profile to `dir`")
	flag.StringVar(&statsAddress, "statsview", "", "serve runtime statistics on `addr` (e.g. localhost:12600)")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: go2a03 [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.Quiet).Stop()
	}

	if statsAddress != "" {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(statsAddress))
			mgr := statsview.New()
			mgr.Start()
		}()
		fmt.Printf("stats server available at %s%s\n", statsAddress, statsviewURL)
	}

	h := host.New()

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run command files and Lua scripts given on the command line.
	for _, filename := range flag.Args() {
		if strings.EqualFold(filepath.Ext(filename), ".lua") {
			if err := h.RunScript(filename); err != nil {
				exitOnError(err)
			}
			continue
		}

		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Run commands interactively.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
