/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/botobag/relgraph/internal/config"
	"github.com/botobag/relgraph/internal/log"
	"github.com/botobag/relgraph/internal/server"
)

const name = "relgraphd"

var (
	version     = "unknown"
	configFile  string
	listenAddr  string
	logLevel    string
	useIndex    bool
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "YAML config file; defaults are used when empty")
	flag.StringVar(&listenAddr, "listen", "", "Listen address, overrides ListenAddr")
	flag.StringVar(&logLevel, "log-level", "", "Log level, overrides LogLevel")
	flag.BoolVar(&useIndex, "use-index", false, "Resolve list fields of both families from the owner index")
	flag.BoolVar(&showVersion, "version", false, "Show version information and exit")
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if len(configFile) > 0 {
		var err error
		if cfg, err = config.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}

	if len(listenAddr) > 0 {
		cfg.ListenAddr = listenAddr
	}
	if len(logLevel) > 0 {
		cfg.LogLevel = logLevel
	}
	if useIndex {
		cfg.Library.UseIndex = true
		cfg.Blog.UseIndex = true
	}
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()
	if showVersion {
		fmt.Printf("%v %v %v %v %v\n",
			name, version, runtime.GOOS, runtime.GOARCH, runtime.Version())
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("load config failed")
		return
	}
	log.SetStringLevel(cfg.LogLevel, log.InfoLevel)
	log.SetFormat(cfg.LogFormat)

	flag.Visit(func(f *flag.Flag) {
		log.Infof("args %#v : %s", f.Name, f.Value)
	})

	srv, err := server.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("init server failed")
		return
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.WithError(err).Fatal("server failed")
		}
		return
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}
