// pdaservice hosts a registry of automata behind a WebSocket endpoint
// and a TCP line protocol, with optional bbolt persistence and
// cron-scheduled checks.

package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/HermanPlay/pushdown-automata-simulator/def"
	"github.com/HermanPlay/pushdown-automata-simulator/store"
	"github.com/HermanPlay/pushdown-automata-simulator/util"
)

func main() {

	var (
		wsAddr   = flag.String("ws", ":8080", "WebSocket (HTTP) address ('' to disable)")
		tcpPort  = flag.String("tcp", "", "TCP line protocol address (e.g. ':9000'; '' to disable)")
		boltFile = flag.String("b", "", "bbolt file for persistence ('' for none)")
		checks   = flag.String("checks", "", "YAML checks filename")
		debug    = flag.Bool("d", false, "debug logging")
	)

	flag.Parse()

	util.Logging = *debug

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var storage *store.Storage
	if *boltFile != "" {
		var err error
		if storage, err = store.NewStorage(*boltFile); err != nil {
			log.Fatal(err)
		}
		storage.Debug = *debug
		if err = storage.Open(); err != nil {
			log.Fatal(err)
		}
		defer storage.Close()
	}

	s, err := NewService(ctx, storage)
	if err != nil {
		log.Fatal(err)
	}
	s.Debug = *debug

	// Definition files named on the command line are loaded under
	// their base names.
	for _, filename := range flag.Args() {
		cfg, warnings, err := def.ParseFile(filename)
		if err != nil {
			log.Fatal(err)
		}
		for _, w := range warnings {
			log.Printf("warning: %s: %s", filename, w.String())
		}
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		res := s.Do(ctx, &SOp{Op: "load", Name: name, Def: cfg.Definition()})
		if res.Err != "" {
			log.Fatal(res.Err)
		}
		log.Printf("loaded %s as %s", filename, name)
	}

	if *checks != "" {
		cs, err := LoadChecks(*checks)
		if err != nil {
			log.Fatal(err)
		}
		s.RunChecks(ctx, cs)
	}

	switch {
	case *wsAddr != "":
		if *tcpPort != "" {
			go func() {
				if err := s.TCPService(ctx, *tcpPort); err != nil {
					log.Fatal(err)
				}
			}()
		}
		if err := s.WebSocketService(ctx); err != nil {
			log.Fatal(err)
		}
		if err := http.ListenAndServe(*wsAddr, nil); err != nil {
			log.Fatal(err)
		}
	case *tcpPort != "":
		if err := s.TCPService(ctx, *tcpPort); err != nil {
			log.Fatal(err)
		}
	default:
		log.Printf("nothing to serve")
		os.Exit(1)
	}
}
