// Command tlsextdemo wires a handful of illustrative built-in
// extensions into the dispatch engine and drives one session through a
// full parse/emit/pack/unpack cycle.
package main

import (
	"flag"
	"fmt"
	"os"

	tlsext "github.com/tlsext/engine"
	"github.com/tlsext/engine/catalog"
	"github.com/tlsext/engine/extset"
	"github.com/tlsext/engine/session"
	"github.com/tlsext/engine/ticketstore"
	"github.com/tlsext/engine/tlslog"
)

func main() {
	cfgPath := flag.String("config", "tlsextdemo.yaml", "harness config file")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	lvl, err := tlslog.LevelFromString(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad log level:", err)
		os.Exit(1)
	}
	lgr := tlslog.New(os.Stdout)
	lgr.SetLevel(lvl)

	if err := run(cfg, lgr); err != nil {
		lgr.Critical("demo failed", tlslog.KVErr(err))
		os.Exit(1)
	}
}

func run(cfg harnessConfig, lgr *tlslog.Logger) error {
	builtins := catalog.NewBuiltins()
	for _, d := range []*catalog.Descriptor{
		extset.NewServerName(),
		extset.NewSupportedVersions(),
		extset.NewALPN(),
		extset.NewPadding(), // registered last: always emitted last
	} {
		if err := builtins.Register(d); err != nil {
			return fmt.Errorf("register %s: %w", d.Name, err)
		}
	}
	builtins.Seal()

	engine := tlsext.New(builtins, lgr)

	clientSess := engine.NewSession(session.Client)
	if err := clientSess.SetExtData(extset.ServerNameWireID, cfg.ServerName); err != nil {
		return fmt.Errorf("set server_name: %w", err)
	}
	if err := clientSess.SetExtData(extset.ALPNWireID, cfg.ALPNProtocols); err != nil {
		return fmt.Errorf("set alpn: %w", err)
	}
	if err := clientSess.SetExtData(extset.SupportedVersionsWireID, []uint16{0x0304, 0x0303}); err != nil {
		return fmt.Errorf("set supported_versions: %w", err)
	}

	clientHello, err := engine.Emit(clientSess, catalog.ClientHello, catalog.Any)
	if err != nil {
		return fmt.Errorf("emit client hello: %w", err)
	}
	lgr.Info("emitted client hello", tlslog.KV("bytes", len(clientHello)))

	serverSess := engine.NewSession(session.Server)
	if err := engine.Parse(serverSess, catalog.ClientHello, catalog.Any, clientHello[2:]); err != nil {
		return fmt.Errorf("parse client hello: %w", err)
	}

	if host, err := engine.GetExtData(serverSess, extset.ServerNameWireID); err == nil {
		lgr.Info("server observed sni", tlslog.KV("host", host))
	}
	if protos, err := engine.GetExtData(serverSess, extset.ALPNWireID); err == nil {
		lgr.Info("server observed alpn", tlslog.KV("protocols", protos))
	}

	packed, err := engine.Pack(clientSess)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	store, err := ticketstore.Open(cfg.TicketDBPath)
	if err != nil {
		return fmt.Errorf("open ticket store: %w", err)
	}
	defer store.Close()

	ticketKey := clientSess.ID.String()
	if err := store.Put(ticketKey, packed); err != nil {
		return fmt.Errorf("store ticket: %w", err)
	}

	loaded, err := store.Get(ticketKey)
	if err != nil {
		return fmt.Errorf("load ticket: %w", err)
	}

	resumedSess := engine.NewSession(session.Client)
	if err := engine.Unpack(resumedSess, loaded); err != nil {
		return fmt.Errorf("unpack: %w", err)
	}
	if host, ok := resumedSess.Table.GetResumed(clientSess.Catalog.WireToInternal(extset.ServerNameWireID)); ok {
		lgr.Info("resumed sni", tlslog.KV("host", host))
	}

	clientSess.Close()
	serverSess.Close()
	resumedSess.Close()
	return nil
}
