package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/native/kvstore"
)

const (
	backendAuto   = "auto"
	backendNative = "native"
	backendStore  = "store"
)

var errNoNative = errors.New("the native registry is only available on Windows")

type config struct {
	Backend  string
	Store    string
	ReadOnly bool
	Hosts    map[string]string
}

func loadConfig() (config, error) {
	cfg := config{
		Backend:  strings.ToLower(viper.GetString("backend")),
		Store:    viper.GetString("store"),
		ReadOnly: viper.GetBool("read-only"),
	}
	hosts, err := parseHosts(viper.GetString("hosts"))
	if err != nil {
		return config{}, err
	}
	cfg.Hosts = hosts

	switch cfg.Backend {
	case "", backendAuto:
		cfg.Backend = backendStore
		if runtime.GOOS == "windows" {
			cfg.Backend = backendNative
		}
	case backendNative, backendStore:
	default:
		return config{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if cfg.Backend == backendStore && cfg.Store == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return config{}, fmt.Errorf("no store directory: %w", err)
		}
		cfg.Store = filepath.Join(dir, "regkit", "store")
	}
	return cfg, nil
}

// parseHosts reads "name=dir,name=dir". A bare name maps to an in-memory
// database.
func parseHosts(s string) (map[string]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	hosts := make(map[string]string)
	for _, entry := range strings.Split(s, ",") {
		name, dir, _ := strings.Cut(strings.TrimSpace(entry), "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid hosts entry %q", entry)
		}
		hosts[name] = strings.TrimSpace(dir)
	}
	return hosts, nil
}

// withAPI opens the configured backend for the duration of fn.
func withAPI(fn func(api native.API) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Backend == backendNative {
		api, err := nativeAPI()
		if err != nil {
			return err
		}
		printVerbose("Using native registry\n")
		return fn(api)
	}

	printVerbose("Opening store: %s\n", cfg.Store)
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func openStore(cfg config) (*kvstore.Store, error) {
	store, err := kvstore.Open(kvstore.Options{
		Dir:      cfg.Store,
		ReadOnly: cfg.ReadOnly,
		Hosts:    cfg.Hosts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}
