//go:build ebiten

package main

import (
	"flag"

	"electron-architect/internal/app"
	"electron-architect/internal/layout"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/segmentio/encoding/json"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logs.SetLevel(logs.ParseLevel(cfg.LogLevel))
	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal

	if err := cfg.Validate(); err != nil {
		logs.Fatal(err)
	}

	editor := app.NewEditor(cfg)
	if cfg.Layout != "" {
		l, err := layout.Load(cfg.Layout)
		if err != nil {
			logs.Fatal(err)
		}
		if err := editor.Open(l); err != nil {
			logs.Fatal(err)
		}
	}

	game := app.New(cfg, editor)

	ebiten.SetWindowTitle("Electron Architect")
	ebiten.SetWindowSize(cfg.Width+cfg.PanelWidth(), cfg.Height)

	logs.WithTag("tps", cfg.TPS).
		WithTag("layout", cfg.Layout).
		Info("starting editor")

	if err := ebiten.RunGame(game); err != nil {
		logs.Fatal(err)
	}
}
