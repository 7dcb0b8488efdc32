package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/config"
	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/optics"
	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/scene"
)

func main() {
	level := slog.LevelWarn
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	asJSON := os.Getenv("JSON") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	paths := []string{"scenes/bench.json"}
	if len(os.Args) > 1 {
		paths = os.Args[1:]
	}
	optics.DebugLog("Tracing %d scene file(s)", len(paths))
	if err := scene.Run(os.Stdout, cfg.TraceConfig(logger), asJSON, paths...); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
