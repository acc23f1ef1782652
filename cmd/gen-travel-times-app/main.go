// Command gen-travel-times-app loads a "gen-travel-times-app"
// configuration and logs the travel-time grid parameters it names.
// Travel-time table computation itself lives inside the opaque
// nucleation engine and is out of scope here; this entry point only
// exercises the shared configuration/logging stack.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/usgs/neic-glass3-sub002/internal/config"
	"github.com/usgs/neic-glass3-sub002/internal/logx"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 2 || len(args) > 3 {
		fmt.Println("gen-travel-times-app; Usage: gen-travel-times-app <configfile> [logname]")
		return 1
	}

	logPath := os.Getenv("GLASS_LOG")
	if logPath == "" {
		fmt.Println("gen-travel-times-app using default log directory of ./")
		logPath = "./"
	}

	logName := "gen-travel-times-app"
	if len(args) >= 3 {
		logName = args[2]
	}

	logFile, err := os.OpenFile(filepath.Join(logPath, logName+".log"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Println("gen-travel-times-app: failed to open log file:", err)
		return 1
	}
	defer logFile.Close()

	log := logx.New(logFile, logx.LevelDebug, true)
	log.Info().Log("gen-travel-times-app: startup")
	log.Info().Str("file", args[1]).Log("gen-travel-times-app: using config file")

	f, err := os.Open(args[1])
	if err != nil {
		log.Error().Err(err).Log("gen-travel-times-app: failed to open configuration file")
		return 1
	}
	cfg, err := config.Parse(f)
	f.Close()
	if err != nil {
		log.Error().Err(err).Log("gen-travel-times-app: failed to parse configuration file")
		return 1
	}
	if cfg.Cmd != config.CmdGenTravelTimesApp {
		log.Error().Log("gen-travel-times-app: wrong configuration, exiting")
		return 1
	}

	phases := cfg.StringSlice("Phases")
	log.Info().Log(fmt.Sprintf(
		"gen-travel-times-app: would generate travel times for phases %v over depth [%d,%d] km, distance [%d,%d] deg (grid computation is out of scope; engine-internal)",
		phases,
		cfg.Int("MinDepth", 0), cfg.Int("MaxDepth", 800),
		cfg.Int("MinDistance", 0), cfg.Int("MaxDistance", 180),
	))

	return 0
}
