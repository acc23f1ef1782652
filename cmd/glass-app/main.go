// Command glass-app is the neic-glass3 pipeline's entry point: it
// loads a root "Glass" configuration, bootstraps the engine via a
// sequence of setup configs (initialize, station list, grid files),
// wires the Input, Output, and Associator stages together, and
// supervises all three workers until one reports unhealthy.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/usgs/neic-glass3-sub002/internal/associator"
	"github.com/usgs/neic-glass3-sub002/internal/config"
	"github.com/usgs/neic-glass3-sub002/internal/engine"
	"github.com/usgs/neic-glass3-sub002/internal/input"
	"github.com/usgs/neic-glass3-sub002/internal/logx"
	"github.com/usgs/neic-glass3-sub002/internal/output"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 2 || len(args) > 4 {
		fmt.Println("glass-app; Usage: glass-app <configfile> [logname] [noconsole]")
		return 1
	}

	logPath := os.Getenv("GLASS_LOG")
	if logPath == "" {
		fmt.Println("glass-app using default log directory of ./")
		logPath = "./"
	}

	logName := "glass-app"
	logConsole := true
	for _, arg := range args[2:] {
		if arg == "noconsole" {
			logConsole = false
		} else {
			logName = arg
		}
	}

	logFile, err := os.OpenFile(filepath.Join(logPath, logName+".log"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Println("glass-app: failed to open log file:", err)
		return 1
	}
	defer logFile.Close()

	log := logx.New(logFile, logx.LevelInfo, logConsole)
	log.Info().Log("glass-app: startup")
	log.Info().Str("file", args[1]).Log("glass-app: loading configuration file")

	rootFile, err := os.Open(args[1])
	if err != nil {
		log.Error().Err(err).Log("glass-app: failed to open configuration file")
		return 1
	}
	rootCfg, err := config.Parse(rootFile)
	rootFile.Close()
	if err != nil {
		log.Error().Err(err).Log("glass-app: failed to parse configuration file")
		return 1
	}
	if rootCfg.Cmd != config.CmdGlass {
		log.Error().Log("glass-app: wrong configuration, exiting")
		return 1
	}

	if level := rootCfg.String("LogLevel", ""); level != "" {
		log = logx.New(logFile, logx.ParseLevel(level), logConsole)
	}

	configDir := rootCfg.String("ConfigDirectory", "./")

	initFile := rootCfg.String("InitializeFile", "")
	if initFile == "" {
		log.Error().Log("glass-app: missing InitializeFile, exiting")
		return 1
	}
	initCfg, err := loadConfigFile(configDir, initFile)
	if err != nil {
		log.Error().Err(err).Log("glass-app: failed to load InitializeFile")
		return 1
	}

	stationListFile := rootCfg.String("StationList", "")
	if stationListFile == "" {
		log.Error().Log("glass-app: missing StationList, exiting")
		return 1
	}
	stationListCfg, err := loadConfigFile(configDir, stationListFile)
	if err != nil {
		log.Error().Err(err).Log("glass-app: failed to load StationList")
		return 1
	}

	gridFiles := rootCfg.StringSlice("GridFiles")
	if len(gridFiles) == 0 {
		log.Error().Log("glass-app: no GridFiles specified, exiting")
		return 1
	}

	inputConfigFile := rootCfg.String("InputConfig", "")
	if inputConfigFile == "" {
		log.Error().Log("glass-app: missing InputConfig, exiting")
		return 1
	}
	inputCfg, err := loadConfigFile(configDir, inputConfigFile)
	if err != nil {
		log.Error().Err(err).Log("glass-app: failed to load InputConfig")
		return 1
	}

	outputConfigFile := rootCfg.String("OutputConfig", "")
	if outputConfigFile == "" {
		log.Error().Log("glass-app: missing OutputConfig, exiting")
		return 1
	}
	outputCfg, err := loadConfigFile(configDir, outputConfigFile)
	if err != nil {
		log.Error().Err(err).Log("glass-app: failed to load OutputConfig")
		return 1
	}

	// Output stage.
	outputSink := output.NewFileSink(
		outputCfg.String("OutputDirectory", "./"),
		outputCfg.Bool("TimeStampFileName", true),
		log,
	)
	outputStage := output.NewStage("output", outputSink, log)

	// Input stage, constructed with a nil source and wired afterwards
	// (FileSource needs a Control reference back to the stage it's
	// feeding, and the stage needs a Source to be constructed with).
	inputStage := input.NewStage(
		"input",
		inputCfg.String("DefaultAgencyID", ""),
		inputCfg.String("DefaultAuthor", ""),
		inputCfg.Int("QueueMaxSize", -1),
		nil,
		log,
	)
	fileSource := input.NewFileSource(
		inputCfg.String("InputDirectory", "./"),
		inputCfg.String("ArchiveDirectory", ""),
		inputCfg.String("Format", "gpick"),
		inputCfg.Bool("ShutdownWhenNoData", false),
		inputCfg.Int("ShutdownWait", 30),
		func() int { return inputStage.Data().Size() },
		inputStage,
		log,
	)
	inputStage.SetSource(fileSource)

	// Associator stage, bridging Input's queue and Output's sink
	// through the engine.
	eng := engine.NewStub()
	assocStage := associator.NewStage("associator", eng, inputStage.Data(), outputStage, 0, log)

	// Configuration precedes data: every setup call below must
	// complete before any worker starts.
	if err := assocStage.Setup(initCfg.Raw()); err != nil {
		log.Error().Err(err).Log("glass-app: failed to send initialize configuration")
		return 1
	}
	if err := assocStage.Setup(stationListCfg.Raw()); err != nil {
		log.Error().Err(err).Log("glass-app: failed to send station list")
		return 1
	}
	for _, gridFile := range gridFiles {
		if gridFile == "" {
			continue
		}
		gridCfg, err := loadConfigFile(configDir, gridFile)
		if err != nil {
			log.Error().Err(err).Str("file", gridFile).Log("glass-app: failed to load grid file")
			return 1
		}
		if err := assocStage.Setup(gridCfg.Raw()); err != nil {
			log.Error().Err(err).Str("file", gridFile).Log("glass-app: failed to send grid configuration")
			return 1
		}
	}

	inputStage.Start()
	outputStage.Start()
	assocStage.Start()

	log.Info().Log("glass-app: glass3 is running")

	for {
		time.Sleep(5 * time.Second)
		log.Trace().Log("glass-app: checking thread status")

		if !inputStage.HealthCheck() {
			log.Error().Log("glass-app: input thread has exited")
			break
		}
		if !outputStage.HealthCheck() {
			log.Error().Log("glass-app: output thread has exited")
			break
		}
		if !assocStage.HealthCheck() {
			log.Error().Log("glass-app: associator thread has exited")
			break
		}
	}

	log.Info().Log("glass-app: glass3 is shutting down")
	inputStage.Stop()
	outputStage.Stop()
	assocStage.Stop()

	return 0
}

func loadConfigFile(dir, name string) (*config.Config, error) {
	path := name
	if dir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(dir, name)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return config.Parse(f)
}
