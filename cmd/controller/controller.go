package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/config"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/hardware"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/report"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/rovermode"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/screen"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/sound"
)

func main() {
	fmt.Print("---- Gridbot ----\n\n")
	fmt.Println("GOMAXPROCS", runtime.GOMAXPROCS(0))

	// Our global context, we cancel it to trigger shutdown.
	ctx, cancel := context.WithCancel(context.Background())

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		s := <-signals
		log.Println("Signal: ", s)
		cancel()
		time.Sleep(2 * time.Second)
		os.Exit(0)
	}()

	cfgPath := os.Getenv("GRIDBOT_CONFIG")
	if cfgPath == "" {
		cfgPath = "/cfg/gridbot.yaml"
	}
	cfg := config.Load(cfgPath)

	// Initialise the hardware.  An unreachable inertial sensor is
	// fatal: no estimation is possible without it, so there's no
	// degraded mode and no retry.
	var hw hardware.Interface
	hw, err := hardware.New(cfg)
	if err != nil {
		fmt.Printf("Failed to open hardware: %v.\n", err)
		if os.Getenv("GRIDBOT_DUMMY_HW") == "true" {
			fmt.Println("Using dummy hardware")
			hw = hardware.NewDummy()
		} else {
			cancel()
			return
		}
	}
	defer func() {
		fmt.Println("Zeroing motors for shut down")
		hw.Shutdown()
		time.Sleep(100 * time.Millisecond)
	}()
	if err := hw.Start(ctx); err != nil {
		fmt.Printf("Failed to start hardware: %v.\n", err)
		return
	}

	// One-time stationary calibration, before any motion command.
	offsets, err := hw.CalibrateIMU()
	if err != nil {
		fmt.Printf("Calibration failed: %v.\n", err)
		return
	}

	reporter := report.NewReporter(report.StdoutSink{}, screen.Sink{})
	defer reporter.Close()
	if cfg.SerialReportDevice != "" {
		if s, err := report.NewSerialSink(cfg.SerialReportDevice, cfg.SerialReportBaud); err != nil {
			fmt.Println("Serial diagnostics unavailable:", err)
		} else {
			reporter.AddSink(s)
		}
	}
	if cfg.MQTTBroker != "" {
		if s, err := report.NewMQTTSink(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic); err != nil {
			fmt.Println("MQTT telemetry unavailable:", err)
		} else {
			reporter.AddSink(s)
		}
	}

	go screen.LoopUpdatingScreen(ctx)

	soundsToPlay := sound.InitSound()
	defer close(soundsToPlay)

	rover := rovermode.New(hw, cfg, offsets, reporter)
	rover.SetSoundChannel(soundsToPlay)
	fmt.Println("Starting mode:", rover.Name())
	rover.Start(ctx)

	<-ctx.Done()
	rover.Stop()
}
