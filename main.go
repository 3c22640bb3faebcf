package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/zbango/mia/audio"
	"github.com/zbango/mia/encoder"
	"github.com/zbango/mia/gui"
	"github.com/zbango/mia/hotkey"
	"github.com/zbango/mia/log"
	"github.com/zbango/mia/messages"
	"github.com/zbango/mia/recognizer"
	"github.com/zbango/mia/session"
)

var version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	langFlag := flag.String("lang", "es-ES", "Language code for recognition (e.g., es-ES, en-US)")
	deviceFlag := flag.String("device", "", "Use named microphone device (otherwise system default)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	crashFlag := flag.Bool("crash", false, "Trigger synthetic panic for testing crash logging")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("mia %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *crashFlag {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	ctx, err := audio.NewContext()
	if err != nil {
		log.Errorf("audio context init error: %v", err)
		fmt.Printf("Error initializing audio context: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	var selectedDevice *audio.DeviceInfo
	if *deviceFlag != "" {
		devices, err := ctx.Devices()
		if err != nil {
			log.Warnf("device enumeration failed: %v", err)
		}
		for i := range devices {
			if devices[i].Name == *deviceFlag {
				selectedDevice = &devices[i]
				break
			}
		}
		if selectedDevice == nil {
			fmt.Printf("Warning: device %q not found, using system default\n", *deviceFlag)
		}
	}

	capture, err := ctx.NewCapture(selectedDevice, audio.CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	})
	if err != nil {
		log.Errorf("capture device init error: %v", err)
		fmt.Printf("Error initializing capture device: %v\n", err)
		os.Exit(1)
	}
	defer capture.Close()

	rec := recognizer.NewGoogle(*langFlag)
	log.Info("recording_device: " + capture.DeviceName())

	var ctrl *session.Controller

	hk := hotkey.New()
	hotkeyStop := make(chan struct{})

	app := gui.NewApp(
		func() { ctrl.Toggle() },
		func() {
			if err := hk.Register(); err != nil {
				log.Warnf("hotkey register failed: %v", err)
				return
			}
			hotkey.Watch(hk, hotkeyStop, func() { ctrl.Toggle() })
		},
	)

	ctrl = session.NewController(session.Config{
		Recognizer: rec,
		Capture:    capture,
		Sink:       app,
		Catalog:    messages.NewDefaultCatalog(),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		app.Quit()
	}()

	if err := gui.Run(app); err != nil {
		log.Errorf("gui error: %v", err)
		fmt.Printf("Error: %v\n", err)
	}

	close(hotkeyStop)
	hk.Unregister()
	log.SessionEnd(ctrl.RecognizedCount())
	log.Close()
}
