package xray

import (
	"context"
	"fmt"
	"os"
	"strings"

	"v2parser/internal/logger"

	"github.com/xtls/xray-core/core"
	"github.com/xtls/xray-core/infra/conf/serial"

	// Import distro to register all protocols/transports
	_ "github.com/xtls/xray-core/main/distro/all"
)

// Check loads the generated JSON through xray-core's own config loader and
// builds it, without starting anything.
func Check(configJSON string) error {
	_, err := buildCoreConfig(configJSON)
	return err
}

func buildCoreConfig(configJSON string) (pbConfig *core.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("xray config builder panic: %v", r)
		}
	}()

	jsonConfig, err := serial.DecodeJSONConfig(strings.NewReader(configJSON))
	if err != nil {
		return nil, fmt.Errorf("engine rejected config: %w", err)
	}

	func() {
		restore := muteLogs()
		defer restore()
		pbConfig, err = jsonConfig.Build()
	}()
	if err != nil {
		return nil, fmt.Errorf("engine rejected config: %w", err)
	}
	return pbConfig, nil
}

// Embedded runs xray-core in this process.
type Embedded struct {
	instance *core.Instance
	done     chan error
}

func NewEmbedded() *Embedded {
	return &Embedded{done: make(chan error, 1)}
}

func (e *Embedded) Start(configJSON string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("CRITICAL: Xray Core Panic recovered: %v", r)
			err = fmt.Errorf("xray core panic: %v", r)
			if e.instance != nil {
				e.instance.Close()
				e.instance = nil
			}
		}
	}()

	pbConfig, err := buildCoreConfig(configJSON)
	if err != nil {
		return err
	}

	instance, err := core.New(pbConfig)
	if err != nil {
		return err
	}
	if err := instance.Start(); err != nil {
		instance.Close()
		return err
	}

	e.instance = instance
	logger.Log.Info("Embedded xray-core started")
	return nil
}

// Done never fires on its own; an embedded instance only stops when asked.
func (e *Embedded) Done() <-chan error {
	return e.done
}

func (e *Embedded) Stop(ctx context.Context) error {
	if e.instance == nil {
		return nil
	}
	err := e.instance.Close()
	e.instance = nil
	return err
}

func muteLogs() func() {
	origStdout := os.Stdout
	origStderr := os.Stderr

	devNull, _ := os.Open(os.DevNull)
	if devNull != nil {
		os.Stdout = devNull
		os.Stderr = devNull
	}

	return func() {
		os.Stdout = origStdout
		os.Stderr = origStderr
		if devNull != nil {
			devNull.Close()
		}
	}
}
