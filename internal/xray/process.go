package xray

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"v2parser/internal/config"
	"v2parser/internal/logger"
)

// Engine is a running xray-core, in-process or external.
type Engine interface {
	Start(configJSON string) error
	// Done delivers the exit status if the engine stops by itself.
	Done() <-chan error
	Stop(ctx context.Context) error
}

// NewEngine picks the engine implementation for the given settings.
func NewEngine(cfg config.EngineConfig) Engine {
	if cfg.Mode == config.EngineEmbedded {
		return NewEmbedded()
	}
	return NewProcess(cfg.Binary, cfg.StopTimeout)
}

// Process supervises an external xray-core binary started with
// "-config <tempfile>".
type Process struct {
	binary      string
	stopTimeout time.Duration

	mu         sync.Mutex
	cmd        *exec.Cmd
	configPath string
	done       chan error
}

func NewProcess(binary string, stopTimeout time.Duration) *Process {
	return &Process{
		binary:      binary,
		stopTimeout: stopTimeout,
		done:        make(chan error, 1),
	}
}

func (p *Process) Start(configJSON string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return errors.New("engine already started")
	}

	configFile, err := os.CreateTemp("", "v2parser-*.json")
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	configPath := configFile.Name()
	if _, err := configFile.WriteString(configJSON); err != nil {
		configFile.Close()
		os.Remove(configPath)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := configFile.Close(); err != nil {
		os.Remove(configPath)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cmd := exec.Command(p.binary, "-config", configPath)
	cmd.Stdin = nil
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		os.Remove(configPath)
		return fmt.Errorf("failed to start %s: %w", p.binary, err)
	}

	p.cmd = cmd
	p.configPath = configPath
	logger.Log.Infof("Started %s (pid %d) with config: %s", p.binary, cmd.Process.Pid, configPath)

	go func() {
		p.done <- cmd.Wait()
		close(p.done)
	}()
	return nil
}

func (p *Process) Done() <-chan error {
	return p.done
}

// Stop asks the engine to terminate, kills its process group if it is still
// alive after the stop timeout or when ctx ends, and removes the config file.
func (p *Process) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil {
		return nil
	}
	defer p.cleanup()

	logger.Log.Info("Stopping xray-core process...")

	var exitErr error
	exited := false
	if err := terminate(p.cmd); err != nil {
		logger.Log.Debugf("Graceful stop failed: %v", err)
	} else {
		timer := time.NewTimer(p.stopTimeout)
		defer timer.Stop()
		select {
		case exitErr = <-p.done:
			exited = true
		case <-timer.C:
			logger.Log.Warnf("xray-core did not exit within %s, killing it", p.stopTimeout)
		case <-ctx.Done():
		}
	}

	if !exited {
		killGroup(p.cmd)
		exitErr = <-p.done
	}

	logger.Log.Infof("xray-core exited: %v", exitStatus(exitErr))
	return nil
}

func (p *Process) cleanup() {
	if p.configPath != "" {
		if err := os.Remove(p.configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Log.Warnf("Failed to remove config file: %v", err)
		} else {
			logger.Log.Debug("Cleaned up temporary config file")
		}
	}
	p.configPath = ""
}

func exitStatus(err error) string {
	if err == nil {
		return "status 0"
	}
	return err.Error()
}
