package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

//go:generate mockgen -destination=./app_mock.go -package=app -source=app.go

// Dependency is the interface that wraps the basic methods of a dependency required for the application.
type Dependency interface {
	// Start returns once the dependency is ready to be used. Long-running work, like serving,
	// happens in the dependency's own goroutines.
	Start() error
	// Stop is anything a dependency needs to do before it's ready to be stopped
	Stop() error
	// Name is the name of the dependency. It is used for logging and identification purposes, only.
	Name() string
}

type App struct {
	serviceName string
	// deps are started in order and stopped in reverse order.
	deps []Dependency
	// osSignalChan is a channel that will be used to signal when the OS has sent a signal to the application.
	osSignalChan chan os.Signal
	// runCalled allows Run to be called once
	runCalled *atomic.Bool
	// stopTimeout is the amount of time the application will wait for dependencies to stop before exiting.
	stopTimeout time.Duration
}

type Config struct {
	ServiceName string
	StopTimeout time.Duration
}

func (c *Config) validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.StopTimeout == 0 {
		errs = append(errs, errors.New("stop timeout is required"))
	}
	return errors.Join(errs...)
}

// CreateApp creates a new application with the provided dependencies.
func CreateApp(cfg *Config, deps ...Dependency) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &App{
		serviceName:  cfg.ServiceName,
		deps:         deps,
		stopTimeout:  cfg.StopTimeout,
		runCalled:    &atomic.Bool{},
		osSignalChan: make(chan os.Signal, 1), // first signal we get shuts down the app
	}, nil
}

// Run starts every dependency in order, then blocks until ctx is cancelled or the OS asks the
// process to stop. A dependency that fails to start stops the ones already started and its
// error is returned.
func (a *App) Run(ctx context.Context) error {
	if !a.runCalled.CompareAndSwap(false, true) {
		return errors.New("run has already been called")
	}

	started, startErr := a.start()
	if startErr != nil {
		log.Error().Msg("Dependency failed to start: " + startErr.Error())
		return errors.Join(startErr, a.stop(started))
	}

	signal.Notify(a.osSignalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(a.osSignalChan)

	log.Info().Msgf("%s running", a.serviceName)
	select {
	case <-ctx.Done():
		log.Info().Msg("App Context cancelled: shutting down")
	case sig := <-a.osSignalChan:
		log.Info().Msg("OS Signal received: " + sig.String() + " shutdown beginning...")
	}

	if err := a.stop(started); err != nil {
		log.Error().Msg("Error stopping application: " + err.Error())
		return err
	}
	return nil
}

// start returns the dependencies that started successfully.
func (a *App) start() (started []Dependency, err error) {
	for _, dep := range a.deps {
		log.Info().Msg("Starting dependency: " + dep.Name())
		if err := startDependency(dep); err != nil {
			return started, err
		}
		started = append(started, dep)
	}
	return started, nil
}

func startDependency(dep Dependency) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in Start() for dependency %s: %v", dep.Name(), r)
		}
	}()
	if err := dep.Start(); err != nil {
		return fmt.Errorf("failure in Start() for dependency %s: %v", dep.Name(), err)
	}
	return nil
}

// stop attempts a graceful shutdown of deps in reverse order.
func (a *App) stop(deps []Dependency) error {
	done := make(chan error, 1)

	go func() {
		var errs []error
		for i := len(deps) - 1; i >= 0; i-- {
			dep := deps[i]
			log.Info().Msg("Stopping dependency: " + dep.Name())
			if err := dep.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("failure in Stop() for dependency %s: %v", dep.Name(), err))
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(a.stopTimeout):
		return fmt.Errorf("%s: dependencies did not stop within %s: %w", a.serviceName,
			a.stopTimeout, context.DeadlineExceeded)
	}
}
