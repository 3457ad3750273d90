// Package profile records runtime profiles around a command.
//
// The CPU profile and execution trace cover the whole run; heap and
// goroutine profiles are snapshots taken when the run ends. Each is enabled
// by giving it an output path:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(root.PersistentFlags())
//
//	s, err := cfg.Start()
//	defer s.Stop()
package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling.
type Flags struct {
	CPU       string
	Trace     string
	Heap      string
	Goroutine string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds profile output paths. Empty paths are disabled.
type Config struct {
	CPU       string
	Trace     string
	Heap      string
	Goroutine string
	Flags     Flags
}

// NewConfig returns a [Config] with the default flag names.
func NewConfig() *Config {
	f := Flags{
		CPU:       "cpu-profile",
		Trace:     "trace",
		Heap:      "heap-profile",
		Goroutine: "goroutine-profile",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPU, c.Flags.CPU, "", "write a CPU profile to file")
	flags.StringVar(&c.Trace, c.Flags.Trace, "", "write an execution trace to file")
	flags.StringVar(&c.Heap, c.Flags.Heap, "", "write a heap profile to file on exit")
	flags.StringVar(&c.Goroutine, c.Flags.Goroutine, "", "write a goroutine profile to file on exit")
}

// RegisterCompletions registers shell completions for profiling flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, name := range []string{c.Flags.CPU, c.Flags.Trace, c.Flags.Heap, c.Flags.Goroutine} {
		err := cmd.RegisterFlagCompletionFunc(name,
			cobra.FixedCompletions([]string{"prof", "out"}, cobra.ShellCompDirectiveFilterFileExt))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// Session is a running profile. Create one with [Config.Start].
type Session struct {
	cpu   *os.File
	trace *os.File
	cfg   Config
}

// Start begins the CPU profile and trace, if enabled. The returned
// [Session] must be stopped even when nothing is enabled.
func (c *Config) Start() (*Session, error) {
	s := &Session{cfg: *c}

	if c.CPU != "" {
		f, err := os.Create(c.CPU) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return nil, fmt.Errorf("create CPU profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("start CPU profile: %w", err), f.Close())
		}

		s.cpu = f
	}

	if c.Trace != "" {
		f, err := os.Create(c.Trace) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return nil, errors.Join(fmt.Errorf("create trace: %w", err), s.Stop())
		}

		err = trace.Start(f)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("start trace: %w", err), f.Close(), s.Stop())
		}

		s.trace = f
	}

	return s, nil
}

// Stop ends the CPU profile and trace and writes the snapshot profiles.
// It is safe to call more than once.
func (s *Session) Stop() error {
	var errs []error

	if s.trace != nil {
		trace.Stop()
		errs = append(errs, s.trace.Close())
		s.trace = nil
	}

	if s.cpu != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpu.Close())
		s.cpu = nil
	}

	if s.cfg.Heap != "" {
		runtime.GC()
		errs = append(errs, writeSnapshot("heap", s.cfg.Heap))
	}

	if s.cfg.Goroutine != "" {
		errs = append(errs, writeSnapshot("goroutine", s.cfg.Goroutine))
	}

	s.cfg.Heap, s.cfg.Goroutine = "", ""

	return errors.Join(errs...)
}

func writeSnapshot(name, path string) error {
	p := pprof.Lookup(name)
	if p == nil {
		return fmt.Errorf("unknown profile %q", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = p.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	return f.Close()
}
