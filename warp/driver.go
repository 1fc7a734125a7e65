package warp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yllada/redwarp/common"
)

// Paths locates wgcf and the files of a run.
type Paths struct {
	// WorkDir is where wgcf runs and where all files live.
	WorkDir string
	// Binary is the wgcf executable. A bare name is looked up in PATH,
	// any other relative path is resolved against WorkDir.
	Binary string
	// Output is the final profile name, relative to WorkDir unless absolute.
	Output string
}

// DefaultPaths returns the bundled layout in the current directory.
func DefaultPaths() Paths {
	return Paths{
		WorkDir: ".",
		Binary:  common.DefaultBinaryPath(),
		Output:  common.OutputFileName,
	}
}

// TemplatePath returns the profile written by "wgcf generate".
func (p Paths) TemplatePath() string {
	return filepath.Join(p.WorkDir, common.TemplateFileName)
}

// AccountPath returns the account state written by "wgcf register".
func (p Paths) AccountPath() string {
	return filepath.Join(p.WorkDir, common.AccountFileName)
}

// OutputPath returns the final profile location.
func (p Paths) OutputPath() string {
	return common.ResolvePath(p.WorkDir, p.Output)
}

// Result describes a verified generation run.
type Result struct {
	RunID      string
	OutputPath string
	// Obfuscation is nil when no block was inserted.
	Obfuscation *ObfuscationParams
	Duration    time.Duration
}

// Message is the success text shown to the user.
func (r *Result) Message() string {
	return fmt.Sprintf("Configuration successfully updated and saved to %s!", filepath.Base(r.OutputPath))
}

// Driver runs the full generation pipeline.
type Driver struct {
	Paths  Paths
	Runner common.CommandRunner
	// Rand feeds randomized obfuscation; nil uses DefaultSource.
	Rand IntSource
	// Log receives progress messages; nil uses the application logger.
	Log common.Logger
}

// NewDriver creates a driver that runs wgcf through runner.
func NewDriver(paths Paths, runner common.CommandRunner) *Driver {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Driver{Paths: paths, Runner: runner}
}

func (d *Driver) logger() common.Logger {
	if d.Log != nil {
		return d.Log
	}
	return common.GetLogger()
}

// Generate registers a WARP account, generates its profile and rewrites it
// according to opts. On success the output file exists and has been verified.
func (d *Driver) Generate(ctx context.Context, opts Options) (*Result, error) {
	log := d.logger()
	// An empty value would pass Verify as a bare prefix.
	if err := opts.Validate(); err != nil {
		log.Error("Refusing to run: %v", err)
		return nil, err
	}

	start := time.Now()
	runID := uuid.NewString()
	log.Info("Run %s: generating %s", runID, d.Paths.OutputPath())

	res, err := d.generate(ctx, opts, runID)
	if err != nil {
		log.Error("Run %s failed: %v", runID, err)
		return nil, err
	}

	res.Duration = time.Since(start)
	log.Info("Run %s finished in %v", runID, res.Duration.Round(time.Millisecond))
	return res, nil
}

func (d *Driver) generate(ctx context.Context, opts Options, runID string) (*Result, error) {
	output := d.Paths.OutputPath()
	template := d.Paths.TemplatePath()
	log := d.logger()

	for _, stale := range []string{output, d.Paths.AccountPath()} {
		if err := common.RemoveIfExists(stale); err != nil {
			return nil, newError(IOFailure, stale, "could not remove previous file", err)
		}
	}

	binary, err := d.resolveBinary()
	if err != nil {
		return nil, err
	}
	log.Debug("Run %s: using %s", runID, binary)

	steps := [][]string{
		{"register", "--accept-tos"},
		{"generate"},
	}
	for _, args := range steps {
		if err := d.runStep(ctx, binary, args...); err != nil {
			return nil, err
		}
	}

	if !common.FileExists(template) {
		return nil, newError(MissingTemplate, template, "wgcf did not produce its profile", nil)
	}

	obfs, ok := NewObfuscation(opts.Obfuscation, opts.RandomizeObfuscation, d.Rand)
	var block *ObfuscationParams
	if ok {
		block = &obfs
		log.Debug("Run %s: obfuscation Jc=%d Jmin=%d Jmax=%d", runID, obfs.Jc, obfs.Jmin, obfs.Jmax)
	}

	temp := template + common.TempSuffix
	if err := rewrite(template, temp, opts, block); err != nil {
		os.Remove(temp)
		return nil, newError(IOFailure, template, "could not rewrite profile", err)
	}

	if err := os.Rename(temp, template); err != nil {
		os.Remove(temp)
		return nil, newError(IOFailure, temp, "could not replace profile", err)
	}
	if err := os.Rename(template, output); err != nil {
		return nil, newError(IOFailure, output, "could not rename profile", err)
	}

	// An unverified profile must not be mistaken for a good one.
	if err := Verify(output, opts); err != nil {
		os.Remove(output)
		return nil, err
	}

	return &Result{RunID: runID, OutputPath: output, Obfuscation: block}, nil
}

// resolveBinary locates wgcf without running it.
func (d *Driver) resolveBinary() (string, error) {
	name := d.Paths.Binary
	if name == "" {
		return "", newError(MissingBinary, "", "no wgcf path configured", nil)
	}

	if !strings.ContainsAny(name, `/\`) {
		path, err := exec.LookPath(name)
		if err != nil {
			return "", newError(MissingBinary, name, "binary not found in PATH", err)
		}
		return path, nil
	}

	path, err := filepath.Abs(common.ResolvePath(d.Paths.WorkDir, name))
	if err != nil {
		return "", newError(MissingBinary, name, "invalid binary path", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", newError(MissingBinary, path, "binary not found; make sure it exists and is accessible", err)
	}
	if info.IsDir() {
		return "", newError(MissingBinary, path, "binary path is a directory", nil)
	}
	return path, nil
}

// runStep runs one wgcf operation and requires exit status 0.
func (d *Driver) runStep(ctx context.Context, binary string, args ...string) error {
	command := filepath.Base(binary) + " " + strings.Join(args, " ")

	code, err := d.Runner.Run(ctx, d.Paths.WorkDir, binary, args...)
	if err != nil {
		if ctx.Err() != nil {
			return newError(ExternalCommandFailed, command, "cancelled", err)
		}
		return newError(ExternalCommandFailed, command, "could not run command", err)
	}
	if code != 0 {
		return newError(ExternalCommandFailed, command, fmt.Sprintf("exited with status %d", code), nil)
	}
	return nil
}

// rewrite streams template through Transform into temp. Both files are
// closed before it returns.
func rewrite(template, temp string, opts Options, obfs *ObfuscationParams) (err error) {
	in, err := os.Open(template)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(temp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return Transform(in, out, opts, obfs)
}

// Verify checks that path contains the MTU, Endpoint and DNS values of opts.
func Verify(path string, opts Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newError(VerificationFailed, path, "output file is missing", err)
		}
		return newError(IOFailure, path, "could not read output", err)
	}
	content := string(data)

	expected := []string{
		mtuPrefix + opts.MTU,
		endpointPrefix + opts.Endpoint,
		dnsPrefix + opts.DNSv4,
	}
	for _, want := range expected {
		if !strings.Contains(content, want) {
			return newError(VerificationFailed, path, fmt.Sprintf("missing %q", want), nil)
		}
	}
	return nil
}
