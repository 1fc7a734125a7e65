package warp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"

	"github.com/yllada/redwarp/common"
)

// ExecRunner runs wgcf as a child process. Output is forwarded line by line
// to the debug log and otherwise ignored.
type ExecRunner struct{}

// Run starts name in dir and waits for it without a deadline.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, err
	}

	common.LogDebug("wgcf: running %s %v in %s", name, args, dir)
	if err := cmd.Start(); err != nil {
		return -1, err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go forwardOutput(&wg, stdout)
	go forwardOutput(&wg, stderr)
	wg.Wait()

	err = cmd.Wait()
	// A killed child reports -1; name the cancellation instead.
	if err != nil && ctx.Err() != nil {
		return -1, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

// forwardOutput copies one pipe to the debug log until it closes.
func forwardOutput(wg *sync.WaitGroup, pipe io.Reader) {
	defer wg.Done()
	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		common.LogDebug("wgcf: %s", scanner.Text())
	}
}
