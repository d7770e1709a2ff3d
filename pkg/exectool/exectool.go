/*
Copyright 2018 The nodeadm authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package exectool

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner runs host commands. The provisioning packages take a Runner
// instead of calling os/exec directly so tests can substitute a fake.
type Runner interface {
	// RunCommand runs name with args. If stdout is nil the command
	// output is captured and returned, otherwise it is streamed to
	// stdout/stderr. env entries are appended to the current process
	// environment.
	RunCommand(stdout, stderr io.Writer, env []string, name string, args ...string) ([]byte, error)
}

// HostRunner runs commands on the local host.
type HostRunner struct{}

func New() *HostRunner {
	return &HostRunner{}
}

func (r *HostRunner) RunCommand(stdout, stderr io.Writer, env []string, name string, args ...string) ([]byte, error) {
	cmdPath, err := exec.LookPath(name)
	if err != nil {
		return nil, err
	}

	run := exec.Cmd{
		Path:   cmdPath,
		Args:   append([]string{name}, args...),
		Stdout: stdout,
		Stderr: stderr,
	}
	if len(env) > 0 {
		run.Env = append(os.Environ(), env...)
	}

	var buf []byte

	if stdout != nil {
		err = run.Run()
	} else {
		buf, err = run.Output()
	}
	if err != nil {
		// Stderr is only captured by Output; in streaming mode it is
		// empty and the exit error itself is the best cause we have.
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%q failed: %s", strings.Join(run.Args, " "), exitErr.Stderr)
		}
		return nil, fmt.Errorf("%q failed: %s", strings.Join(run.Args, " "), err)
	}
	return buf, nil
}

// Run streams the command output to the calling process.
func Run(r Runner, name string, args ...string) error {
	_, err := r.RunCommand(os.Stdout, os.Stderr, nil, name, args...)
	return err
}

// Output runs the command and returns its captured stdout.
func Output(r Runner, name string, args ...string) ([]byte, error) {
	return r.RunCommand(nil, nil, nil, name, args...)
}
