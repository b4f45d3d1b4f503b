// Package speech exposes read-aloud and dictation as optional capabilities.
//
// Each capability comes in two variants: one backed by an external command
// and one that is unavailable and always returns ErrUnsupported. Callers check
// Available before offering the feature and fall back to plain text input.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrUnsupported is returned by capabilities that are not available.
var ErrUnsupported = errors.New("speech: capability not available")

// Synthesizer reads text aloud.
type Synthesizer interface {
	Available() bool
	Speak(ctx context.Context, text string) error
}

// Recognizer turns one spoken utterance into text. Listening is engaged only
// for the duration of a single Listen call.
type Recognizer interface {
	Available() bool
	Listen(ctx context.Context) (string, error)
}

// commandRunner runs a shell command line with the given stdin and returns
// its trimmed stdout.
type commandRunner interface {
	Run(ctx context.Context, command string, stdin io.Reader) (string, error)
}

// shellRunner invokes commands via sh -c.
type shellRunner struct{}

func (shellRunner) Run(ctx context.Context, command string, stdin io.Reader) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no stderr"
		}
		return "", fmt.Errorf("speech command %q: %w (%s)", command, err, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Unavailable is the variant used when no speech backend is configured.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Speak(context.Context, string) error { return ErrUnsupported }

func (Unavailable) Listen(context.Context) (string, error) { return "", ErrUnsupported }

// CommandSynthesizer pipes text to an external command such as
// "espeak --stdin" or "say -f -".
type CommandSynthesizer struct {
	command string
	runner  commandRunner
}

func (s *CommandSynthesizer) Available() bool { return true }

func (s *CommandSynthesizer) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_, err := s.runner.Run(ctx, s.command, strings.NewReader(text))
	return err
}

// CommandRecognizer runs an external command that records one utterance and
// prints the transcript on stdout.
type CommandRecognizer struct {
	command string
	runner  commandRunner
}

func (r *CommandRecognizer) Available() bool { return true }

func (r *CommandRecognizer) Listen(ctx context.Context) (string, error) {
	return r.runner.Run(ctx, r.command, nil)
}

// NewSynthesizer returns a command-backed synthesizer, or Unavailable when
// command is empty or its program is not installed.
func NewSynthesizer(command string) Synthesizer {
	if !commandInstalled(command) {
		return Unavailable{}
	}
	return &CommandSynthesizer{command: command, runner: shellRunner{}}
}

// NewRecognizer returns a command-backed recognizer, or Unavailable when
// command is empty or its program is not installed.
func NewRecognizer(command string) Recognizer {
	if !commandInstalled(command) {
		return Unavailable{}
	}
	return &CommandRecognizer{command: command, runner: shellRunner{}}
}

var lookPath = exec.LookPath

func commandInstalled(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	_, err := lookPath(fields[0])
	return err == nil
}
