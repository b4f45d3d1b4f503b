package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"quiz-tutor/internal/client"
	"quiz-tutor/internal/config"
	"quiz-tutor/internal/quizcli"
	"quiz-tutor/internal/speech"

	"golang.org/x/term"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	baseURL := flag.String("url", cfg.Client.BaseURL, "base URL of the quiz API")
	speakCmd := flag.String("speak-cmd", cfg.Client.SpeakCommand, "command that reads stdin aloud (empty disables read-aloud)")
	listenCmd := flag.String("listen-cmd", cfg.Client.ListenCommand, "command that prints one transcribed utterance (empty disables dictation)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := quizcli.NewSession(client.New(*baseURL, cfg.Client.Timeout), os.Stdin, os.Stdout, quizcli.Options{
		Synthesizer: speech.NewSynthesizer(*speakCmd),
		Recognizer:  speech.NewRecognizer(*listenCmd),
		Color:       term.IsTerminal(int(os.Stdout.Fd())),
	})

	if _, err := session.Run(ctx); err != nil {
		if errors.Is(err, quizcli.ErrIncomplete) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Quiz aborted before submission.")
		} else {
			fmt.Fprintf(os.Stderr, "quizcli: %v\n", err)
		}
		os.Exit(1)
	}
}
