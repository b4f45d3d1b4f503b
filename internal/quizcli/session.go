// Package quizcli runs an interactive quiz in the terminal.
package quizcli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quiz-tutor/internal/client"
	"quiz-tutor/internal/dto"
	"quiz-tutor/internal/speech"
)

const (
	cmdSpeak  = ":speak"
	cmdListen = ":listen"
)

// ErrIncomplete is returned when input ends before every question has an answer.
var ErrIncomplete = errors.New("input ended before all questions were answered")

// API is the part of the quiz API a session needs.
type API interface {
	Questions() ([]dto.QuestionResponse, error)
	Submit(answers []client.Answer) (int, error)
}

// Options configure a Session.
type Options struct {
	Synthesizer speech.Synthesizer
	Recognizer  speech.Recognizer
	Color       bool
}

// Session walks the user through one quiz.
type Session struct {
	api    API
	in     *bufio.Scanner
	out    io.Writer
	synth  speech.Synthesizer
	rec    speech.Recognizer
	styles styles
}

// NewSession creates a session reading answers from in and writing to out.
func NewSession(api API, in io.Reader, out io.Writer, opts Options) *Session {
	synth, rec := opts.Synthesizer, opts.Recognizer
	if synth == nil {
		synth = speech.Unavailable{}
	}
	if rec == nil {
		rec = speech.Unavailable{}
	}
	return &Session{
		api:    api,
		in:     bufio.NewScanner(in),
		out:    out,
		synth:  synth,
		rec:    rec,
		styles: newStyles(opts.Color),
	}
}

// Run fetches the questions, collects one answer per question and submits
// them all at once. It returns the score.
func (s *Session) Run(ctx context.Context) (int, error) {
	questions, err := s.api.Questions()
	if err != nil {
		return 0, err
	}
	if len(questions) == 0 {
		s.println(s.styles.notice.Render("No questions available."))
		return 0, nil
	}

	s.println(s.styles.title.Render(fmt.Sprintf("Quiz: %d questions", len(questions))))
	s.println(s.styles.hint.Render(s.helpLine()))

	answers := make([]string, len(questions))
	for i, q := range questions {
		if answers[i], err = s.ask(ctx, i, q); err != nil {
			return 0, err
		}
	}

	for {
		blank := blankAnswers(answers)
		if len(blank) == 0 {
			break
		}
		s.println(s.styles.notice.Render("Please answer all questions before submitting. Missing: " + joinNumbers(blank)))
		for _, i := range blank {
			if answers[i], err = s.ask(ctx, i, questions[i]); err != nil {
				return 0, err
			}
		}
	}

	payload := make([]client.Answer, 0, len(questions))
	for i, q := range questions {
		payload = append(payload, client.Answer{QuestionID: q.ID, Answer: answers[i]})
	}

	score, err := s.api.Submit(payload)
	if err != nil {
		return 0, err
	}
	s.println(s.styles.score.Render(fmt.Sprintf("Your score: %d / %d", score, len(questions))))
	return score, nil
}

func (s *Session) helpLine() string {
	parts := []string{"Type your answer and press Enter."}
	if s.synth.Available() {
		parts = append(parts, cmdSpeak+" reads the question aloud.")
	}
	if s.rec.Available() {
		parts = append(parts, cmdListen+" dictates an answer.")
	}
	return strings.Join(parts, " ")
}

func (s *Session) ask(ctx context.Context, i int, q dto.QuestionResponse) (string, error) {
	s.println("")
	s.println(s.styles.question.Render(fmt.Sprintf("%d. %s", i+1, q.Text)))
	for j, opt := range q.Options {
		s.println(s.styles.option.Render(fmt.Sprintf("   %d) %s", j+1, opt)))
	}

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return "", err
			}
			return "", ErrIncomplete
		}
		line := strings.TrimSpace(s.in.Text())

		switch line {
		case cmdSpeak:
			s.speak(ctx, q)
			continue
		case cmdListen:
			heard, ok := s.listen(ctx)
			if !ok {
				continue
			}
			line = heard
		}
		return resolveOption(q, line), nil
	}
}

func (s *Session) speak(ctx context.Context, q dto.QuestionResponse) {
	text := q.Text
	if len(q.Options) > 0 {
		text += " Options: " + strings.Join(q.Options, ", ") + "."
	}
	if err := s.synth.Speak(ctx, text); err != nil {
		s.reportSpeechError("Read-aloud", err)
	}
}

func (s *Session) listen(ctx context.Context) (string, bool) {
	s.println(s.styles.hint.Render("Listening..."))
	heard, err := s.rec.Listen(ctx)
	if err != nil {
		s.reportSpeechError("Dictation", err)
		return "", false
	}
	s.println(s.styles.hint.Render("Heard: " + heard))
	return heard, true
}

func (s *Session) reportSpeechError(feature string, err error) {
	if errors.Is(err, speech.ErrUnsupported) {
		s.println(s.styles.notice.Render(feature + " is not available here. Please type your answer."))
		return
	}
	s.println(s.styles.notice.Render(fmt.Sprintf("%s failed: %v", feature, err)))
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}

// resolveOption maps input to an option for questions that have options.
// Input naming an option wins over a 1-based option number, so numeric
// options are never shifted. Other input is returned unchanged.
func resolveOption(q dto.QuestionResponse, input string) string {
	if len(q.Options) == 0 {
		return input
	}
	for _, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(input)) {
			return opt
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(q.Options) {
		return input
	}
	return q.Options[n-1]
}

func blankAnswers(answers []string) []int {
	var blank []int
	for i, a := range answers {
		if strings.TrimSpace(a) == "" {
			blank = append(blank, i)
		}
	}
	return blank
}

func joinNumbers(indexes []int) string {
	parts := make([]string, 0, len(indexes))
	for _, i := range indexes {
		parts = append(parts, strconv.Itoa(i+1))
	}
	return strings.Join(parts, ", ")
}
