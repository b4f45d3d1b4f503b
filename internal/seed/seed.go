// Package seed loads question banks from YAML or JSON files.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quiz-tutor/internal/domain"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a question bank.
type File struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is one entry of a question bank. ID is optional; when zero the
// store assigns one.
type Question struct {
	ID            int64    `json:"id,omitempty" yaml:"id,omitempty"`
	Text          string   `json:"text" yaml:"text"`
	QuestionType  string   `json:"question_type" yaml:"question_type"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty" yaml:"correct_answer,omitempty"`
}

// Load reads, parses and validates a question bank file.
func Load(path string) ([]*domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes data as JSON when path ends in .json and as YAML otherwise,
// then validates every question. All validation problems are reported together.
func Parse(data []byte, path string) ([]*domain.Question, error) {
	var (
		file File
		err  error
	)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		file, err = parseJSON(data)
	} else {
		file, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}
	if len(file.Questions) == 0 {
		return nil, errors.New("question bank has no questions")
	}

	questions := make([]*domain.Question, 0, len(file.Questions))
	seenIDs := make(map[int64]int)
	var problems []error
	for i, q := range file.Questions {
		dq := q.toDomain()
		if err := dq.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("question %d: %w", i+1, err))
		}
		if dq.ID != 0 {
			if first, dup := seenIDs[dq.ID]; dup {
				problems = append(problems, fmt.Errorf("question %d: id %d already used by question %d", i+1, dq.ID, first))
			} else {
				seenIDs[dq.ID] = i + 1
			}
		}
		questions = append(questions, dq)
	}
	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return questions, nil
}

func (q Question) toDomain() *domain.Question {
	dq := &domain.Question{
		ID:            q.ID,
		Text:          strings.TrimSpace(q.Text),
		Type:          domain.QuestionType(strings.ToLower(strings.TrimSpace(q.QuestionType))),
		CorrectAnswer: strings.TrimSpace(q.CorrectAnswer),
	}
	if q.Options != nil {
		dq.Options = append([]string{}, q.Options...)
	}
	return dq
}

func parseJSON(data []byte) (File, error) {
	var file File
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	return file, nil
}

func parseYAML(data []byte) (File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return file, nil
}
