package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource reads a curated question list from a YAML or JSON file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type questionFile struct {
	Questions []fileQuestion `json:"questions" yaml:"questions"`
}

type fileQuestion struct {
	Category   string `json:"category" yaml:"category"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
	Question   string `json:"question" yaml:"question"`
	Answer     string `json:"answer" yaml:"answer"`
}

// Fetch returns up to amount questions from the file in order; amount <= 0
// returns all of them. A non-empty difficulty keeps only matching entries.
func (s *FileSource) Fetch(ctx context.Context, amount int, difficulty string) ([]RemoteQuestion, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}
	parsed, err := parseQuestionFile(data, s.path)
	if err != nil {
		return nil, err
	}

	out := make([]RemoteQuestion, 0, len(parsed.Questions))
	for i, q := range parsed.Questions {
		if q.Question == "" || q.Answer == "" {
			return nil, fmt.Errorf("question %d: question and answer are required", i+1)
		}
		if difficulty != "" && !strings.EqualFold(q.Difficulty, difficulty) {
			continue
		}
		out = append(out, RemoteQuestion(q))
		if amount > 0 && len(out) == amount {
			break
		}
	}
	return out, nil
}

func parseQuestionFile(data []byte, path string) (questionFile, error) {
	var parsed questionFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&parsed); err != nil {
			return questionFile{}, fmt.Errorf("parse json: %w", err)
		}
		return parsed, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		if err == io.EOF {
			return questionFile{}, nil
		}
		return questionFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	return parsed, nil
}
