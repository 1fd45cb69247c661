package iojson

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// FileReader decodes a T from the file named by its flag, or from stdin when
// the flag is unset. Files ending in .yaml or .yml are decoded as YAML,
// everything else as JSON.
type FileReader[T any] struct {
	fileFlagValue string
	stdin         io.Reader
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to a JSON or YAML file (reads JSON from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Path returns the file flag value.
func (fr *FileReader[T]) Path() string {
	return fr.fileFlagValue
}

func (fr *FileReader[T]) Read() (T, error) {
	var input T

	if fr.fileFlagValue != "" {
		data, err := os.ReadFile(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}

		switch strings.ToLower(filepath.Ext(fr.fileFlagValue)) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, &input); err != nil {
				return input, fmt.Errorf("decode YAML: %w", err)
			}
			return input, nil
		default:
			return decodeJSON[T](data)
		}
	}

	reader := fr.stdin
	if reader == nil {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = os.Stdin
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return input, fmt.Errorf("read stdin: %w", err)
	}
	return decodeJSON[T](data)
}

func decodeJSON[T any](data []byte) (T, error) {
	var input T
	if err := sonic.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}
