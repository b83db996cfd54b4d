// Package importer turns spreadsheet rows and MS Project XML exports into
// model.Task records.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrisonrobin/takt/pkg/model"
)

// Format is a supported import format.
type Format int

const (
	FormatUnknown Format = iota
	FormatSpreadsheet
	FormatProjectXML
)

func (f Format) String() string {
	switch f {
	case FormatSpreadsheet:
		return "xlsx"
	case FormatProjectXML:
		return "xml"
	}
	return "unknown"
}

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrParseFailure      = errors.New("parse failure")
)

// ParseError reports content that did not match its declared format.
// It matches ErrParseFailure under errors.Is.
type ParseError struct {
	Format Format
	Name   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s file %q: %v", e.Format, e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParseFailure }

// DetectFormat classifies a file by its name suffix. Content is never sniffed.
func DetectFormat(name string) (Format, error) {
	switch {
	case strings.HasSuffix(name, ".xlsx"):
		return FormatSpreadsheet, nil
	case strings.HasSuffix(name, ".xml"):
		return FormatProjectXML, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Import parses r as the format implied by name and normalizes it. Nothing is
// read from r when the format is unsupported.
func Import(name string, r io.Reader) ([]model.Task, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	switch format {
	case FormatSpreadsheet:
		var rows []Row
		rows, err = ReadRows(r)
		if err == nil {
			tasks = NormalizeRows(rows)
		}
	case FormatProjectXML:
		var project *Project
		project, err = ParseProjectXML(r)
		if err == nil {
			tasks = NormalizeProject(project)
		}
	}
	if err != nil {
		return nil, &ParseError{Format: format, Name: name, Err: err}
	}
	return tasks, nil
}

// ImportFile imports the file at path, classified by its base name.
func ImportFile(path string) ([]model.Task, error) {
	name := filepath.Base(path)
	if _, err := DetectFormat(name); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Import(name, f)
}

// Message returns the user-facing text for an import error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFormat):
		return "Please upload a .xlsx or .xml file."
	case errors.Is(err, ErrParseFailure):
		return "Failed to parse file. Check format."
	}
	return err.Error()
}
