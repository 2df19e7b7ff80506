package cmd

import "fmt"

// InputFileError indicates the --input target list could not be read.
type InputFileError struct {
	Path string
	Err  error
}

func (e *InputFileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("input file %s is unreadable", e.Path)
	}
	return fmt.Sprintf("read input file %s: %v", e.Path, e.Err)
}

func (e *InputFileError) Unwrap() error { return e.Err }

// OutputPathError signals that a report could not be written.
type OutputPathError struct {
	Path string
	Err  error
}

func (e *OutputPathError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("write report to %s: %v", e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("output path %s is not writable", e.Path)
	}
	return fmt.Sprintf("write report: %v", e.Err)
}

func (e *OutputPathError) Unwrap() error { return e.Err }
