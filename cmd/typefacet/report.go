package main

import (
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	tf "github.com/reoring/typefacet"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type issueJSON struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type fileReport struct {
	File   string      `json:"file"`
	OK     bool        `json:"ok"`
	Error  string      `json:"error,omitempty"`
	Issues []issueJSON `json:"issues,omitempty"`
}

func newFileReport(file string, st *tf.Status, err error) fileReport {
	r := fileReport{File: file}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.OK = st.OK()
	for _, is := range st.Issues() {
		r.Issues = append(r.Issues, issueJSON{Path: is.Path, Code: is.Code, Message: is.Message})
	}
	return r
}

func writeReports(w io.Writer, format string, reports []fileReport) error {
	if format == formatJSON {
		data, err := j.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	for _, r := range reports {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s: %s\n", r.File, r.Error)
		case r.OK:
			fmt.Fprintf(w, "%s: OK\n", r.File)
		default:
			fmt.Fprintf(w, "%s: %d issue(s)\n", r.File, len(r.Issues))
			for _, is := range r.Issues {
				fmt.Fprintf(w, "  %s [%s] %s\n", is.Path, is.Code, is.Message)
			}
		}
	}
	return nil
}
