package main

import (
	"fmt"
	"io"

	"strum/internal/driver"
	"strum/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	for _, p := range report.Phases {
		fmt.Fprintf(out, "%s %.1f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(out, "total %.1f ms\n", report.TotalMS)
}

func printDocumentSummary(out io.Writer, path string, result *driver.CompileResult) {
	doc := result.Document
	if doc == nil {
		fmt.Fprintf(out, "%s: failed\n", path)
		return
	}
	fmt.Fprintf(out, "%s: %d imports, loop %.2f beats\n", path, len(doc.Imports), doc.LoopLength())
	for _, name := range doc.TrackNames() {
		events := doc.Tracks[name]
		fmt.Fprintf(out, "  %-10s %d events\n", name, len(events))
	}
}
