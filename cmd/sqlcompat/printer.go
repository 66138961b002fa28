package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// printer writes rows as tab-separated lines under a highlighted header.
type printer struct {
	writer  io.Writer
	header  *color.Color
	summary *color.Color
}

func newPrinter(writer io.Writer, colorful bool) *printer {
	this := &printer{
		writer:  writer,
		header:  color.New(color.FgCyan, color.Bold),
		summary: color.New(color.Faint),
	}

	if !colorful {
		this.header.DisableColor()
		this.summary.DisableColor()
	}

	return this
}

func (this *printer) Header(columns []string) {
	_, _ = this.header.Fprintln(this.writer, strings.Join(columns, "\t"))
}
func (this *printer) Row(values []interface{}) {
	cells := make([]string, len(values))
	for i, value := range values {
		cells[i] = formatValue(value)
	}
	_, _ = fmt.Fprintln(this.writer, strings.Join(cells, "\t"))
}
func (this *printer) Summary(format string, args ...interface{}) {
	_, _ = this.summary.Fprintf(this.writer, format+"\n", args...)
}

func formatValue(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(typed)
	case time.Time:
		return typed.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(typed)
	}
}
