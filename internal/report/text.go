// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the text report styles for one output. The renderer is
// bound to the writer so color is dropped when w is not a terminal.
type styles struct {
	header  lipgloss.Style
	muted   lipgloss.Style
	running lipgloss.Style
	passed  lipgloss.Style
	failed  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	renderer := lipgloss.NewRenderer(w)
	return styles{
		header:  renderer.NewStyle().Bold(true),
		muted:   renderer.NewStyle().Faint(true),
		running: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		passed:  renderer.NewStyle().Foreground(lipgloss.Color("2")),
		failed:  renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (s styles) state(state string) lipgloss.Style {
	switch state {
	case StatePassed:
		return s.passed
	case StateFailed:
		return s.failed
	default:
		return s.running
	}
}

// writeText renders:
//
//	Build 4242, leader 4242.1: 2 of 3 peers finished, 1 succeeded, 1 failed, 1 running
//
//	  JOB      STATE     RESULT  ID
//	  4242.1   running   -       901   (leader)
//	  4242.2   passed    0       902
func writeText(w io.Writer, r Report) error {
	s := newStyles(w)

	var builder strings.Builder
	summary := r.Summary
	title := fmt.Sprintf("Build %d", r.BuildID)
	if r.Leader != "" {
		title += ", leader " + r.Leader
	}
	fmt.Fprintf(&builder, "%s: %d of %d peers finished, %d succeeded, %d failed, %d running\n\n",
		s.header.Render(title),
		summary.Finished, summary.Peers, summary.Succeeded, summary.Failed, summary.Running)

	numberWidth := len("JOB")
	for _, row := range r.Jobs {
		numberWidth = max(numberWidth, len(row.Number))
	}
	numberWidth += 3
	const stateWidth, resultWidth, idWidth = 10, 8, 12

	pad := func(text string, width int) string {
		if len(text) >= width {
			return text + " "
		}
		return text + strings.Repeat(" ", width-len(text))
	}

	builder.WriteString("  ")
	builder.WriteString(s.header.Render(pad("JOB", numberWidth) + pad("STATE", stateWidth) +
		pad("RESULT", resultWidth) + "ID"))
	builder.WriteString("\n")

	for _, row := range r.Jobs {
		result := "-"
		if row.Result != nil {
			result = strconv.Itoa(*row.Result)
		}
		id := "-"
		if row.ID != nil {
			id = strconv.FormatInt(*row.ID, 10)
		}

		builder.WriteString("  ")
		builder.WriteString(pad(row.Number, numberWidth))
		builder.WriteString(s.state(row.State).Render(pad(row.State, stateWidth)))
		builder.WriteString(pad(result, resultWidth))
		if row.Leader {
			builder.WriteString(pad(id, idWidth))
			builder.WriteString(s.muted.Render("(leader)"))
		} else {
			builder.WriteString(id)
		}
		builder.WriteString("\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}
