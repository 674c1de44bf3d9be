// Package report renders simulation reports for the terminal.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/spachava753/howmanytries/internal/i18n"
	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/scenario"
)

// Format selects how reports are written.
type Format int

const (
	// FormatAuto renders text on a terminal and JSON otherwise.
	FormatAuto Format = iota
	FormatText
	FormatJSON
)

// ParseFormat parses "auto", "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown output format %q", s)
	}
}

// Renderer writes reports to w in one language.
type Renderer struct {
	w       io.Writer
	lang    language.Tag
	printer *message.Printer
	format  Format
	styles  styles
}

// NewRenderer creates a renderer. FormatAuto resolves to FormatText when w is
// a terminal.
func NewRenderer(w io.Writer, lang language.Tag, format Format) *Renderer {
	if format == FormatAuto {
		format = FormatJSON
		if isTerminal(w) {
			format = FormatText
		}
	}
	return &Renderer{
		w:       w,
		lang:    lang,
		printer: i18n.Printer(lang),
		format:  format,
		styles:  newStyles(lipgloss.NewRenderer(w)),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Format returns the resolved output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes a single simulation report.
func (r *Renderer) Render(rep *models.SimulationReport) error {
	if r.format == FormatJSON {
		return r.writeJSON(rep)
	}
	_, err := fmt.Fprintln(r.w, r.text(rep))
	return err
}

func (r *Renderer) text(rep *models.SimulationReport) string {
	s := r.styles
	total := rep.TotalSuccesses + rep.TotalFailures

	var b strings.Builder
	b.WriteString(s.title.Render(r.printer.Sprintf(i18n.MsgResultsTitle, total)))
	b.WriteString("\n\n")

	row := func(label string, value string) {
		b.WriteString(s.label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row(r.printer.Sprintf(i18n.MsgAverageAttempts), s.value.Render(r.decimal(rep.AverageAttempts, 0, 2)))
	row(r.printer.Sprintf(i18n.MsgSuccesses), s.success.Render(fmt.Sprintf("%d/%d", rep.TotalSuccesses, total)))
	row(r.printer.Sprintf(i18n.MsgFailures), s.failure.Render(fmt.Sprintf("%d/%d", rep.TotalFailures, total)))
	row(r.printer.Sprintf(i18n.MsgSuccessPercentage), s.value.Render(r.decimal(rep.SuccessRate, 0, 4)+"%"))
	if rep.MaxAttemptsReached {
		row(r.printer.Sprintf(i18n.MsgLimitReached), s.warning.Render(r.printer.Sprintf(i18n.MsgLimitReachedValue)))
	}
	// Without a success the average is the cap, so the estimate says nothing.
	if rep.TotalSuccesses > 0 {
		row(r.printer.Sprintf(i18n.MsgTheoretical), s.value.Render(r.decimal(rep.TheoreticalProbability, 2, 2)+"%"))
	}

	b.WriteString("\n")
	b.WriteString(s.title.Render(r.printer.Sprintf(i18n.MsgDetails)))
	b.WriteString("\n")
	for i, res := range rep.IndividualResults {
		mark, style := "✓", s.success
		if !res.Success {
			mark, style = "✗", s.failure
		}
		fmt.Fprintf(&b, "  %s %s\n",
			s.label.Render(r.printer.Sprintf(i18n.MsgSimulation, i+1)),
			style.Render(mark+" "+r.printer.Sprintf(i18n.MsgAttempts, res.Attempts)))
	}
	b.WriteString(s.muted.Render(fmt.Sprintf("%d ms", rep.ExecutionTimeMs)))

	return s.box.Render(b.String())
}

// decimal formats v in the renderer's locale.
func (r *Renderer) decimal(v float64, minFrac, maxFrac int) string {
	return r.printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac)))
}

type jsonResult struct {
	Suite    string                   `json:"suite"`
	Scenario string                   `json:"scenario"`
	Report   *models.SimulationReport `json:"report,omitempty"`
	Error    string                   `json:"error,omitempty"`
	Code     models.ErrorType         `json:"code,omitempty"`
}

type jsonSummary struct {
	Total            int          `json:"total"`
	Completed        int          `json:"completed"`
	Rejected         int          `json:"rejected"`
	Failed           int          `json:"failed"`
	TotalDurationSec float64      `json:"totalDurationSec"`
	Results          []jsonResult `json:"results"`
}

// RenderSummary writes the results of a scenario run.
func (r *Renderer) RenderSummary(sum *scenario.Summary) error {
	if r.format == FormatJSON {
		out := jsonSummary{
			Total:            sum.Total,
			Completed:        sum.Completed,
			Rejected:         sum.Rejected,
			Failed:           sum.Failed,
			TotalDurationSec: sum.TotalDurationSec,
			Results:          make([]jsonResult, 0, len(sum.Results)),
		}
		for _, res := range sum.Results {
			jr := jsonResult{Suite: res.Suite, Scenario: res.Scenario.Name, Report: res.Report}
			if res.Err != nil {
				jr.Error, jr.Code = r.errorText(res.Err)
			}
			out.Results = append(out.Results, jr)
		}
		return r.writeJSON(out)
	}

	s := r.styles
	for _, res := range sum.Results {
		header := res.Suite + " / " + res.Scenario.Name
		if res.Scenario.Description != "" {
			header += s.muted.Render(" (" + res.Scenario.Description + ")")
		}
		if _, err := fmt.Fprintln(r.w, s.title.Render(header)); err != nil {
			return err
		}
		if res.Err != nil {
			msg, _ := r.errorText(res.Err)
			if _, err := fmt.Fprintln(r.w, s.failure.Render("✗ "+msg)); err != nil {
				return err
			}
			continue
		}
		if err := r.Render(res.Report); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(r.w, "\n%s %d  %s %d  %s %d  %s %d  %s %.2fs\n",
		s.label.UnsetWidth().Render("total"), sum.Total,
		s.success.Render("completed"), sum.Completed,
		s.warning.Render("rejected"), sum.Rejected,
		s.failure.Render("failed"), sum.Failed,
		s.muted.Render("duration"), sum.TotalDurationSec)
	return err
}

// errorText localizes validation errors; anything else is reported as is.
func (r *Renderer) errorText(err error) (string, models.ErrorType) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return r.printer.Sprintf(ve.Message, ve.Args...), ve.Type()
	}
	return err.Error(), models.ErrInternalError
}

func (r *Renderer) writeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
