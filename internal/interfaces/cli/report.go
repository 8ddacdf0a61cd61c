package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-badminton/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func writeReport(w io.Writer, format string, report usecase.RunReport) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		return sonic.ConfigDefault.NewEncoder(w).Encode(report)
	case formatText, "":
		_, err := io.WriteString(w, renderText(report))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(report usecase.RunReport) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(parts ...string) {
		_, _ = buf.WriteString(strings.Join(parts, ""))
		_ = buf.WriteByte('\n')
	}

	result := report.Result
	line("Ingestion run ", report.RunID)
	if report.DryRun {
		line("  mode:                dry run (no writes)")
	}
	line("  days scraped:        ", strconv.Itoa(len(report.DayBatches)))
	line("  matches found:       ", strconv.Itoa(report.TotalMatches))
	line("  matches processed:   ", strconv.Itoa(result.MatchesProcessed))
	line("  skipped (unresolved):", " ", strconv.Itoa(result.SkippedUnresolved))
	line("  errors:              ", strconv.Itoa(len(result.Errors)))
	line("  points awarded:      ", strconv.Itoa(result.PointsAwarded))
	line("  new match records:   ", strconv.Itoa(result.NewMatchesCreated))
	if len(result.DatesIngested) > 0 {
		line("  dates ingested:      ", strings.Join(result.DatesIngested, ", "))
	}
	if len(result.DatesDeferred) > 0 {
		line("  dates deferred:      ", strings.Join(result.DatesDeferred, ", "))
	}

	if len(result.UnresolvedNames) > 0 {
		line("")
		line("Players not in registry (", strconv.Itoa(len(result.UnresolvedNames)), "):")
		for _, name := range result.UnresolvedNames {
			line("  - ", name)
		}
	}
	if len(result.Errors) > 0 {
		line("")
		line("Errors:")
		for _, msg := range result.Errors {
			line("  - ", msg)
		}
	}

	if players := report.Players; players != nil {
		line("")
		line("Player match report: ", strconv.Itoa(players.TotalUnique), " unique, ",
			strconv.Itoa(len(players.InRegistry)), " in registry, ",
			strconv.Itoa(len(players.NotInRegistry)), " missing")
		for _, name := range players.NotInRegistry {
			if hints := players.Suggestions[name]; len(hints) > 0 {
				line("  - ", name, " (did you mean: ", strings.Join(hints, ", "), ")")
				continue
			}
			line("  - ", name)
		}
	}

	return buf.String()
}

func renderLedger(w io.Writer, labels []string) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if len(labels) == 0 {
		_, _ = buf.WriteString("No days ingested yet.\n")
	}
	for _, label := range labels {
		_, _ = buf.WriteString(label)
		_ = buf.WriteByte('\n')
	}
	_, err := w.Write(buf.B)
	return err
}
