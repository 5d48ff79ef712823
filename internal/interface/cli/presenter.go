package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONSOLE PRESENTER
// ══════════════════════════════════════════════════════════════════════════════

const (
	promptText      = "insert a grade or '%s' to quit"
	gradeAddedText  = "A grade was added"
	noGradesText    = "No grades were recorded in the book named %s"
	reportNameText  = "For the book named %s"
	reportLowText   = "The lowest grade is %s"
	reportHighText  = "The highest grade is %s"
	reportAvgText   = "The average grade is %.1f"
	reportLetterTxt = "The letter grade is %s"
)

// RenderReport writes the end-of-session summary.
func RenderReport(w io.Writer, r *query.StatisticsReportDTO) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n%s\n",
		fmt.Sprintf(reportNameText, r.Ledger),
		fmt.Sprintf(reportLowText, formatGrade(r.Low)),
		fmt.Sprintf(reportHighText, formatGrade(r.High)),
		fmt.Sprintf(reportAvgText, r.Average),
		fmt.Sprintf(reportLetterTxt, r.Letter),
	)
	return err
}

// UserMessage turns an error into the line shown to the user: the domain
// message without the package/op prefix when there is one.
func UserMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return err.Error()
}

func formatGrade(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
