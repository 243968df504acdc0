package vocabimport

import "github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"

// Report is the client-facing summary of a validated batch.
type Report struct {
	Valid     []ValidRow   `json:"valid"`
	Invalid   []InvalidRow `json:"invalid"`
	CanCommit bool         `json:"can_commit"`
}

type ValidRow struct {
	Line  int                  `json:"line"`
	Vocab domain.NewVocabulary `json:"vocab"`
}

type InvalidRow struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// Report summarizes the batch.
func (b Batch) Report() Report {
	r := Report{
		Valid:     make([]ValidRow, 0, len(b.rows)),
		Invalid:   make([]InvalidRow, 0),
		CanCommit: b.CanCommit(),
	}
	for _, row := range b.rows {
		if row.IsValid() {
			r.Valid = append(r.Valid, ValidRow{Line: row.Line, Vocab: row.Vocab})
			continue
		}
		r.Invalid = append(r.Invalid, InvalidRow{
			Line:    row.Line,
			Content: row.Content,
			Reason:  row.Reason,
			Message: row.Reason.Message(),
		})
	}
	return r
}
