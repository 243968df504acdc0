package vocabimport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

// ColumnSpec describes how one line of import text maps to a vocabulary row.
// Columns other than LevelColumn are read, in order, as traditional,
// simplified, pinyin and english; any further columns are ignored.
type ColumnSpec struct {
	Count       int
	Delimiter   string
	LevelColumn int
	MinLevel    int
	MaxLevel    int
}

// DefaultColumnSpec is "level,traditional,simplified,pinyin,english".
func DefaultColumnSpec() ColumnSpec {
	return ColumnSpec{
		Count:       5,
		Delimiter:   ",",
		LevelColumn: 0,
		MinLevel:    domain.MinLevel,
		MaxLevel:    domain.MaxLevel,
	}
}

// SpecFromConfig builds a ColumnSpec from the import configuration.
func SpecFromConfig(cfg config.ImportConfig) ColumnSpec {
	return ColumnSpec{
		Count:       cfg.ColumnCount,
		Delimiter:   cfg.Delimiter,
		LevelColumn: cfg.LevelColumn,
		MinLevel:    cfg.MinLevel,
		MaxLevel:    cfg.MaxLevel,
	}
}

// Validate checks that the spec can describe a vocabulary row.
func (s ColumnSpec) Validate() error {
	var errs []domain.FieldError
	if s.Count < 5 {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be at least 5"})
	}
	if s.Delimiter == "" {
		errs = append(errs, domain.FieldError{Field: "delimiter", Message: "required"})
	}
	if s.LevelColumn < 0 || s.LevelColumn >= s.Count {
		errs = append(errs, domain.FieldError{Field: "level_column", Message: "must be a column index"})
	}
	if s.MinLevel > s.MaxLevel {
		errs = append(errs, domain.FieldError{Field: "min_level", Message: "must not exceed max_level"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Row is one non-blank source line with its verdict. Vocab is set only for
// valid rows.
type Row struct {
	Line    int
	Content string
	Fields  []string
	Vocab   domain.NewVocabulary
	Reason  Reason
}

// IsValid reports whether the row passed every check.
func (r Row) IsValid() bool { return r.Reason == "" }

// Batch is the immutable result of ParseBatch.
type Batch struct {
	rows []Row
}

// Rows returns every parsed row in source order.
func (b Batch) Rows() []Row { return cloneRows(b.rows) }

// Valid returns the valid rows in source order.
func (b Batch) Valid() []Row { return b.partition(true) }

// Invalid returns the invalid rows in source order.
func (b Batch) Invalid() []Row { return b.partition(false) }

// Len returns the number of non-blank lines.
func (b Batch) Len() int { return len(b.rows) }

// CanCommit reports whether the batch has no invalid rows and at least one
// valid row.
func (b Batch) CanCommit() bool {
	valid := 0
	for _, r := range b.rows {
		if !r.IsValid() {
			return false
		}
		valid++
	}
	return valid > 0
}

func (b Batch) partition(valid bool) []Row {
	out := make([]Row, 0, len(b.rows))
	for _, r := range b.rows {
		if r.IsValid() == valid {
			out = append(out, cloneRow(r))
		}
	}
	return out
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out
}

func cloneRow(r Row) Row {
	r.Fields = append([]string(nil), r.Fields...)
	if r.Vocab.Level != nil {
		r.Vocab.Level = domain.IntPtr(*r.Vocab.Level)
	}
	return r
}

// ParseBatch splits text into lines and checks each one against spec.
// Blank lines are skipped but still count for line numbering, so Row.Line is
// the 1-based line in the source text. The first failing check decides the
// reason. An error is returned only when spec itself is invalid.
func ParseBatch(text string, spec ColumnSpec) (Batch, error) {
	if err := spec.Validate(); err != nil {
		return Batch{}, fmt.Errorf("column spec: %w", err)
	}

	var rows []Row
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, parseLine(i+1, line, spec))
	}
	return Batch{rows: rows}, nil
}

func parseLine(lineNo int, line string, spec ColumnSpec) Row {
	fields := strings.Split(line, spec.Delimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	row := Row{Line: lineNo, Content: line, Fields: fields}

	if len(fields) != spec.Count {
		row.Reason = ReasonWrongColumnCount
		return row
	}

	level, err := strconv.Atoi(fields[spec.LevelColumn])
	if err != nil {
		row.Reason = ReasonNonNumericLevel
		return row
	}
	if level < spec.MinLevel || level > spec.MaxLevel {
		row.Reason = ReasonLevelOutOfRange
		return row
	}

	text := make([]string, 0, spec.Count-1)
	for i, f := range fields {
		if i != spec.LevelColumn {
			text = append(text, f)
		}
	}
	v := domain.NewVocabulary{
		Level:       domain.IntPtr(level),
		Traditional: text[0],
		Simplified:  text[1],
		Pinyin:      text[2],
		English:     text[3],
	}
	if !v.IsComplete() {
		row.Reason = ReasonMissingRequiredField
		return row
	}

	row.Vocab = v
	return row
}
