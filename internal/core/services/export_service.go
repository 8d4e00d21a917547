package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"

	logSheet      = "Log"
	projectsSheet = "Projects"
)

var ErrUnsupportedFormat = errors.New("unsupported export format (must be csv or xlsx)")

var logHeader = []string{"Task", "Project", "Minutes", "Date", "Notes"}

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportInput struct {
	UserID   string
	Format   ExportFormat
	From     domain.Date
	To       domain.Date
	Location *time.Location
}

type ExportService struct {
	entryRepo domain.LogEntryRepository
	now       func() time.Time
}

func NewExportService(entryRepo domain.LogEntryRepository) *ExportService {
	return &ExportService{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

func (s *ExportService) WithClock(now func() time.Time) *ExportService {
	s.now = now
	return s
}

func (s *ExportService) Export(ctx context.Context, input ExportInput) (*ExportFile, error) {
	entries, err := loadEntries(ctx, s.entryRepo, input.UserID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	loc := input.Location
	if loc == nil {
		loc = time.UTC
	}
	today := domain.TodayAt(s.now(), loc)

	var buf bytes.Buffer
	switch input.Format {
	case FormatCSV:
		err = WriteCSV(&buf, entries)
	case FormatXLSX:
		err = WriteXLSX(&buf, entries)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("export service: %w", err)
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("study-log-%s.%s", today.String(), input.Format),
		ContentType: input.Format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// WriteCSV writes raw rows with display dates.
func WriteCSV(w io.Writer, entries []domain.LogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(logHeader); err != nil {
		return err
	}

	for _, e := range entries {
		record := []string{
			e.Task,
			e.Project,
			strconv.Itoa(e.Minutes.Int()),
			e.Date.Display(),
			e.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with the raw rows on one sheet and the
// per-project aggregation on another.
func WriteXLSX(w io.Writer, entries []domain.LogEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", logSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(projectsSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeLogSheet(f, entries, bold); err != nil {
		return err
	}
	if err := writeProjectsSheet(f, domain.Aggregate(entries), bold); err != nil {
		return err
	}

	return f.Write(w)
}

func writeLogSheet(f *excelize.File, entries []domain.LogEntry, headerStyle int) error {
	header := make([]any, len(logHeader))
	for i, h := range logHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(logSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(logSheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.Task, e.Project, e.Minutes.Int(), e.Date.Display(), e.Notes}
		if err := f.SetSheetRow(logSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(logSheet, "A", "B", 28); err != nil {
		return err
	}
	return f.SetColWidth(logSheet, "E", "E", 48)
}

func writeProjectsSheet(f *excelize.File, groups []domain.ProjectGroup, headerStyle int) error {
	header := []any{"Project", "Task", "Minutes"}
	if err := f.SetSheetRow(projectsSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(projectsSheet, 1, 1, headerStyle); err != nil {
		return err
	}

	rowNum := 2
	for _, g := range groups {
		for _, t := range g.Tasks {
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return err
			}
			row := []any{g.Project, t.Task, t.Minutes}
			if err := f.SetSheetRow(projectsSheet, cell, &row); err != nil {
				return err
			}
			rowNum++
		}

		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		total := []any{g.Project, "Total", g.TotalMinutes}
		if err := f.SetSheetRow(projectsSheet, cell, &total); err != nil {
			return err
		}
		if err := f.SetRowStyle(projectsSheet, rowNum, rowNum, headerStyle); err != nil {
			return err
		}
		rowNum++
	}

	return f.SetColWidth(projectsSheet, "A", "B", 28)
}
