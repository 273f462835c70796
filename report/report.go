// Package report writes one spreadsheet per finished test case.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	// SheetName is the title of the single worksheet.
	SheetName = "Test Report"

	// StepRowHeight is the height of a row holding step text.
	StepRowHeight = 30.0
	// ImageRowHeight is the height of a row holding a screenshot. Spreadsheet
	// applications cap rows at 409 points.
	ImageRowHeight = float64(excelize.MaxRowHeight)

	columnWidth = 80.0
)

// ErrMismatch is returned when steps and images differ in count.
var ErrMismatch = errors.New("steps and images must have the same length")

// Report is everything needed to render one test case.
type Report struct {
	TestName string
	Number   int
	Steps    []string
	Images   []image.Image
	Verdict  string
	// Defect is written only when Verdict is FAIL.
	Defect string
	Dir    string
}

// FileName returns "{test name} - {number} - {verdict}.xlsx".
func FileName(testName string, number int, verdict string) string {
	name := strings.NewReplacer("/", "-", `\`, "-").Replace(testName)
	return fmt.Sprintf("%s - %d - %s.xlsx", name, number, verdict)
}

// StepRow returns the 1-based row of step i (0-based).
func StepRow(i int) int { return 3*i + 1 }

// ImageRow returns the 1-based row the screenshot of step i (0-based) is anchored to.
func ImageRow(i int) int { return 3*i + 2 }

// ResultRow returns the row of the result line for n steps.
func ResultRow(n int) int { return 3*n + 1 }

// Writer saves reports as xlsx workbooks.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a Writer. A nil logger disables logging.
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// Write renders r and saves it under r.Dir, returning the file path.
func (w *Writer) Write(r Report) (string, error) {
	if len(r.Steps) != len(r.Images) {
		return "", ErrMismatch
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", columnWidth); err != nil {
		return "", fmt.Errorf("set column width: %w", err)
	}
	noWrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: false, Vertical: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("create style: %w", err)
	}

	for i, step := range r.Steps {
		row := StepRow(i)
		cell := cellName(row)
		if err := f.SetCellValue(SheetName, cell, step); err != nil {
			return "", fmt.Errorf("write step %d: %w", i+1, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, noWrap); err != nil {
			return "", fmt.Errorf("style step %d: %w", i+1, err)
		}
		if err := f.SetRowHeight(SheetName, row, StepRowHeight); err != nil {
			return "", fmt.Errorf("size step row %d: %w", row, err)
		}

		data, err := encodePNG(r.Images[i])
		if err != nil {
			return "", fmt.Errorf("encode image %d: %w", i+1, err)
		}
		imgRow := ImageRow(i)
		if err := f.AddPictureFromBytes(SheetName, cellName(imgRow), &excelize.Picture{
			Extension: ".png",
			File:      data,
			Format: &excelize.GraphicOptions{
				AltText:         step,
				LockAspectRatio: true,
			},
		}); err != nil {
			return "", fmt.Errorf("embed image %d: %w", i+1, err)
		}
		if err := f.SetRowHeight(SheetName, imgRow, ImageRowHeight); err != nil {
			return "", fmt.Errorf("size image row %d: %w", imgRow, err)
		}
	}

	last := ResultRow(len(r.Steps))
	if err := f.SetCellValue(SheetName, cellName(last), "Result: "+r.Verdict); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}

	if defect := strings.TrimSpace(r.Defect); r.Verdict == "FAIL" && defect != "" {
		cell := cellName(last + 1)
		if err := f.SetCellValue(SheetName, cell, "Defect: "+defect); err != nil {
			return "", fmt.Errorf("write defect: %w", err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, noWrap); err != nil {
			return "", fmt.Errorf("style defect: %w", err)
		}
	}

	path := filepath.Join(r.Dir, FileName(r.TestName, r.Number, r.Verdict))
	if err := f.SaveAs(path); err != nil {
		w.logger.Error("Failed to save report", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	w.logger.Info("Report saved",
		zap.String("path", path),
		zap.Int("steps", len(r.Steps)),
		zap.String("verdict", r.Verdict))
	return path, nil
}

func cellName(row int) string {
	return fmt.Sprintf("A%d", row)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
