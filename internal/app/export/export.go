package export

import (
	"fmt"

	"github.com/tealeg/xlsx"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/util/format"
)

// UsageToExcel writes the usage log of one user to an xlsx workbook at
// outputFilePath. Metadata fields written by the settlement (duration,
// language, file_size) get their own columns.
func UsageToExcel(logs []model.UsageLog, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Usage")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, title := range []string{"Date", "Action", "Transcription ID", "Credits Used", "Audio Duration", "Language", "File Size"} {
		headerRow.AddCell().Value = title
	}

	total := 0
	for _, l := range logs {
		row := sheet.AddRow()
		row.AddCell().Value = format.FormatDate(l.CreatedAt)
		row.AddCell().Value = string(l.Action)
		transcriptionID := ""
		if l.TranscriptionID != nil {
			transcriptionID = *l.TranscriptionID
		}
		row.AddCell().Value = transcriptionID
		row.AddCell().SetInt(l.CreditsUsed)

		duration := ""
		if d, ok := number(l.Metadata["duration"]); ok {
			duration = format.FormatDuration(d)
		}
		row.AddCell().Value = duration

		language, _ := l.Metadata["language"].(string)
		row.AddCell().Value = language

		size := ""
		if s, ok := number(l.Metadata["file_size"]); ok {
			size = format.FormatFileSize(int64(s))
		}
		row.AddCell().Value = size

		total += l.CreditsUsed
	}

	totalRow := sheet.AddRow()
	totalRow.AddCell().Value = "Total"
	totalRow.AddCell()
	totalRow.AddCell()
	totalRow.AddCell().SetInt(total)

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFilePath, err)
	}
	return nil
}

// number reads a JSON-decoded metadata value
func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
