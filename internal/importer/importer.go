// Package importer reads candidate lists from uploaded spreadsheets.
//
// Both formats use the column order name, author, imageUrl, reason. Only name
// and author are required; a header on the first non-blank row is recognised
// and skipped.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/teensteam/namecup/internal/utils"
)

var ErrUnsupportedFormat = errors.New("unsupported file type")

// Record is one imported candidate, before it is given an id.
type Record struct {
	Name     string
	Author   string
	ImageURL *string
	Reason   *string
}

type Result struct {
	Records []Record
	// Skipped holds the 1-based record numbers, blank rows excluded for CSV,
	// that lacked a name or author.
	Skipped []int
}

type Parser interface {
	Parse(data []byte) (*Result, error)
}

// ForFile picks a parser from the file extension.
func ForFile(fileName string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewXLSXParser(), nil
	}
	return nil, fmt.Errorf("%w: %s (must be .csv or .xlsx)", ErrUnsupportedFormat, fileName)
}

func collect(rows [][]string) *Result {
	res := &Result{Records: []Record{}}
	seenContent := false
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		first := !seenContent
		seenContent = true
		if first && isHeader(row) {
			continue
		}

		name, author := field(row, 0), field(row, 1)
		if name == "" || author == "" {
			res.Skipped = append(res.Skipped, i+1)
			continue
		}

		res.Records = append(res.Records, Record{
			Name:     name,
			Author:   author,
			ImageURL: utils.OptionalString(field(row, 2)),
			Reason:   utils.OptionalString(field(row, 3)),
		})
	}
	return res
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func isHeader(row []string) bool {
	return strings.EqualFold(field(row, 0), "name") && strings.EqualFold(field(row, 1), "author")
}
