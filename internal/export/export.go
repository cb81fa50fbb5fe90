package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go-smartshop/internal/model"

	"github.com/rs/zerolog/log"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format int

const (
	CSV Format = iota
	Excel
	Text
	JSON
	Workbook
)

// Formats lists every supported format in the order the app offers them.
var Formats = []Format{CSV, Excel, Text, JSON, Workbook}

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case Excel:
		return "excel"
	case Text:
		return "text"
	case JSON:
		return "json"
	case Workbook:
		return "xlsx"
	default:
		return "unknown"
	}
}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

// FileName is the name a file exported on the given day gets.
func (f Format) FileName(day time.Time) string {
	date := day.Format(dateLayout)
	switch f {
	case CSV:
		return "SmartShop_Products_" + date + ".csv"
	case Excel:
		return "SmartShop_Inventory_" + date + ".xls"
	case Text:
		return "SmartShop_Report_" + date + ".txt"
	case JSON:
		return "SmartShop_Products_" + date + ".json"
	case Workbook:
		return "SmartShop_Inventory_" + date + ".xlsx"
	default:
		return ""
	}
}

type writerFunc func(w io.Writer, products []model.Product, now time.Time) error

func (f Format) writer() (writerFunc, error) {
	switch f {
	case CSV:
		return writeCSV, nil
	case Excel:
		return writeExcel, nil
	case Text:
		return writeText, nil
	case JSON:
		return writeJSON, nil
	case Workbook:
		return writeWorkbook, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// Exporter writes product exports into a single directory.
type Exporter struct {
	dir string
	now func() time.Time
}

func New(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes products in the given format and returns the file path.
// A second export on the same day overwrites the first one.
func (e *Exporter) Export(products []model.Product, format Format) (string, error) {
	write, err := format.writer()
	if err != nil {
		return "", fmt.Errorf("export products: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("export products: %w", err)
	}

	now := e.now()
	var buf bytes.Buffer
	if err := write(&buf, products, now); err != nil {
		return "", fmt.Errorf("export products: %w, format: %s", err, format)
	}

	path := filepath.Join(e.dir, format.FileName(now))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("export products: %w, format: %s", err, format)
	}

	log.Debug().Msgf("export: %d products written to %s", len(products), path)
	return path, nil
}

// List returns the names of exported files found in the export directory.
func (e *Exporter) List() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isExportFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes one exported file. It reports false if there was nothing to delete.
func (e *Exporter) Remove(name string) (bool, error) {
	if name != filepath.Base(name) || !isExportFile(name) {
		return false, fmt.Errorf("remove export: not an export file: %s", name)
	}

	err := os.Remove(filepath.Join(e.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove export: %w, name: %s", err, name)
	}
	return true, nil
}

func isExportFile(name string) bool {
	if !strings.HasPrefix(name, "SmartShop_") {
		return false
	}
	switch filepath.Ext(name) {
	case ".csv", ".xls", ".txt", ".json", ".xlsx":
		return true
	}
	return false
}
