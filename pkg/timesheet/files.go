package timesheet

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// outputTimestampLayout is the timestamp appended to processed file names.
const outputTimestampLayout = "20060102_150405"

var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// ValidateFileName checks that name looks like a workbook excelize can open.
// Legacy .xls files and Office lock files (~$name.xlsx) are rejected.
func ValidateFileName(name string) error {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") {
		return fmt.Errorf("%w: %s is a temporary Excel file", ErrInvalidFormat, base)
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == ".xls" {
		return fmt.Errorf("%w: legacy .xls workbooks are not supported, save %s as .xlsx", ErrInvalidFormat, base)
	}
	if !supportedExtensions[ext] {
		return fmt.Errorf("%w: %s is not an Excel workbook (extension: %q)", ErrInvalidFormat, base, ext)
	}
	return nil
}

// DownloadName returns the file name offered for a processed workbook.
func DownloadName(now time.Time) string {
	return "processed_timesheet_" + now.Format(outputTimestampLayout) + ".xlsx"
}

// OutputPath returns the default location of the processed copy of inPath.
func OutputPath(inPath, outDir string, now time.Time) string {
	if outDir == "" {
		outDir = filepath.Dir(inPath)
	}
	stem := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	return filepath.Join(outDir, "processed_"+stem+"_"+now.Format(outputTimestampLayout)+".xlsx")
}
