package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ceaplens/ceaplens/schema"
	"github.com/fatih/color"
)

// Color variables for risk tier labels in console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)
	HighColor     = color.New(color.FgMagenta, color.Bold)
	ModerateColor = color.New(color.FgYellow)
	LowColor      = color.New(color.FgCyan)
)

// GetPlainRiskLabel returns the plain text label for a risk tier. This is the
// core logic used for CSV, JSON and table printing.
func GetPlainRiskLabel(level schema.RiskLevel) string {
	if _, ok := schema.ValidRiskLevels[level]; ok {
		return string(level)
	}
	return string(schema.RiskModerate)
}

// GetColorRiskLabel returns a colored label for console table output.
func GetColorRiskLabel(level schema.RiskLevel) string {
	text := GetPlainRiskLabel(level)
	switch schema.RiskLevel(text) {
	case schema.RiskCritical:
		return CriticalColor.Sprint(text)
	case schema.RiskHigh:
		return HighColor.Sprint(text)
	case schema.RiskModerate:
		return ModerateColor.Sprint(text)
	default: // BAIXO
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path, falling back to os.Stdout when empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetFacetDBFilePath returns the path to the SQLite DB file that backs the
// persisted facet selections.
func GetFacetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ceaplens_facets.db"
	}
	return filepath.Join(homeDir, ".ceaplens_facets.db")
}

// TruncateLabel truncates a display label to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is room for both the
// ellipsis and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}
