package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/utils"
)

// ReportFile is the YAML form of a run report
type ReportFile struct {
	RunID     string         `yaml:"run_id"`
	StartedAt time.Time      `yaml:"started_at"`
	Duration  string         `yaml:"duration"`
	Extract   *ExtractReport `yaml:"extract,omitempty"`
	Bundle    *BundleSummary `yaml:"bundle,omitempty"`
	Copy      *CopyReport    `yaml:"copy,omitempty"`
	Errors    []string       `yaml:"errors,omitempty"`
}

// ExtractReport summarizes the extraction stage
type ExtractReport struct {
	Total     int            `yaml:"total"`
	Extracted []string       `yaml:"extracted"`
	Failed    []FailureEntry `yaml:"failed,omitempty"`
}

// BundleSummary summarizes the bundling stage
type BundleSummary struct {
	Total      int         `yaml:"total"`
	Skipped    int         `yaml:"skipped"`
	Successful []string    `yaml:"successful"`
	Skips      []SkipEntry `yaml:"skips,omitempty"`
}

// CopyReport summarizes the copy stage
type CopyReport struct {
	Copied []string       `yaml:"copied"`
	Failed []FailureEntry `yaml:"failed,omitempty"`
}

// FailureEntry is one failed archive
type FailureEntry struct {
	Archive string `yaml:"archive"`
	Error   string `yaml:"error"`
}

// SkipEntry is one skipped archive with the scripts that failed
type SkipEntry struct {
	Archive string        `yaml:"archive"`
	Reason  string        `yaml:"reason"`
	Error   string        `yaml:"error,omitempty"`
	Scripts []ScriptEntry `yaml:"scripts,omitempty"`
}

// ScriptEntry is one script that failed to bundle
type ScriptEntry struct {
	Script string `yaml:"script"`
	Kind   string `yaml:"kind"`
	Error  string `yaml:"error"`
}

// NewReportFile converts a run report into its YAML form
func NewReportFile(r *domain.RunReport) *ReportFile {
	out := &ReportFile{
		RunID:     r.ID,
		StartedAt: r.StartedAt,
		Duration:  r.Duration.Round(time.Millisecond).String(),
	}

	if r.Extract != nil {
		out.Extract = &ExtractReport{
			Total:     r.Extract.Total,
			Extracted: idStrings(r.Extract.IDs()),
			Failed:    failureEntries(r.Extract.Failed),
		}
	}

	if r.Bundle != nil {
		summary := &BundleSummary{
			Total:      r.Bundle.Total,
			Skipped:    r.Bundle.Skipped,
			Successful: idStrings(r.Bundle.Successful),
		}
		for _, res := range r.Bundle.Results {
			if res.Succeeded() {
				continue
			}
			entry := SkipEntry{Archive: res.ID.String(), Reason: string(res.Reason), Error: errString(res.Err)}
			for _, s := range res.FailedScripts() {
				entry.Scripts = append(entry.Scripts, ScriptEntry{Script: s.Script, Kind: string(s.Kind), Error: errString(s.Err)})
			}
			summary.Skips = append(summary.Skips, entry)
		}
		out.Bundle = summary
	}

	if r.Copy != nil {
		out.Copy = &CopyReport{
			Copied: idStrings(r.Copy.Copied),
			Failed: failureEntries(r.Copy.Failed),
		}
	}

	for _, e := range r.StageErrors {
		out.Errors = append(out.Errors, e.Error())
	}

	return out
}

// WriteReport writes the run report as YAML to path
func WriteReport(path string, r *domain.RunReport) error {
	path = utils.ExpandPath(path)
	data, err := yaml.Marshal(NewReportFile(r))
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := utils.EnsureDir(path); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func idStrings(ids []domain.ArchiveID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func failureEntries(failures []domain.ArchiveFailure) []FailureEntry {
	var out []FailureEntry
	for _, f := range failures {
		out = append(out, FailureEntry{Archive: f.ID.String(), Error: errString(f.Err)})
	}
	return out
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
