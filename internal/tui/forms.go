package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/extbundle/internal/bundler"
)

func CreatePathsForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("input").
				Title("Input Directory").
				Description("Directory holding the extension archives").
				Value(&values.InputDir).
				Placeholder("./extensions").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("archives").
				Title("Archives Directory").
				Description("Where each archive is extracted").
				Value(&values.ArchivesDir).
				Placeholder("./archives").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("bundled").
				Title("Bundled Directory").
				Description("Where bundles are written per archive").
				Value(&values.BundledDir).
				Placeholder("./bundled").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("output").
				Title("Output Directory").
				Description("Final collection directory (must not exist when a run starts)").
				Value(&values.OutputDir).
				Placeholder("./readytogo").
				Validate(ValidateRequired),
		),
	)
}

func CreateExtractForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("limit").
				Title("Archive Limit").
				Description("Maximum archives to extract per run (0 = unlimited)").
				Value(&values.Limit).
				Placeholder("0").
				Validate(ValidateNonNegativeInt),

			huh.NewInput().
				Key("max_file_size").
				Title("Max Entry Size").
				Description("Largest single file accepted from an archive").
				Value(&values.MaxFileSize).
				Placeholder("512MB").
				Validate(ValidateSize),
		),
	)
}

func CreateBundleForm(values *ConfigValues) *huh.Form {
	targets := make([]huh.Option[string], 0)
	for _, name := range bundler.Targets() {
		targets = append(targets, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("target").
				Title("Target").
				Description("JavaScript language level of the bundles").
				Options(targets...).
				Value(&values.Target),

			huh.NewConfirm().
				Key("minify").
				Title("Minify").
				Description("Minify whitespace, identifiers and syntax").
				Value(&values.Minify),

			huh.NewConfirm().
				Key("sourcemap").
				Title("Source Maps").
				Description("Write a linked .map file next to every bundle").
				Value(&values.Sourcemap),

			huh.NewInput().
				Key("shim_dir").
				Title("Shim Directory").
				Description("node_modules directory holding the shim packages").
				Value(&values.ShimDir),
		),
		huh.NewGroup(
			huh.NewText().
				Key("shims").
				Title("Node Shims").
				Description("One module=package per line").
				Value(&values.Shims).
				Validate(ValidateShims),

			huh.NewText().
				Key("empty").
				Title("Empty Modules").
				Description("Node built-ins bundled as empty modules, one per line").
				Value(&values.Empty).
				Validate(ValidateModuleList),
		),
	)
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel).
				Validate(ValidateLogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat).
				Validate(ValidateLogFormat),

			huh.NewConfirm().
				Key("progress").
				Title("Progress Bars").
				Description("Show a progress bar for each stage").
				Value(&values.Progress),
		),
	)
}

func CreateReportForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Report Path").
				Description("Write a YAML run report here (leave empty to disable)").
				Value(&values.ReportPath).
				Placeholder("./extbundle-report.yaml"),
		),
	)
}

// GetFormForCategory builds the form for a category ID, or nil if unknown
func GetFormForCategory(category string, values *ConfigValues, accessible bool) *huh.Form {
	var form *huh.Form
	switch category {
	case "paths":
		form = CreatePathsForm(values)
	case "extract":
		form = CreateExtractForm(values)
	case "bundle":
		form = CreateBundleForm(values)
	case "logging":
		form = CreateLoggingForm(values)
	case "report":
		form = CreateReportForm(values)
	default:
		return nil
	}
	return form.WithTheme(GetTheme(accessible)).WithAccessible(accessible)
}
