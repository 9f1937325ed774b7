package bundler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	esbuildapi "github.com/evanw/esbuild/pkg/api"

	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/utils"
)

const emptyNamespace = "empty-module"

var targets = map[string]esbuildapi.Target{
	"es5":    esbuildapi.ES5,
	"es2015": esbuildapi.ES2015,
	"es2016": esbuildapi.ES2016,
	"es2017": esbuildapi.ES2017,
	"es2018": esbuildapi.ES2018,
	"es2019": esbuildapi.ES2019,
	"es2020": esbuildapi.ES2020,
	"es2021": esbuildapi.ES2021,
	"es2022": esbuildapi.ES2022,
	"esnext": esbuildapi.ESNext,
}

// Targets returns the accepted target names, oldest first
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	rank := func(name string) int {
		if name == "esnext" {
			return len(targets)
		}
		return int(targets[name])
	}
	sort.Slice(names, func(i, j int) bool {
		return rank(names[i]) < rank(names[j])
	})
	return names
}

// EsbuildOptions configures EsbuildBundler
type EsbuildOptions struct {
	Minify    bool
	Sourcemap bool
	Target    string
	// Shims aliases Node built-in modules to browser packages
	Shims map[string]string
	// Empty lists Node built-ins replaced by an empty module
	Empty []string
	// NodePaths are extra directories searched for shim packages
	NodePaths []string
}

// EsbuildBundler bundles one entry script per call into a browser IIFE
type EsbuildBundler struct {
	opts   EsbuildOptions
	target esbuildapi.Target
}

// NewEsbuildBundler creates an EsbuildBundler
func NewEsbuildBundler(opts EsbuildOptions) (*EsbuildBundler, error) {
	target := esbuildapi.ES2017
	if opts.Target != "" {
		t, ok := targets[strings.ToLower(opts.Target)]
		if !ok {
			return nil, fmt.Errorf("unknown bundle target: %s", opts.Target)
		}
		target = t
	}
	for _, name := range opts.Empty {
		if _, shimmed := opts.Shims[name]; shimmed {
			return nil, fmt.Errorf("module %s is both shimmed and emptied", name)
		}
	}
	return &EsbuildBundler{opts: opts, target: target}, nil
}

// Bundle bundles job.Script with job.WorkingDir as the resolution root and
// writes the result to job.OutputPath.
func (b *EsbuildBundler) Bundle(ctx context.Context, job domain.ScriptJob) domain.ScriptOutcome {
	outcome := domain.ScriptOutcome{
		Script:     job.Script,
		Kind:       job.Kind,
		OutputPath: job.OutputPath,
	}
	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}

	sourcemap := esbuildapi.SourceMapNone
	if b.opts.Sourcemap {
		sourcemap = esbuildapi.SourceMapLinked
	}

	result := esbuildapi.Build(esbuildapi.BuildOptions{
		EntryPoints:       []string{"./" + filepath.ToSlash(job.Script)},
		AbsWorkingDir:     job.WorkingDir,
		Outfile:           job.OutputPath,
		Bundle:            true,
		Write:             false,
		Format:            esbuildapi.FormatIIFE,
		Platform:          esbuildapi.PlatformBrowser,
		Target:            b.target,
		MinifyWhitespace:  b.opts.Minify,
		MinifyIdentifiers: b.opts.Minify,
		MinifySyntax:      b.opts.Minify,
		Sourcemap:         sourcemap,
		Alias:             b.opts.Shims,
		NodePaths:         b.opts.NodePaths,
		Plugins:           b.plugins(),
		LogLevel:          esbuildapi.LogLevelSilent,
	})

	outcome.Warnings = messages(result.Warnings)
	if len(result.Errors) > 0 {
		outcome.Err = domain.NewScriptError(job.Script, messages(result.Errors))
		return outcome
	}
	if len(result.OutputFiles) == 0 {
		outcome.Err = domain.NewScriptError(job.Script, []string{"esbuild returned no output files"})
		return outcome
	}

	for _, out := range result.OutputFiles {
		if err := utils.EnsureDir(out.Path); err != nil {
			outcome.Err = fmt.Errorf("failed to create output directory: %w", err)
			return outcome
		}
		if err := os.WriteFile(out.Path, out.Contents, 0o644); err != nil {
			outcome.Err = fmt.Errorf("failed to write %s: %w", out.Path, err)
			return outcome
		}
	}

	return outcome
}

func (b *EsbuildBundler) plugins() []esbuildapi.Plugin {
	if len(b.opts.Empty) == 0 {
		return nil
	}
	return []esbuildapi.Plugin{emptyModules(b.opts.Empty)}
}

// emptyModules resolves each named module (with or without the node:
// prefix) to an empty CommonJS module.
func emptyModules(names []string) esbuildapi.Plugin {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, regexp.QuoteMeta(n))
	}
	sort.Strings(quoted)
	filter := "^(node:)?(" + strings.Join(quoted, "|") + ")$"

	return esbuildapi.Plugin{
		Name: "empty-modules",
		Setup: func(build esbuildapi.PluginBuild) {
			build.OnResolve(esbuildapi.OnResolveOptions{Filter: filter},
				func(args esbuildapi.OnResolveArgs) (esbuildapi.OnResolveResult, error) {
					return esbuildapi.OnResolveResult{Path: args.Path, Namespace: emptyNamespace}, nil
				})
			build.OnLoad(esbuildapi.OnLoadOptions{Filter: ".*", Namespace: emptyNamespace},
				func(esbuildapi.OnLoadArgs) (esbuildapi.OnLoadResult, error) {
					contents := "module.exports = {};"
					return esbuildapi.OnLoadResult{Contents: &contents, Loader: esbuildapi.LoaderJS}, nil
				})
		},
	}
}

func messages(msgs []esbuildapi.Message) []string {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		text := m.Text
		if m.Location != nil {
			text = fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text)
		}
		out = append(out, text)
	}
	return out
}
