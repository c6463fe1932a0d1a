package commands

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/signalwork/asyncgen/config"
	"github.com/signalwork/asyncgen/display"
	"github.com/signalwork/asyncgen/errors"
	"github.com/signalwork/asyncgen/logger"
	"github.com/signalwork/asyncgen/spec"
	"github.com/signalwork/asyncgen/typegen"
)

var (
	generateOutput    string
	generateEnumStyle string
	generateFallback  string
	generateNoExport  bool
	generateWatch     bool
)

// GenerateCmd compiles a specification into TypeScript declarations.
var GenerateCmd = &cobra.Command{
	Use:   "generate <spec-file>",
	Short: "Compile an AsyncAPI v3 document into TypeScript types",
	Long: `Compile an AsyncAPI v3 document into a TypeScript declaration file.

The output contains one declaration per component schema, a payload type,
optional headers type and message-shape type per message, and a union type
per channel direction that carries messages.

Reference problems never abort generation: an unresolvable $ref degrades to
the configured fallback type and is reported as a warning.

Examples:
  asyncgen generate asyncapi.yaml                   # stdout
  asyncgen generate asyncapi.yaml -o src/events.ts  # file output
  asyncgen generate asyncapi.yaml --enum-style enum # named enums
  asyncgen generate asyncapi.yaml --fallback any    # permissive fallback
  asyncgen generate asyncapi.yaml --watch           # regenerate on change`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: stdout)")
	GenerateCmd.Flags().StringVar(&generateEnumStyle, "enum-style", "", "Enum rendering: union or enum (default: union)")
	GenerateCmd.Flags().StringVar(&generateFallback, "fallback", "", "Fallback type: unknown or any (default: unknown)")
	GenerateCmd.Flags().BoolVar(&generateNoExport, "no-export", false, "Omit the export keyword on declarations")
	GenerateCmd.Flags().BoolVar(&generateWatch, "watch", false, "Watch the input file and regenerate on change")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts, err := generatorOptions(cmd, cfg)
	if err != nil {
		return err
	}

	if err := generateOnce(cmd, specPath, cfg, opts); err != nil {
		return err
	}

	if generateWatch {
		return watchAndRegenerate(cmd, specPath, cfg, opts)
	}
	return nil
}

// generatorOptions merges config-file defaults with explicit flags; a flag
// that was set always wins.
func generatorOptions(cmd *cobra.Command, cfg *config.Config) (typegen.Options, error) {
	enumStyle := cfg.Generate.EnumStyle
	if cmd.Flags().Changed("enum-style") {
		enumStyle = generateEnumStyle
	}
	fallback := cfg.Generate.Fallback
	if cmd.Flags().Changed("fallback") {
		fallback = generateFallback
	}
	export := cfg.Generate.Export
	if generateNoExport {
		export = false
	}

	switch typegen.EnumStyle(enumStyle) {
	case typegen.EnumUnion, typegen.EnumNamed:
	default:
		return typegen.Options{}, errors.Newf("invalid enum style %q (supported: union, enum)", enumStyle)
	}
	switch typegen.Fallback(fallback) {
	case typegen.FallbackUnknown, typegen.FallbackAny:
	default:
		return typegen.Options{}, errors.Newf("invalid fallback type %q (supported: unknown, any)", fallback)
	}

	return typegen.Options{
		EnumStyle: typegen.EnumStyle(enumStyle),
		Fallback:  typegen.Fallback(fallback),
		Export:    export,
	}, nil
}

// generateOnce loads, compiles and writes one generation pass. The result
// is rendered fully in memory before any file write, so a fatal error never
// leaves partial output behind.
func generateOnce(cmd *cobra.Command, specPath string, cfg *config.Config, opts typegen.Options) error {
	doc, issues, err := spec.Load(specPath, cfg.Parser.MaxSpecBytes)
	if err != nil {
		if display.ShouldOutputJSON(cmd) && len(issues) > 0 {
			display.OutputJSON(display.NewReport(issues))
		} else {
			display.PrintIssues(spec.Errors(issues))
		}
		return err
	}
	display.PrintIssues(spec.Warnings(issues))

	result := typegen.NewGenerator(opts).Generate(doc)
	for _, warning := range result.Warnings {
		display.PrintWarning(warning)
	}

	if generateOutput == "" {
		_, err := os.Stdout.WriteString(result.Source)
		return err
	}

	if err := writeFileAtomic(generateOutput, []byte(result.Source)); err != nil {
		return errors.Wrapf(err, "failed to write %s", generateOutput)
	}
	display.Successf("Generated %s", generateOutput)
	return nil
}

// writeFileAtomic writes via a temp file and rename so readers never see a
// half-written declaration file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// watchAndRegenerate blocks, recompiling whenever the input file changes.
// Generation failures are reported and the watch continues; only watcher
// failures end the loop.
func watchAndRegenerate(cmd *cobra.Command, specPath string, cfg *config.Config, opts typegen.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(specPath)
	if err != nil {
		return err
	}
	// Watch the directory, not the file: editors replace files on save,
	// which would otherwise drop the watch.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(absPath))
	}

	logger.Infof("watching %s", specPath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debugw("spec changed, regenerating", "event", event.Op.String())
			if err := generateOnce(cmd, specPath, cfg, opts); err != nil {
				display.PrintWarning(err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watcher failed")
		}
	}
}
