// Command cgen reads a type-annotated AST and emits assembly for one or
// both of the VM-asm and x86-asm targets (spec §4.8).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/coolc/cgen/internal/ast"
	"github.com/coolc/cgen/internal/asm"
	"github.com/coolc/cgen/internal/codegen"
	"github.com/coolc/cgen/internal/codegen/target"
	"github.com/coolc/cgen/internal/codegen/target/vmtarget"
	"github.com/coolc/cgen/internal/codegen/target/x86target"
	"github.com/coolc/cgen/internal/diag"
)

// fileConfig is the optional cgen.yaml sitting beside the input file (spec
// §6 "Config"). Flags always override it.
type fileConfig struct {
	OutputDir string   `yaml:"outputDir"`
	Targets   []string `yaml:"targets"`
}

func loadFileConfig(inputPath string) (fileConfig, error) {
	var cfg fileConfig
	path := filepath.Join(filepath.Dir(inputPath), "cgen.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func newTarget(name string) (target.Target, string, error) {
	switch name {
	case "vm":
		return &vmtarget.Target{}, ".cl-asm", nil
	case "x86":
		return &x86target.Target{}, ".cl-asm-x86", nil
	default:
		return nil, "", fmt.Errorf("unknown target %q (want vm or x86)", name)
	}
}

func outputPath(inputPath, outputDir, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	dir := filepath.Dir(inputPath)
	if outputDir != "" {
		dir = outputDir
	}
	return filepath.Join(dir, base+suffix)
}

// runTarget runs one full generation pipeline for a single target and
// writes its output file, logging one structured line per phase.
func runTarget(log *zap.Logger, prog *ast.Program, name, inputPath, outputDir string, comments, debug bool) error {
	tgt, suffix, err := newTarget(name)
	if err != nil {
		return err
	}

	log.Info("creating generation context", zap.String("target", name))
	ctx := codegen.NewContext(prog, tgt)

	log.Info("emitting assembly", zap.String("target", name))
	buf, err := ctx.Generate()
	if err != nil {
		return fmt.Errorf("target %s: %w", name, err)
	}

	text := asm.Render(buf, comments, debug)
	out := outputPath(inputPath, outputDir, suffix)

	log.Info("writing output", zap.String("target", name), zap.String("path", out))
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		comments  bool
		debug     bool
		targets   []string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "cgen <annotated-ast-path>",
		Short: "Lower a type-annotated AST into VM-asm and/or x86-asm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			inputPath := args[0]

			cfg, err := loadFileConfig(inputPath)
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.OutputDir
			}
			if len(targets) == 0 {
				targets = cfg.Targets
			}
			if len(targets) == 0 {
				targets = []string{"vm"}
			}

			logger.Info("reading annotated AST", zap.String("path", inputPath))
			prog, err := ast.ReadFile(inputPath)
			if err != nil {
				d := diag.Diagnostic{
					Severity: diag.SeverityError,
					Code:     diag.CodeReadFailure,
					Message:  err.Error(),
					Path:     inputPath,
				}
				fmt.Fprintln(os.Stderr, diag.NewFormatter().Format(d))
				return err
			}

			// Prime the hidden builtin attributes exactly once, here, before
			// any per-target fan-out: NewContext no longer does this itself
			// because two goroutines priming the same shared Program would
			// race on its ClassMap.
			logger.Info("priming layout engine")
			codegen.PrimeBuiltins(prog)

			if len(targets) == 1 {
				return runTarget(logger, prog, targets[0], inputPath, outputDir, comments, debug)
			}

			g := new(errgroup.Group)
			for _, t := range targets {
				t := t
				g.Go(func() error {
					return runTarget(logger, prog, t, inputPath, outputDir, comments, debug)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&comments, "comments", false, "include ;; comments in the emitted assembly")
	cmd.Flags().BoolVar(&debug, "debug", false, "include debug stack-integrity markers")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "targets to emit: vm, x86, or both (repeatable)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write output into (default: beside the input file)")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
