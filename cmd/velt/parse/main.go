package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/diagnostic"
	"github.com/veltlang/velt/pkg/parser"
)

// Handler holds the parse command's configuration. The filesystem is
// injectable so tests can run against an in-memory one.
type Handler struct {
	Format string
	FS     afero.Fs
	Out    io.Writer
	ErrOut io.Writer
}

func NewParseCommand() *cobra.Command {
	me := &Handler{FS: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "parse [globs...]",
		Short: "parse velt template files and print their unified AST as JSON",
	}

	cmd.Flags().StringVar(&me.Format, "format", "text", "diagnostics format (text, json)")
	cmd.Args = cobra.MinimumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.Out = cmd.OutOrStdout()
		me.ErrOut = cmd.ErrOrStderr()
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, globs []string) error {
	logger := zerolog.Ctx(ctx)

	fsys := afero.NewIOFS(me.FS)
	var files []string
	for _, pattern := range globs {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return errors.Errorf("bad glob %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return errors.Errorf("no files matched %v", globs)
	}

	trees := make(map[string]*ast.Program, len(files))
	diags := &diagnostic.Diagnostics{Errors: []diagnostic.Diagnostic{}}
	var result *multierror.Error

	for _, file := range files {
		logger.Debug().Str("file", file).Msg("parsing template")

		content, err := afero.ReadFile(me.FS, file)
		if err != nil {
			result = multierror.Append(result, errors.Errorf("reading %s: %w", file, err))
			continue
		}

		program, err := parser.Parse(ctx, string(content))
		if err != nil {
			diags.Errors = append(diags.Errors, diagnostic.FromError(file, err))
			result = multierror.Append(result, errors.Errorf("parsing %s: %w", file, err))
			continue
		}
		trees[file] = program
	}

	if len(diags.Errors) > 0 {
		formatter, err := diagnostic.NewFormatter(me.Format)
		if err != nil {
			return err
		}
		rendered, err := formatter.Format(diags)
		if err != nil {
			return err
		}
		fmt.Fprint(me.ErrOut, string(rendered))
	}

	if len(trees) > 0 {
		encoded, err := json.MarshalIndent(trees, "", "  ")
		if err != nil {
			return errors.Errorf("encoding trees: %w", err)
		}
		fmt.Fprintln(me.Out, string(encoded))
	}

	return result.ErrorOrNil()
}
