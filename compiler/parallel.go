package compiler

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pontaoski/cts/errors"
	"golang.org/x/sync/errgroup"
)

// OutputFor names the module written for a source file when several files
// are built at once: main.cts becomes main.ll next to it.
func OutputFor(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".ll"
}

// BuildFiles builds every path concurrently, each with its own generator,
// into OutputFor(path). A source whose output would be itself (a .ll input)
// fails the whole call before anything is built. Otherwise it returns the
// first error; the remaining builds are not started once one has failed.
func BuildFiles(ctx context.Context, paths []string, opts Options) error {
	for _, path := range paths {
		if samePath(path, OutputFor(path)) {
			return fail(errors.Output, errors.OutputIsSource{Path: path})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fileOpts := opts
			fileOpts.Filename = path

			_, err := BuildFile(path, OutputFor(path), fileOpts)
			if err == nil {
				plog.Infof("%s -> %s", path, OutputFor(path))
			}
			return err
		})
	}

	return g.Wait()
}
