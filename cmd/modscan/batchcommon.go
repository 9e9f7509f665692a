package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/swiftdeps/modscan"
	"github.com/swiftdeps/modscan/cmd/internal/cliutil"
	"github.com/swiftdeps/modscan/internal/batch"
	"github.com/swiftdeps/modscan/internal/cache"
	"github.com/swiftdeps/modscan/internal/fshost"
	"github.com/swiftdeps/modscan/internal/loader"
	"github.com/swiftdeps/modscan/internal/resolver"
	"github.com/swiftdeps/modscan/internal/types"
)

// runBatch drives every entry through run, which is responsible for
// writing that entry's own output slot on both success and failure
// (spec.md §7: a failing entry does not abort the others). Every entry's
// error is also aggregated with errors.Join and reported once at the end,
// mirroring the teacher's checkLoadResult aggregation of independent
// failures.
func runBatch(entries []batch.Entry, dispatcher *batch.Dispatcher, run func(sub *batch.SubInstance, entry batch.Entry) error) int {
	exitCode := exitOK
	var errs []error
	for _, entry := range entries {
		sub := dispatcher.Resolve(entry.Arguments)
		if err := run(sub, entry); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.ModuleName, err))
			if modscan.IsCycleDetected(err) {
				exitCode = exitCycle
			} else if exitCode == exitOK {
				exitCode = exitError
			}
		}
	}
	if joined := errors.Join(errs...); joined != nil {
		cliutil.PrintError("%d batch entr%s failed:\n%v", len(errs), plural(len(errs)), joined)
	}
	return exitCode
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// loadBatchInput opens and parses a batch-input YAML document. The caller
// must close the returned file once done.
func loadBatchInput(path string) ([]batch.Entry, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", modscan.ErrInputMissing, err)
	}
	entries, err := batch.ParseInput(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %v", modscan.ErrInputCorrupted, err)
	}
	return entries, f, nil
}

// newDispatcher builds a batch.Dispatcher whose primary sub-instance and
// per-entry sub-instances all search the same directories; per-entry -Xcc
// extras are layered on by the dispatcher itself (spec.md §4.9). The
// filesystem host has no -Xcc-sensitive search behavior of its own, so the
// extras are accepted but otherwise unused by the host factory.
func newDispatcher(searchPaths []string, contextHash string, logger *slog.Logger) *batch.Dispatcher {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	newHost := func(extra []string) loader.Host {
		_ = extra
		h, err := fshost.NewMulti(searchPaths)
		if err != nil {
			return emptyHost{}
		}
		return h
	}

	c := cache.New(contextHash)
	facade := loader.NewFacade(newHost(nil), c)
	primary := &batch.SubInstance{
		Cache:   c,
		Loader:  facade,
		Context: resolver.NewContext(c, facade, nil, nil, logger),
	}
	return batch.NewDispatcher(primary, newHost, contextHash, logger, nil, nil)
}

// emptyHost resolves nothing; used only if indexing the search paths fails,
// so a batch entry reports ErrModuleNotFound instead of a crash.
type emptyHost struct{}

func (emptyHost) ResolveClang(string) (*types.ModuleInfo, []*types.ModuleInfo, bool, error) {
	return nil, nil, false, nil
}

func (emptyHost) ResolveSwift(string) (*types.ModuleInfo, bool, error) {
	return nil, false, nil
}

// writeEntryGraph writes a successful batch-scan entry's graph to its
// output path.
func writeEntryGraph(outputPath string, g *modscan.Graph) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", modscan.ErrOutputOpenFailed, err)
	}
	defer f.Close()
	return g.WriteJSON(f)
}

// writeEntryPrescan writes a successful batch-prescan entry's direct
// imports to its output path.
func writeEntryPrescan(outputPath string, imports []string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", modscan.ErrOutputOpenFailed, err)
	}
	defer f.Close()
	return modscan.WritePrescan(f, imports)
}

// writeEntryError records a failed entry's error in its own output slot
// instead of aborting the batch (spec.md §7).
func writeEntryError(outputPath string, entryErr error) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", modscan.ErrOutputOpenFailed, err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "{\"error\": %q}\n", entryErr.Error())
	return err
}
