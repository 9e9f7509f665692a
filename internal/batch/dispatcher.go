package batch

import (
	"log/slog"

	"github.com/swiftdeps/modscan/internal/cache"
	"github.com/swiftdeps/modscan/internal/loader"
	"github.com/swiftdeps/modscan/internal/resolver"
)

// SubInstance is a compiler sub-instance: its own cache, loader facade, and
// resolution context, keyed by the literal arguments string of the batch
// entries that share it (spec.md §4.9). The zero-arguments entries all
// share the dispatcher's primary instance instead of getting one of these.
type SubInstance struct {
	Cache          *cache.Cache
	Loader         *loader.Facade
	Context        *resolver.Context
	ExtraClangArgs []string
}

// HostFactory builds a fresh Host for a sub-instance, given the -Xcc extras
// tokenized out of a batch entry's arguments string. The primary instance's
// search paths and collaborators are expected to already be folded into the
// factory's closure; HostFactory only needs to layer the per-entry extras
// on top.
type HostFactory func(extraClangArgs []string) loader.Host

// Dispatcher runs batch entries against memoized sub-instances (spec.md
// §4.9). Entries are processed one at a time by the caller's loop; this
// type has no internal concurrency because the host's importer state is
// process-wide and a concurrent loop would race on it (spec.md §5).
type Dispatcher struct {
	primary     *SubInstance
	subByArgs   map[string]*SubInstance
	newHost     HostFactory
	contextHash string
	logger      *slog.Logger
	bridging    resolver.BridgingHeaderParser
	overlays    resolver.OverlayDeclarations
}

// NewDispatcher constructs a Dispatcher. primary serves every entry whose
// arguments string is empty.
func NewDispatcher(
	primary *SubInstance,
	newHost HostFactory,
	contextHash string,
	logger *slog.Logger,
	bridging resolver.BridgingHeaderParser,
	overlays resolver.OverlayDeclarations,
) *Dispatcher {
	return &Dispatcher{
		primary:     primary,
		subByArgs:   make(map[string]*SubInstance),
		newHost:     newHost,
		contextHash: contextHash,
		logger:      logger,
		bridging:    bridging,
		overlays:    overlays,
	}
}

// Resolve selects the sub-instance for a batch entry's arguments string,
// creating one on first use and refreshing its L2 importer extras on every
// later use of the same literal string (spec.md §4.9: a sub-instance
// "refreshes its search-path and L2 importer options from the invocation,
// overlaying per-entry -Xcc extras" each time the same arguments recur).
func (d *Dispatcher) Resolve(arguments string) *SubInstance {
	if arguments == "" {
		return d.primary
	}

	extra := extractDashXcc(TokenizeGNU(arguments))
	if existing, ok := d.subByArgs[arguments]; ok {
		existing.ExtraClangArgs = extra
		return existing
	}

	c := cache.New(d.contextHash)
	host := d.newHost(extra)
	facade := loader.NewFacade(host, c)
	sub := &SubInstance{
		Cache:          c,
		Loader:         facade,
		Context:        resolver.NewContext(c, facade, d.bridging, d.overlays, d.logger),
		ExtraClangArgs: extra,
	}
	d.subByArgs[arguments] = sub
	return sub
}

// SubInstances returns every sub-instance created so far, in no particular
// order; useful for callers that persist caches across a batch run.
func (d *Dispatcher) SubInstances() []*SubInstance {
	instances := make([]*SubInstance, 0, len(d.subByArgs))
	for _, sub := range d.subByArgs {
		instances = append(instances, sub)
	}
	return instances
}
