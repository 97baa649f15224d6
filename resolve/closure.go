package resolve

import (
	"context"

	"github.com/bits-and-blooms/bitset"
	"github.com/vk/crosstoolgo/internal/ctxlog"
	"github.com/vk/crosstoolgo/model"
)

// EnabledSet is the activation closure of one request: the set of features
// and action configs simultaneously active. It is immutable and indexed by
// declaration position.
type EnabledSet struct {
	r    *Resolver
	bits *bitset.BitSet
}

// Contains reports whether the named feature or action config is active.
// Unknown names are simply not active.
func (s *EnabledSet) Contains(name string) bool {
	idx, ok := s.r.index[name]
	return ok && s.bits.Test(uint(idx))
}

// Names returns the active selectable names in declaration order.
func (s *EnabledSet) Names() []string {
	var names []string
	for i, sel := range s.r.selectables {
		if s.bits.Test(uint(i)) {
			names = append(names, sel.SelectableName())
		}
	}
	return names
}

// matchesAny evaluates a with_feature disjunction against the active set.
// An empty disjunction is unconditional.
func (s *EnabledSet) matchesAny(sets []*model.WithFeatureSet) bool {
	if len(sets) == 0 {
		return true
	}
	for _, wfs := range sets {
		if s.matchesAll(wfs) {
			return true
		}
	}
	return false
}

func (s *EnabledSet) matchesAll(wfs *model.WithFeatureSet) bool {
	for _, name := range wfs.Features {
		if !s.Contains(name) {
			return false
		}
	}
	for _, name := range wfs.NotFeatures {
		if s.Contains(name) {
			return false
		}
	}
	return true
}

// ResolveFeatures computes the maximal consistent activation closure for a
// request. Default-enabled selectables start active; requested names and
// everything they imply activate when their requires disjunction is met
// (an unmet requires silently leaves the candidate inactive). After the
// closure reaches a fixed point, provides declarations are checked for
// conflicts across the whole active set.
//
// Unknown names in requested or disabled, and an attempt to disable a
// default-enabled selectable, fail the request.
func (r *Resolver) ResolveFeatures(ctx context.Context, requested, disabled []string) (*EnabledSet, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving feature closure.", "toolchain", r.tc.Identifier, "requested", len(requested), "disabled", len(disabled))

	blocked := make(map[string]struct{}, len(disabled))
	for _, name := range disabled {
		idx, ok := r.index[name]
		if !ok {
			return nil, resolutionErrorf("", name, "unknown feature in disabled set")
		}
		if r.selectables[idx].EnabledByDefault() {
			return nil, resolutionErrorf("", name, "feature is always enabled and cannot be disabled")
		}
		blocked[name] = struct{}{}
	}
	for _, name := range requested {
		if _, ok := r.index[name]; !ok {
			return nil, resolutionErrorf("", name, "unknown feature in requested set")
		}
	}

	active := bitset.New(uint(len(r.selectables)))

	// Seed the queue with the default-enabled selectables, so their implies
	// chains activate, then the explicit requests.
	var queue []string
	for i, sel := range r.selectables {
		if sel.EnabledByDefault() {
			active.Set(uint(i))
			queue = append(queue, sel.SelectableName())
		}
	}
	queue = append(queue, requested...)

	// Fixed point. Candidates whose requires gate is not yet open are
	// deferred and retried after every round that activates something, so
	// the result does not depend on request order. Each selectable's
	// implies list is expanded at most once, which makes cyclic implies
	// chains terminate, and the retry loop stops as soon as a full round
	// activates nothing.
	expanded := make(map[string]struct{}, len(queue))
	var deferred []string
	for {
		progress := false
		for len(queue) > 0 {
			name := queue[0]
			queue = queue[1:]

			idx := r.index[name]
			sel := r.selectables[idx]

			if !active.Test(uint(idx)) {
				if _, isBlocked := blocked[name]; isBlocked {
					continue
				}
				if !requiresMet(sel, active, r.index) {
					deferred = append(deferred, name)
					continue
				}
				active.Set(uint(idx))
				progress = true
			}

			if _, done := expanded[name]; done {
				continue
			}
			expanded[name] = struct{}{}
			queue = append(queue, sel.ImpliesNames()...)
		}
		if !progress || len(deferred) == 0 {
			break
		}
		queue, deferred = deferred, nil
	}
	for _, name := range deferred {
		// Documented contract: an unmet requires silently leaves the
		// candidate inactive.
		logger.Debug("Feature not enabled, requires unmet.", "feature", name)
	}

	es := &EnabledSet{r: r, bits: active}
	if err := r.checkProvides(es); err != nil {
		return nil, err
	}

	logger.Debug("Feature closure resolved.", "active", active.Count())
	return es, nil
}

// requiresMet reports whether at least one of the selectable's required
// feature sets is fully active. No requires means trivially met.
func requiresMet(sel model.Selectable, active *bitset.BitSet, index map[string]int) bool {
	requires := sel.RequiresAnyOf()
	if len(requires) == 0 {
		return true
	}
	for _, fs := range requires {
		met := true
		for _, name := range fs.Features {
			if !active.Test(uint(index[name])) {
				met = false
				break
			}
		}
		if met {
			return true
		}
	}
	return false
}

// checkProvides runs the post-closure mutual-exclusion pass: no capability
// may be provided by two active selectables, and a provided capability may
// not collide with another active selectable's name.
func (r *Resolver) checkProvides(es *EnabledSet) error {
	providers := make(map[string]string)
	for i, sel := range r.selectables {
		if !es.bits.Test(uint(i)) {
			continue
		}
		name := sel.SelectableName()
		for _, capability := range sel.ProvidesNames() {
			if prev, taken := providers[capability]; taken {
				return resolutionErrorf("", name, "provides %q, already provided by active feature %q", capability, prev)
			}
			if idx, declared := r.index[capability]; declared && es.bits.Test(uint(idx)) && capability != name {
				return resolutionErrorf("", name, "provides %q, which collides with an active feature of that name", capability)
			}
			providers[capability] = name
		}
	}
	return nil
}
