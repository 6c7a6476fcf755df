// Package termdb implements the typed, multi-indexed term database
// (spec §4.E): every live Sort and Term the current run has produced,
// partitioned by sort and scope (push) level.
package termdb

import (
	"sort"

	"github.com/smtmbt/smtmbt/internal/rng"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
)

// sortBucket is an ordered set of terms sharing one Sort: a slice for
// deterministic iteration order (pick_term's "uniform pick from the
// selected typed bucket" needs a stable index space) plus an index map
// for O(1) membership checks, the same two-structures-in-one idiom the
// teacher's internal/ethereum/state/world_state.go uses for its
// accounts list.
type sortBucket struct {
	sort  *smtsort.Sort
	terms []*term.Term
	index map[term.Handle]int
}

func newSortBucket(s *smtsort.Sort) *sortBucket {
	return &sortBucket{sort: s, index: make(map[term.Handle]int)}
}

func (b *sortBucket) add(t *term.Term) {
	if _, ok := b.index[t.Handle]; ok {
		return
	}
	b.index[t.Handle] = len(b.terms)
	b.terms = append(b.terms, t)
}

func (b *sortBucket) contains(t *term.Term) bool {
	_, ok := b.index[t.Handle]
	return ok
}

// TermDB is the central term/sort store for one run.
type TermDB struct {
	nextTermID uint64
	nextSortID uint64

	// sorts indexes every registered Sort by its back-end handle, the
	// interning table `find_sort` canonicalises against.
	sorts map[smtsort.Handle]*smtsort.Sort
	// sortsByKind is spec §4.E(1)'s sorts_by_kind index.
	sortsByKind map[smtsort.Kind][]*smtsort.Sort
	// termsBySort is spec §4.E(1)'s terms_by_sort index.
	termsBySort map[smtsort.Handle]*sortBucket
	// byID allows find-by-id for trace replay id comparisons.
	byID map[uint64]*term.Term
	// vars is every live bound variable, tracked separately so
	// pick_var / remove_var don't have to scan every sort bucket.
	vars map[uint64]*term.Term

	// CurrentLevel is the push level new pick_* calls default their
	// visibility bound to; SolverMgr updates it on push/pop.
	CurrentLevel uint32
}

// New constructs an empty TermDB.
func New() *TermDB {
	return &TermDB{
		sorts:       make(map[smtsort.Handle]*smtsort.Sort),
		sortsByKind: make(map[smtsort.Kind][]*smtsort.Sort),
		termsBySort: make(map[smtsort.Handle]*sortBucket),
		byID:        make(map[uint64]*term.Term),
		vars:        make(map[uint64]*term.Term),
	}
}

// FindSort canonicalises a Sort: if a structurally-equal Sort was
// already registered, returns it (with its existing Id); otherwise
// assigns the next Id, registers it, and returns it.
func (db *TermDB) FindSort(s *smtsort.Sort) *smtsort.Sort {
	if existing, ok := db.sorts[s.HashKey()]; ok {
		return existing
	}
	db.nextSortID++
	s.Id = db.nextSortID
	db.sorts[s.HashKey()] = s
	db.sortsByKind[s.Kind] = append(db.sortsByKind[s.Kind], s)
	db.termsBySort[s.HashKey()] = newSortBucket(s)
	return s
}

// insert assigns t an id (unless it's already registered, matching
// "reuse within one run is forbidden" by being a no-op on a term whose
// Handle we've already seen), indexes it, and returns the canonical
// Term (see Find).
func (db *TermDB) insert(t *term.Term) *term.Term {
	t.Sort = db.FindSort(t.Sort)
	bucket := db.termsBySort[t.Sort.HashKey()]
	if bucket.contains(t) {
		return bucket.terms[bucket.index[t.Handle]]
	}
	db.nextTermID++
	t.Id = db.nextTermID
	bucket.add(t)
	db.byID[t.Id] = t
	if t.Leaf == term.VARIABLE {
		db.vars[t.Id] = t
	}
	return t
}

// AddInput registers a free constant.
func (db *TermDB) AddInput(t *term.Term) *term.Term {
	t.Leaf = term.CONSTANT
	return db.insert(t)
}

// AddVar registers a quantifier-bound variable, introduced at the given
// push level.
func (db *TermDB) AddVar(t *term.Term, level uint32) *term.Term {
	t.Leaf = term.VARIABLE
	t.Levels = []uint32{level}
	return db.insert(t)
}

// AddConst is an alias for AddInput, matching spec §4.E's
// add_input/var/const/value/term naming.
func (db *TermDB) AddConst(t *term.Term) *term.Term { return db.AddInput(t) }

// AddValue registers a literal or special value.
func (db *TermDB) AddValue(t *term.Term) *term.Term {
	t.Leaf = term.VALUE
	return db.insert(t)
}

// AddTerm registers a compound term. Its scope-level set is the union
// of its arguments' level sets (spec §4.E add_term note).
func (db *TermDB) AddTerm(t *term.Term, args ...*term.Term) *term.Term {
	t.Leaf = term.NONE
	t.Args = args
	t.Levels = term.LevelsUnion(args...)
	return db.insert(t)
}

// Find canonicalises term t: if an equal term was already seen, returns
// it; otherwise returns t unchanged (not inserted — callers insert via
// the AddXxx methods once they've decided t is actually new).
func (db *TermDB) Find(t *term.Term) *term.Term {
	bucket, ok := db.termsBySort[t.Sort.HashKey()]
	if !ok {
		return t
	}
	if idx, ok := bucket.index[t.Handle]; ok {
		return bucket.terms[idx]
	}
	return t
}

// RemoveVar deletes a bound variable from the TermDB, invoked when the
// quantifier body that consumed it is closed (spec §3 Lifecycles).
func (db *TermDB) RemoveVar(v *term.Term) {
	delete(db.vars, v.Id)
	if bucket, ok := db.termsBySort[v.Sort.HashKey()]; ok {
		if idx, ok := bucket.index[v.Handle]; ok {
			last := len(bucket.terms) - 1
			bucket.terms[idx] = bucket.terms[last]
			bucket.index[bucket.terms[idx].Handle] = idx
			bucket.terms = bucket.terms[:last]
			delete(bucket.index, v.Handle)
		}
	}
}

// visible reports whether t is visible at push level L: spec's scope-
// level invariant, max(levels(T)) <= L.
func visible(t *term.Term, level uint32) bool {
	return t.MaxLevel() <= level
}

// HasTermFilter narrows a HasTerm/PickTerm query.
type HasTermFilter struct {
	Sort     *smtsort.Sort  // nil = any sort
	Kind     smtsort.Kind   // smtsort.ANY = any kind (used when Sort is nil)
	Kinds    []smtsort.Kind // non-empty = any of these kinds (used when Sort is nil and Kind == ANY)
	Level    uint32
	UseLevel bool // if false, CurrentLevel is used
}

func (db *TermDB) level(f HasTermFilter) uint32 {
	if f.UseLevel {
		return f.Level
	}
	return db.CurrentLevel
}

func (db *TermDB) buckets(f HasTermFilter) []*sortBucket {
	if f.Sort != nil {
		if b, ok := db.termsBySort[f.Sort.HashKey()]; ok {
			return []*sortBucket{b}
		}
		return nil
	}
	var kinds []smtsort.Kind
	if f.Kind != smtsort.ANY {
		kinds = []smtsort.Kind{f.Kind}
	} else if len(f.Kinds) > 0 {
		kinds = f.Kinds
	} else {
		kinds = smtsort.AllKinds
	}
	var out []*sortBucket
	for _, k := range kinds {
		for _, s := range db.sortsByKind[k] {
			if b, ok := db.termsBySort[s.HashKey()]; ok {
				out = append(out, b)
			}
		}
	}
	return out
}

// HasTerm reports whether any term matching filter exists and is
// visible at the filter's level.
func (db *TermDB) HasTerm(f HasTermFilter) bool {
	level := db.level(f)
	for _, b := range db.buckets(f) {
		for _, t := range b.terms {
			if visible(t, level) {
				return true
			}
		}
	}
	return false
}

// visibleTerms collects every term matching filter and visible at its
// level, in bucket/insertion order (used by both PickTerm and tests
// asserting on availability).
func (db *TermDB) visibleTerms(f HasTermFilter) []*term.Term {
	level := db.level(f)
	var out []*term.Term
	for _, b := range db.buckets(f) {
		for _, t := range b.terms {
			if visible(t, level) {
				out = append(out, t)
			}
		}
	}
	return out
}

// PickSortKind picks a SortKind. When withTerms is true, only kinds
// with at least one live, visible term qualify.
func (db *TermDB) PickSortKind(r *rng.RNGenerator, withTerms bool) (smtsort.Kind, bool) {
	var candidates []smtsort.Kind
	for _, k := range smtsort.AllKinds {
		if withTerms && !db.HasTerm(HasTermFilter{Kind: k}) {
			continue
		}
		if !withTerms && len(db.sortsByKind[k]) == 0 {
			continue
		}
		candidates = append(candidates, k)
	}
	if len(candidates) == 0 {
		return smtsort.UNDEFINED, false
	}
	return rng.PickFromSlice(r, candidates), true
}

// PickSort picks a registered Sort, optionally constrained by kind.
func (db *TermDB) PickSort(r *rng.RNGenerator, kind smtsort.Kind, withTerms bool) (*smtsort.Sort, bool) {
	var candidates []*smtsort.Sort
	if kind != smtsort.ANY {
		candidates = db.sortsByKind[kind]
	} else {
		for _, k := range smtsort.AllKinds {
			candidates = append(candidates, db.sortsByKind[k]...)
		}
	}
	if withTerms {
		filtered := candidates[:0:0]
		for _, s := range candidates {
			if db.HasTerm(HasTermFilter{Sort: s}) {
				filtered = append(filtered, s)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return rng.PickFromSlice(r, candidates), true
}

// PickTerm uniformly picks a live, visible term matching filter.
func (db *TermDB) PickTerm(r *rng.RNGenerator, f HasTermFilter) (*term.Term, bool) {
	terms := db.visibleTerms(f)
	if len(terms) == 0 {
		return nil, false
	}
	return rng.PickFromSlice(r, terms), true
}

// PickValue picks a live, visible VALUE-leaf term matching filter.
func (db *TermDB) PickValue(r *rng.RNGenerator, f HasTermFilter) (*term.Term, bool) {
	terms := db.visibleTerms(f)
	var values []*term.Term
	for _, t := range terms {
		if t.Leaf == term.VALUE {
			values = append(values, t)
		}
	}
	if len(values) == 0 {
		return nil, false
	}
	return rng.PickFromSlice(r, values), true
}

// PickVar picks a live bound variable, optionally constrained by sort.
// Candidates are sorted by Id before picking: db.vars is a Go map, whose
// iteration order is randomized per-process, and building the candidate
// slice straight off that order would make PickVar's result depend on
// map internals rather than the seed, breaking spec §8's determinism
// and replay-fidelity properties (the same fix PickOpKind already
// applies to its own map-derived candidate set).
func (db *TermDB) PickVar(r *rng.RNGenerator, wantSort *smtsort.Sort) (*term.Term, bool) {
	var candidates []*term.Term
	for _, v := range db.vars {
		if wantSort == nil || v.Sort.Equal(wantSort) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Id < candidates[j].Id })
	return rng.PickFromSlice(r, candidates), true
}

// PickQuantBody picks a live, visible Boolean term built from at least
// one bound variable (its scope-level set is non-empty), suitable as a
// FORALL/EXISTS body. A bare variable is not a body. Whether the
// variables the term was built from are still live is not checked.
func (db *TermDB) PickQuantBody(r *rng.RNGenerator, boolSort *smtsort.Sort) (*term.Term, bool) {
	terms := db.visibleTerms(HasTermFilter{Sort: boolSort})
	var candidates []*term.Term
	for _, t := range terms {
		if len(t.Levels) > 0 && t.Leaf != term.VARIABLE {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return rng.PickFromSlice(r, candidates), true
}

// PickQuantTerm picks a live, visible term of the given Boolean sort.
// It does not check that the term is a FORALL/EXISTS application.
func (db *TermDB) PickQuantTerm(r *rng.RNGenerator, boolSort *smtsort.Sort) (*term.Term, bool) {
	return db.PickTerm(r, HasTermFilter{Sort: boolSort})
}

// ByID looks up a term by its trace id, used to verify replay.
func (db *TermDB) ByID(id uint64) (*term.Term, bool) {
	t, ok := db.byID[id]
	return t, ok
}

// HasVar reports whether any live bound variable exists, optionally
// constrained by sort. Unlike PickVar this does not draw from the RNG,
// so it is safe to use as a pure availability check (spec §4.E
// "op-selection availability cache").
func (db *TermDB) HasVar(sort *smtsort.Sort) bool {
	for _, v := range db.vars {
		if sort == nil || v.Sort.Equal(sort) {
			return true
		}
	}
	return false
}

// HasQuantBody reports whether PickQuantBody has a candidate, without
// drawing from the RNG (see HasVar).
func (db *TermDB) HasQuantBody(boolSort *smtsort.Sort) bool {
	for _, t := range db.visibleTerms(HasTermFilter{Sort: boolSort}) {
		if len(t.Levels) > 0 && t.Leaf != term.VARIABLE {
			return true
		}
	}
	return false
}
