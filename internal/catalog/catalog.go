// Package catalog loads named predicates from CUE files.
//
// A catalog directory holds one or more .cue files of the same package that
// together define a string-valued struct:
//
//	package orders
//
//	predicates: {
//		open:    "row => row.Status == \"open\""
//		recent:  "row => row.Id > 1000"
//	}
//
// CUE unification means several files may contribute entries, and a
// conflicting redefinition is a load error.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
	"go.uber.org/multierr"

	"github.com/roach88/rowfilter/internal/expr"
	"github.com/roach88/rowfilter/internal/source"
	"github.com/roach88/rowfilter/internal/translate"
)

// Field is the top-level CUE field holding the predicates.
const Field = "predicates"

// Error codes for LoadError.
const (
	ErrCodeNotFound     = "E005" // Directory missing or not a directory
	ErrCodeScanError    = "E002" // Directory walk failed
	ErrCodeNoFiles      = "E003" // No .cue files
	ErrCodeLoadFailed   = "E004" // cue/load failed
	ErrCodeBuildFailed  = "E006" // CUE evaluation failed
	ErrCodeNoPredicates = "E201" // Missing or empty predicates struct
	ErrCodeNotString    = "E202" // Predicate value is not a concrete string
)

// LoadError represents an error that occurred while loading a catalog.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Entry is a single named predicate.
type Entry struct {
	Name   string
	Source string
	Pos    token.Pos
}

// Catalog is a loaded set of predicates, sorted by name.
type Catalog struct {
	Dir       string
	Entries   []Entry
	FileCount int
}

// Load reads every .cue file in dir and extracts the predicates struct.
func Load(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	if err := value.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("validating CUE value: %v", err)}
	}

	predicates := value.LookupPath(cue.ParsePath(Field))
	if !predicates.Exists() {
		return nil, &LoadError{Code: ErrCodeNoPredicates, Message: fmt.Sprintf("no %q field in %s", Field, dir)}
	}

	iter, err := predicates.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNoPredicates, Message: fmt.Sprintf("%s must be a struct: %v", Field, err), Pos: predicates.Pos()}
	}

	cat := &Catalog{Dir: dir, FileCount: len(files)}
	for iter.Next() {
		v := iter.Value()
		src, err := v.String()
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeNotString,
				Message: fmt.Sprintf("%s.%s must be a string: %v", Field, iter.Label(), err),
				Pos:     v.Pos(),
			}
		}
		cat.Entries = append(cat.Entries, Entry{Name: iter.Label(), Source: src, Pos: v.Pos()})
	}
	if len(cat.Entries) == 0 {
		return nil, &LoadError{Code: ErrCodeNoPredicates, Message: fmt.Sprintf("%s is empty", Field), Pos: predicates.Pos()}
	}

	sort.Slice(cat.Entries, func(i, j int) bool {
		return cat.Entries[i].Name < cat.Entries[j].Name
	})
	return cat, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Lookup returns the entry with the given name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i := sort.Search(len(c.Entries), func(i int) bool { return c.Entries[i].Name >= name })
	if i < len(c.Entries) && c.Entries[i].Name == name {
		return c.Entries[i], true
	}
	return Entry{}, false
}

// Result is the outcome of translating one entry. Exactly one of Statement
// and Err is set.
type Result struct {
	Entry       Entry
	Fingerprint string
	Statement   *translate.Statement
	Err         error
}

// TranslateAll parses and translates every entry in name order.
//
// It always returns one Result per entry. The error combines every entry's
// failure and is nil when all entries translate. Entries with identical
// trees share a Statement.
func (c *Catalog) TranslateAll() ([]Result, error) {
	cache := translate.NewCache(len(c.Entries))
	results := make([]Result, 0, len(c.Entries))

	var errs error
	for _, e := range c.Entries {
		r := Result{Entry: e}
		r.Statement, r.Fingerprint, r.Err = translateEntry(cache, e)
		if r.Err != nil {
			errs = multierr.Append(errs, r.Err)
		}
		results = append(results, r)
	}
	return results, errs
}

func translateEntry(cache *translate.Cache, e Entry) (*translate.Statement, string, error) {
	lambda, err := source.Parse(e.Source)
	if err != nil {
		return nil, "", fmt.Errorf("predicate %q: %w", e.Name, err)
	}
	fp, err := expr.Fingerprint(lambda)
	if err != nil {
		return nil, "", fmt.Errorf("predicate %q: %w", e.Name, err)
	}
	stmt, err := cache.Translate(lambda)
	if err != nil {
		return nil, fp, fmt.Errorf("predicate %q: %w", e.Name, err)
	}
	return stmt, fp, nil
}
