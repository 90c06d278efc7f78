package corpus

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrInvalidCatalog is returned when catalog contents are inconsistent.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the raw, ordered content of a knowledge corpus. Every YAML
// file of a corpus directory decodes into a Catalog; files are merged in
// lexical file-name order.
type Catalog struct {
	Clauses           []types.Clause            `yaml:"clauses"`
	Patterns          []types.PulsePattern      `yaml:"patterns"`
	Formulas          []types.Formula           `yaml:"formulas"`
	Compatibility     []types.CompatibilityRule `yaml:"compatibility"`
	Rules             []types.DiagnosticRule    `yaml:"rules"`
	Protocols         []types.TreatmentProtocol `yaml:"protocols"`
	Categories        []types.SyndromeCategory  `yaml:"categories"`
	Symptoms          []types.SymptomMeaning    `yaml:"symptoms"`
	Medication        []types.MedicationPlan    `yaml:"medication"`
	DefaultMedication types.MedicationPlan      `yaml:"default_medication"`
	Outcomes          []types.OutcomeEntry      `yaml:"outcomes"`
	DefaultOutcome    string                    `yaml:"default_outcome"`
	AnchorHerbs       []string                  `yaml:"anchor_herbs"`
}

func (c *Catalog) merge(o Catalog) {
	c.Clauses = append(c.Clauses, o.Clauses...)
	c.Patterns = append(c.Patterns, o.Patterns...)
	c.Formulas = append(c.Formulas, o.Formulas...)
	c.Compatibility = append(c.Compatibility, o.Compatibility...)
	c.Rules = append(c.Rules, o.Rules...)
	c.Protocols = append(c.Protocols, o.Protocols...)
	c.Categories = append(c.Categories, o.Categories...)
	c.Symptoms = append(c.Symptoms, o.Symptoms...)
	c.Medication = append(c.Medication, o.Medication...)
	c.Outcomes = append(c.Outcomes, o.Outcomes...)
	c.AnchorHerbs = append(c.AnchorHerbs, o.AnchorHerbs...)
	if len(o.DefaultMedication.Herbs) > 0 {
		c.DefaultMedication = o.DefaultMedication
	}
	if o.DefaultOutcome != "" {
		c.DefaultOutcome = o.DefaultOutcome
	}
}

// ReadCatalog decodes and merges every *.yaml file at the root of fsys.
func ReadCatalog(fsys fs.FS) (Catalog, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return Catalog{}, fmt.Errorf("list catalog files: %w", err)
	}
	if len(names) == 0 {
		return Catalog{}, fmt.Errorf("%w: no catalog files", ErrInvalidCatalog)
	}
	var cat Catalog
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return Catalog{}, fmt.Errorf("read %s: %w", name, err)
		}
		var part Catalog
		if err := yaml.Unmarshal(data, &part); err != nil {
			return Catalog{}, fmt.Errorf("parse %s: %w", name, err)
		}
		cat.merge(part)
	}
	return cat, nil
}

// Validate reports every dangling reference, duplicate key and
// out-of-range value in the catalog.
func (c Catalog) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCatalog}, args...)...))
	}

	clauses := map[string]bool{}
	for _, cl := range c.Clauses {
		if cl.ID == "" {
			bad("clause without id")
		} else if clauses[cl.ID] {
			bad("duplicate clause %s", cl.ID)
		}
		clauses[cl.ID] = true
	}

	patterns := map[string]bool{}
	ids := map[string]bool{}
	for _, p := range c.Patterns {
		if ids[p.ID] {
			bad("duplicate pattern id %s", p.ID)
		}
		if patterns[p.Name] {
			bad("duplicate pattern name %s", p.Name)
		}
		ids[p.ID], patterns[p.Name] = true, true
		if p.VitalState != "" && !p.VitalState.Valid() {
			bad("pattern %s: unknown vital state %q", p.ID, p.VitalState)
		}
	}

	formulas := map[string]bool{}
	for _, f := range c.Formulas {
		if formulas[f.Name] {
			bad("duplicate formula %s", f.Name)
		}
		formulas[f.Name] = true
		if f.Clause != "" && !clauses[f.Clause] {
			bad("formula %s: unknown clause %s", f.Name, f.Clause)
		}
	}

	for i, r := range c.Compatibility {
		if !r.Category.Valid() {
			bad("compatibility rule %d: unknown category %q", i, r.Category)
		}
		if len(r.Herbs) < 2 {
			bad("compatibility rule %d: fewer than two herbs", i)
		}
	}

	rules := map[string]bool{}
	for _, r := range c.Rules {
		if rules[r.ID] {
			bad("duplicate rule %s", r.ID)
		}
		rules[r.ID] = true
		for _, name := range r.Patterns {
			if !patterns[name] {
				bad("rule %s: unknown pattern %s", r.ID, name)
			}
		}
		if r.Clause != "" && !clauses[r.Clause] {
			bad("rule %s: unknown clause %s", r.ID, r.Clause)
		}
		if !r.Classification.Valid() {
			bad("rule %s: unknown classification %q", r.ID, r.Classification)
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			bad("rule %s: confidence %v out of range", r.ID, r.Confidence)
		}
	}

	protocols := map[string]bool{}
	for _, p := range c.Protocols {
		if protocols[p.ID] {
			bad("duplicate protocol %s", p.ID)
		}
		protocols[p.ID] = true
		if len(p.Principles) == 0 {
			bad("protocol %s: no principles", p.ID)
		}
		for _, s := range p.States {
			if !s.Valid() {
				bad("protocol %s: unknown vital state %q", p.ID, s)
			}
		}
	}

	for _, cat := range c.Categories {
		if !cat.Type.Valid() {
			bad("unknown category type %q", cat.Type)
		}
	}
	for _, m := range c.Medication {
		if !m.State.Valid() {
			bad("medication: unknown vital state %q", m.State)
		}
	}
	for _, o := range c.Outcomes {
		if (o.State == "") == (o.Classification == "") {
			bad("outcome %q: exactly one of state and classification must be set", o.Text)
		}
	}
	return errors.Join(errs...)
}

// Load reads, validates and indexes the catalog files of fsys.
func Load(fsys fs.FS) (*KnowledgeBase, error) {
	cat, err := ReadCatalog(fsys)
	if err != nil {
		return nil, err
	}
	return New(cat)
}

// LoadDir loads a corpus from a directory on disk.
func LoadDir(dir string) (*KnowledgeBase, error) {
	kb, err := Load(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", dir, err)
	}
	return kb, nil
}

// Default loads the corpus compiled into the binary.
func Default() (*KnowledgeBase, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded corpus: %w", err)
	}
	return Load(sub)
}

// EmbeddedFiles lists the catalog files compiled into the binary.
func EmbeddedFiles() []string {
	names, _ := fs.Glob(embedded, "data/*.yaml")
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSuffix(path.Base(n), ".yaml"))
	}
	return out
}
