package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
	"gopkg.in/yaml.v3"
)

// Grouping keys and measures accepted in panel definitions.
const (
	GroupByItem     = "item"
	GroupByCustomer = "customer"

	MeasureByQuantity = "quantity"
	MeasureByCount    = "count"
)

// Panel names the Builder resolves its two ranked projections from.
const (
	PanelTopItems     = "top_items"
	PanelTopCustomers = "top_customers"
)

// RankedPanel defines one ranked top-N projection: which key to group by,
// which measure to sum, and how many entries to keep. Panels are loaded at
// startup from YAML files; no hot reload.
type RankedPanel struct {
	Name    string `yaml:"name"`
	GroupBy string `yaml:"group_by"` // item, customer
	Measure string `yaml:"measure"`  // quantity, count
	Limit   int    `yaml:"limit"`    // optional; defaults to 10
}

// KeyFunc resolves the panel's grouping key extractor.
func (p RankedPanel) KeyFunc() KeyFunc {
	if p.GroupBy == GroupByCustomer {
		return KeyCustomer
	}
	return KeyItem
}

// MeasureFunc resolves the panel's measure extractor.
func (p RankedPanel) MeasureFunc() MeasureFunc {
	if p.Measure == MeasureByCount {
		return MeasureCount
	}
	return MeasureQuantity
}

// Rank evaluates the panel against a filtered record snapshot.
func (p RankedPanel) Rank(records []*v1.FulfillmentRecord) RankedSeries {
	return TopN(records, p.KeyFunc(), p.MeasureFunc(), p.Limit)
}

func (p RankedPanel) validate() error {
	if p.Name == "" {
		return fmt.Errorf("panel name must not be empty")
	}
	if p.GroupBy != GroupByItem && p.GroupBy != GroupByCustomer {
		return fmt.Errorf("panel %q: unsupported group_by %q", p.Name, p.GroupBy)
	}
	if p.Measure != MeasureByQuantity && p.Measure != MeasureByCount {
		return fmt.Errorf("panel %q: unsupported measure %q", p.Name, p.Measure)
	}
	if p.Limit < 0 {
		return fmt.Errorf("panel %q: limit must not be negative", p.Name)
	}
	return nil
}

// DefaultPanels returns the built-in panel set used when no panel directory
// is configured: top fulfilled items by quantity and top customers by
// fulfillment count, both capped at ten entries.
func DefaultPanels() []RankedPanel {
	return []RankedPanel{
		{Name: PanelTopItems, GroupBy: GroupByItem, Measure: MeasureByQuantity, Limit: DefaultRankLimit},
		{Name: PanelTopCustomers, GroupBy: GroupByCustomer, Measure: MeasureByCount, Limit: DefaultRankLimit},
	}
}

// FileSystemPanelRepository loads ranked-panel definitions from *.yaml files
// in a directory. Each file contains exactly one panel at the top level.
// Panels are loaded once at startup and cached in memory.
type FileSystemPanelRepository struct {
	dir    string
	panels map[string]RankedPanel // keyed by Name
	order  []string               // file-discovery order
}

// NewFileSystemPanelRepository creates a repository and eagerly loads all
// panels from dir. A missing directory is valid and yields the defaults.
// Returns an error if any panel file is malformed or invalid.
func NewFileSystemPanelRepository(dir string) (*FileSystemPanelRepository, error) {
	repo := &FileSystemPanelRepository{
		dir:    dir,
		panels: make(map[string]RankedPanel),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileSystemPanelRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil // no panel directory — defaults apply
	}
	if err != nil {
		return fmt.Errorf("panel dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("panel path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading panel dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading panel file %s: %w", path, err)
		}

		var panel RankedPanel
		if err := yaml.Unmarshal(data, &panel); err != nil {
			return fmt.Errorf("parsing panel file %s: %w", path, err)
		}
		if panel.Name == "" && panel.GroupBy == "" {
			continue // skip empty / comment-only files
		}

		if err := panel.validate(); err != nil {
			return fmt.Errorf("panel file %s: %w", path, err)
		}
		if panel.Limit == 0 {
			panel.Limit = DefaultRankLimit
		}

		if _, exists := r.panels[panel.Name]; exists {
			return fmt.Errorf("panel %q: duplicate panel name (check multiple YAML files)", panel.Name)
		}

		r.panels[panel.Name] = panel
		r.order = append(r.order, panel.Name)
	}
	return nil
}

// Get returns the panel with the given name, or an error if not found.
func (r *FileSystemPanelRepository) Get(name string) (*RankedPanel, error) {
	panel, ok := r.panels[name]
	if !ok {
		return nil, fmt.Errorf("panel %q not found", name)
	}
	return &panel, nil
}

// Panels returns all loaded panels in file-discovery order, or the built-in
// defaults when the directory held none.
func (r *FileSystemPanelRepository) Panels() []RankedPanel {
	if len(r.order) == 0 {
		return DefaultPanels()
	}
	out := make([]RankedPanel, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.panels[name])
	}
	return out
}
