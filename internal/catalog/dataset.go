package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Default returns the dataset bundled with the binary.
func Default() (*Dataset, error) {
	return Parse(embeddedCatalog)
}

// Load reads a dataset from disk. JSON is accepted too since it parses as YAML.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks names only. A menu item with an unknown category or
// customization, or an image that cannot be fetched, is still valid: it gets
// skipped with a warning when seeding.
func (d *Dataset) Validate() error {
	var problems []string

	categories := make(map[string]bool, len(d.Categories))
	for i, c := range d.Categories {
		switch {
		case strings.TrimSpace(c.Name) == "":
			problems = append(problems, fmt.Sprintf("categories[%d]: name is empty", i))
		case categories[c.Name]:
			problems = append(problems, fmt.Sprintf("categories[%d]: duplicate name %q", i, c.Name))
		}
		categories[c.Name] = true
	}

	customizations := make(map[string]bool, len(d.Customizations))
	for i, c := range d.Customizations {
		switch {
		case strings.TrimSpace(c.Name) == "":
			problems = append(problems, fmt.Sprintf("customizations[%d]: name is empty", i))
		case customizations[c.Name]:
			problems = append(problems, fmt.Sprintf("customizations[%d]: duplicate name %q", i, c.Name))
		}
		customizations[c.Name] = true
	}

	for i, m := range d.Menu {
		if strings.TrimSpace(m.Name) == "" {
			problems = append(problems, fmt.Sprintf("menu[%d]: name is empty", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid dataset:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// DanglingReferences lists category and customization names used by menu
// items but not defined in the dataset.
func (d *Dataset) DanglingReferences() []string {
	categories := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		categories[c.Name] = true
	}
	customizations := make(map[string]bool, len(d.Customizations))
	for _, c := range d.Customizations {
		customizations[c.Name] = true
	}

	var missing []string
	for _, m := range d.Menu {
		if !categories[m.CategoryName] {
			missing = append(missing, fmt.Sprintf("%s: category %q", m.Name, m.CategoryName))
		}
		for _, name := range m.Customizations {
			if !customizations[name] {
				missing = append(missing, fmt.Sprintf("%s: customization %q", m.Name, name))
			}
		}
	}
	return missing
}

// reservedDomains never resolve to a real image host (RFC 2606, RFC 6761).
var reservedDomains = []string{"example.com", "example.net", "example.org", "example", "invalid", "test", "localhost"}

// ReservedImageURLs lists menu items whose image_url is empty, unparsable, or
// on a reserved domain. Seeding skips every one of them.
func (d *Dataset) ReservedImageURLs() []string {
	var bad []string
	for _, m := range d.Menu {
		if !fetchableHost(m.ImageURL) {
			bad = append(bad, fmt.Sprintf("%s: %q", m.Name, m.ImageURL))
		}
	}
	return bad
}

func fetchableHost(imageURL string) bool {
	u, err := url.Parse(strings.TrimSpace(imageURL))
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	for _, domain := range reservedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return false
		}
	}
	return true
}
