package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// Search limits.
const (
	MaxSearchMatches = 550
	MaxSuggestions   = 25
	MaxDiskFilters   = 4
)

// Search errors.
var (
	ErrInvalidDiskSpec = errors.New("invalid disk spec")
	ErrTooManyDisks    = errors.New("too many disk filters")
	ErrTooManyMatches  = errors.New("too many matching services, narrow the filter")
	ErrUnknownField    = errors.New("unknown suggestion field")
)

// Field names a filterable service attribute for suggestions.
type Field string

// Suggestion fields.
const (
	FieldCPU       Field = "cpu"
	FieldRAM       Field = "ram"
	FieldRegion    Field = "region"
	FieldGPU       Field = "gpu"
	FieldStorage   Field = "storage"
	FieldServiceID Field = "service_id"
)

// ParseField maps a request field name to a Field. "datacenter" is accepted
// for region.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldCPU, FieldRAM, FieldRegion, FieldGPU, FieldStorage, FieldServiceID:
		return f, nil
	case "datacenter":
		return FieldRegion, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// Filter narrows the catalog by exact hardware values. Empty fields match
// everything. Disks are "<qty>x-<cap>GB-<type>" specs that must all be
// present on a service.
type Filter struct {
	CPU    string   `json:"cpu,omitempty"`
	RAM    string   `json:"ram,omitempty"`
	Region string   `json:"region,omitempty"`
	GPU    string   `json:"gpu,omitempty"`
	Disks  []string `json:"disks,omitempty"`
}

// Suggestion is one autocomplete choice.
type Suggestion struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var diskSpecPattern = regexp.MustCompile(`(?i)^(\d+)x-(\d+)gb-(\w+)$`)

// ParseDiskSpec parses "<qty>x-<cap>GB-<type>", case-insensitively.
func ParseDiskSpec(s string) (domain.Disk, error) {
	m := diskSpecPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return domain.Disk{}, fmt.Errorf("%w: %q", ErrInvalidDiskSpec, s)
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Disk{}, fmt.Errorf("%w: %q", ErrInvalidDiskSpec, s)
	}
	capGB, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.Disk{}, fmt.Errorf("%w: %q", ErrInvalidDiskSpec, s)
	}
	return domain.Disk{Quantity: qty, CapacityGB: capGB, Type: strings.ToLower(m[3])}, nil
}

// Search returns the services matching every set field of f.
func Search(services []domain.Service, f Filter) ([]domain.Service, error) {
	if len(f.Disks) > MaxDiskFilters {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyDisks, len(f.Disks), MaxDiskFilters)
	}
	disks := make([]domain.Disk, 0, len(f.Disks))
	for _, spec := range f.Disks {
		d, err := ParseDiskSpec(spec)
		if err != nil {
			return nil, err
		}
		disks = append(disks, d)
	}

	matches := filterServices(services, f, disks)
	if len(matches) > MaxSearchMatches {
		return nil, fmt.Errorf("%w (%d/%d)", ErrTooManyMatches, len(matches), MaxSearchMatches)
	}
	return matches, nil
}

// Suggest lists up to MaxSuggestions distinct values of field among the
// services matching f, keeping those containing query (case-insensitive).
// The focused field is ignored in f. Malformed disk specs in f are skipped.
func Suggest(services []domain.Service, field Field, query string, f Filter) ([]Suggestion, error) {
	switch field {
	case FieldCPU:
		f.CPU = ""
	case FieldRAM:
		f.RAM = ""
	case FieldRegion:
		f.Region = ""
	case FieldGPU:
		f.GPU = ""
	case FieldStorage, FieldServiceID:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	var disks []domain.Disk
	for _, spec := range f.Disks {
		if d, err := ParseDiskSpec(spec); err == nil {
			disks = append(disks, d)
		}
	}
	matches := filterServices(services, f, disks)

	var candidates []Suggestion
	switch field {
	case FieldCPU:
		candidates = valueSuggestions(matches, func(s domain.Service) string { return s.CPU })
	case FieldRAM:
		candidates = valueSuggestions(matches, func(s domain.Service) string { return s.RAM })
	case FieldRegion:
		candidates = valueSuggestions(matches, func(s domain.Service) string { return s.Region })
	case FieldGPU:
		candidates = valueSuggestions(matches, func(s domain.Service) string { return s.GPU })
	case FieldStorage:
		candidates = storageSuggestions(matches, disks)
	case FieldServiceID:
		candidates = serviceIDSuggestions(matches)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := []Suggestion{}
	for _, c := range candidates {
		if len(out) == MaxSuggestions {
			break
		}
		if strings.Contains(strings.ToLower(c.matchText(field)), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// matchText is the text a query is matched against. Service ids match on the
// id only.
func (s Suggestion) matchText(field Field) string {
	if field == FieldServiceID {
		return s.Value
	}
	return s.Name
}

func filterServices(services []domain.Service, f Filter, disks []domain.Disk) []domain.Service {
	out := []domain.Service{}
	for _, s := range services {
		if f.CPU != "" && s.CPU != f.CPU {
			continue
		}
		if f.RAM != "" && s.RAM != f.RAM {
			continue
		}
		if f.Region != "" && s.Region != f.Region {
			continue
		}
		if f.GPU != "" && s.GPU != f.GPU {
			continue
		}
		if !hasDisks(s, disks) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func hasDisks(s domain.Service, want []domain.Disk) bool {
	for _, w := range want {
		found := slices.ContainsFunc(s.Disks, func(d domain.Disk) bool {
			return d.Quantity == w.Quantity &&
				d.CapacityGB == w.CapacityGB &&
				strings.EqualFold(d.Type, w.Type)
		})
		if !found {
			return false
		}
	}
	return true
}

func valueSuggestions(services []domain.Service, value func(domain.Service) string) []Suggestion {
	seen := make(map[string]struct{})
	var out []Suggestion
	for _, s := range services {
		v := value(s)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Suggestion{Name: v, Value: v})
	}
	return out
}

// storageSuggestions lists distinct disk specs, leaving out those already selected.
func storageSuggestions(services []domain.Service, selected []domain.Disk) []Suggestion {
	seen := make(map[string]struct{})
	for _, d := range selected {
		seen[d.Spec()] = struct{}{}
	}
	var out []Suggestion
	for _, s := range services {
		for _, d := range s.Disks {
			spec := d.Spec()
			if _, ok := seen[spec]; ok {
				continue
			}
			seen[spec] = struct{}{}
			out = append(out, Suggestion{Name: d.Label(), Value: spec})
		}
	}
	return out
}

func serviceIDSuggestions(services []domain.Service) []Suggestion {
	out := make([]Suggestion, 0, len(services))
	for _, s := range services {
		id := strconv.Itoa(s.ServiceID)
		out = append(out, Suggestion{
			Name:  fmt.Sprintf("%s - %s (%s)", id, s.CPU, s.Region),
			Value: id,
		})
	}
	return out
}
