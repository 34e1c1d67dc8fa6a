package sandbox

import (
	"log"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/zyedidia/generic/mapset"

	"ombrobox/pkg/core"
)

// maxMaterials keeps material ids addressable by the uint8 display buffer,
// which reserves 0 for empty cells.
const maxMaterials = 255

var (
	ErrUnknownMaterial   = eris.New("unknown material")
	ErrDuplicateMaterial = eris.New("duplicate material")
	ErrRegistryFrozen    = eris.New("registry already resolved")
	ErrRegistryFull      = eris.New("too many materials")
	ErrUnresolved        = eris.New("registry not resolved")
	ErrInvalidMaterial   = eris.New("invalid material")
	ErrMissingMovement   = eris.New("material has no movement scan orders")
)

// Registry is the ordered material table. Materials are registered by name
// first and cross references (thresholds, interactions, residues) are bound
// in a second pass by Resolve, so definitions may refer to materials that
// are registered later.
type Registry struct {
	materials []*Material
	byName    map[string]*Material
	resolved  bool
	logger    *log.Logger
}

// NewRegistry returns an empty registry. A nil logger silences resolution logs.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{byName: map[string]*Material{}, logger: logger}
}

// Register appends a material to the table.
func (r *Registry) Register(m *Material) error {
	if m == nil || m.Name == "" {
		return eris.Wrap(ErrInvalidMaterial, "material needs a name")
	}
	if r.resolved {
		return eris.Wrapf(ErrRegistryFrozen, "register %q", m.Name)
	}
	if _, ok := r.byName[m.Name]; ok {
		return eris.Wrapf(ErrDuplicateMaterial, "%q", m.Name)
	}
	if len(r.materials) >= maxMaterials {
		return eris.Wrapf(ErrRegistryFull, "register %q", m.Name)
	}
	m.id = len(r.materials)
	r.materials = append(r.materials, m)
	r.byName[m.Name] = m
	return nil
}

// Resolve binds every name reference and validates the table. All missing
// names are reported together.
func (r *Registry) Resolve() error {
	if r.resolved {
		return nil
	}
	missing := mapset.New[string]()
	lookup := func(owner, role, name string) *Material {
		if name == "" {
			return nil
		}
		target, ok := r.byName[name]
		if !ok {
			missing.Put(owner + " " + role + " -> " + name)
			return nil
		}
		r.logf("resolved %s %s -> %s", owner, role, name)
		return target
	}

	swatches := core.NewTable(0)
	for _, m := range r.materials {
		if m.Color == nil {
			return eris.Wrapf(ErrInvalidMaterial, "%q has no colour generator", m.Name)
		}
		if m.Density < 0 {
			return eris.Wrapf(ErrInvalidMaterial, "%q has negative density %d", m.Name, m.Density)
		}
		m.movement = m.Movement
		if m.movement == nil {
			m.movement = ScanOrders(m.Mobility)
		}
		if m.Mobility != Stationary && len(m.movement) == 0 {
			return eris.Wrapf(ErrMissingMovement, "%q (%s)", m.Name, m.Mobility)
		}
		for i, order := range m.movement {
			if len(order) == 0 {
				return eris.Wrapf(ErrMissingMovement, "%q scan order %d is empty", m.Name, i)
			}
		}
		if th := m.Thermal; th != nil {
			if th.Transfer < 0 {
				return eris.Wrapf(ErrInvalidMaterial, "%q has negative heat transfer %g", m.Name, th.Transfer)
			}
			if th.Upper != nil {
				th.Upper.target = lookup(m.Name, "upper threshold", th.Upper.Target)
			}
			if th.Lower != nil {
				th.Lower.target = lookup(m.Name, "lower threshold", th.Lower.Target)
			}
		}
		if len(m.Interactions) > 0 {
			m.interactions = make(map[*Material]*Material, len(m.Interactions))
			for other, result := range m.Interactions {
				from := lookup(m.Name, "interaction", other)
				to := lookup(m.Name, "interaction result", result)
				if from != nil && to != nil {
					m.interactions[from] = to
				}
			}
		}
		m.residue = lookup(m.Name, "residue", m.Residue)
		m.swatch = m.Color(swatches)
	}

	if missing.Size() > 0 {
		refs := make([]string, 0, missing.Size())
		missing.Each(func(ref string) { refs = append(refs, ref) })
		sort.Strings(refs)
		return eris.Wrapf(ErrUnknownMaterial, "%s", strings.Join(refs, "; "))
	}
	r.resolved = true
	return nil
}

// Resolved reports whether Resolve completed successfully.
func (r *Registry) Resolved() bool { return r.resolved }

// Len returns the number of registered materials.
func (r *Registry) Len() int { return len(r.materials) }

// At returns the material at the given menu index, nil when out of range.
func (r *Registry) At(i int) *Material {
	if i < 0 || i >= len(r.materials) {
		return nil
	}
	return r.materials[i]
}

// Materials returns the materials in registration order.
func (r *Registry) Materials() []*Material { return r.materials }

// Lookup finds a material by name.
func (r *Registry) Lookup(name string) (*Material, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// MustLookup is Lookup for names known to exist; it panics otherwise.
func (r *Registry) MustLookup(name string) *Material {
	m, ok := r.byName[name]
	if !ok {
		panic(eris.Wrapf(ErrUnknownMaterial, "%q", name))
	}
	return m
}

// Names lists material names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.materials))
	for i, m := range r.materials {
		names[i] = m.Name
	}
	return names
}

func (r *Registry) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
