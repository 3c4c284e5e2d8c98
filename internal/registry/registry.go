// Package registry owns every entity created during a conversion. Entities are
// keyed by legacy URI and iterated in registration order.
package registry

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
	"github.com/ajitpratap0/ontology-owl/internal/models"
)

// Stats holds entity counts.
type Stats struct {
	Classes             int
	ObjectProperties    int
	DataTypeProperties  int
	DependentProperties int
	PendingIcons        int
}

// Registry is the insertion-ordered entity store. It is not safe for concurrent use.
type Registry struct {
	classes            *orderedmap.OrderedMap[string, *models.Class]
	objectProperties   *orderedmap.OrderedMap[string, *models.ObjectProperty]
	dataTypeProperties *orderedmap.OrderedMap[string, *models.DataTypeProperty]

	// pendingIcons maps an icon URI to the legacy URIs of the classes waiting for its path.
	pendingIcons *orderedmap.OrderedMap[string, []string]
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		classes:            orderedmap.New[string, *models.Class](),
		objectProperties:   orderedmap.New[string, *models.ObjectProperty](),
		dataTypeProperties: orderedmap.New[string, *models.DataTypeProperty](),
		pendingIcons:       orderedmap.New[string, []string](),
	}
}

// AddClass registers c under its legacy URI.
func (r *Registry) AddClass(c *models.Class) error {
	if _, ok := r.classes.Get(c.URI); ok {
		return fmt.Errorf("%w: class %s", apperrors.ErrDuplicateEntity, c.URI)
	}
	r.classes.Set(c.URI, c)
	return nil
}

// Class returns the class registered under uri.
func (r *Registry) Class(uri string) (*models.Class, bool) {
	return r.classes.Get(uri)
}

// Classes returns all classes in registration order.
func (r *Registry) Classes() []*models.Class {
	out := make([]*models.Class, 0, r.classes.Len())
	for pair := r.classes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// AddObjectProperty registers p under its legacy URI.
func (r *Registry) AddObjectProperty(p *models.ObjectProperty) error {
	if _, ok := r.objectProperties.Get(p.URI); ok {
		return fmt.Errorf("%w: object property %s", apperrors.ErrDuplicateEntity, p.URI)
	}
	r.objectProperties.Set(p.URI, p)
	return nil
}

// ObjectProperty returns the object property registered under uri.
func (r *Registry) ObjectProperty(uri string) (*models.ObjectProperty, bool) {
	return r.objectProperties.Get(uri)
}

// ObjectProperties returns all object properties in registration order.
func (r *Registry) ObjectProperties() []*models.ObjectProperty {
	out := make([]*models.ObjectProperty, 0, r.objectProperties.Len())
	for pair := r.objectProperties.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// AddDataTypeProperty registers p under its legacy URI. Dependents travel with
// their parent and are not registered on their own.
func (r *Registry) AddDataTypeProperty(p *models.DataTypeProperty) error {
	if _, ok := r.dataTypeProperties.Get(p.URI); ok {
		return fmt.Errorf("%w: data type property %s", apperrors.ErrDuplicateEntity, p.URI)
	}
	r.dataTypeProperties.Set(p.URI, p)
	return nil
}

// DataTypeProperty returns the data-type property registered under uri.
func (r *Registry) DataTypeProperty(uri string) (*models.DataTypeProperty, bool) {
	return r.dataTypeProperties.Get(uri)
}

// DataTypeProperties returns all top-level data-type properties in registration order.
func (r *Registry) DataTypeProperties() []*models.DataTypeProperty {
	out := make([]*models.DataTypeProperty, 0, r.dataTypeProperties.Len())
	for pair := r.dataTypeProperties.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// AddPendingIcon records that the class with legacy URI classURI is waiting for
// the resource path of iconURI.
func (r *Registry) AddPendingIcon(iconURI, classURI string) {
	owners, _ := r.pendingIcons.Get(iconURI)
	r.pendingIcons.Set(iconURI, append(owners, classURI))
}

// PendingIcons returns the classes waiting for iconURI, in registration order.
// Classes missing from the registry are skipped.
func (r *Registry) PendingIcons(iconURI string) []*models.Class {
	owners, ok := r.pendingIcons.Get(iconURI)
	if !ok {
		return nil
	}
	out := make([]*models.Class, 0, len(owners))
	for _, uri := range owners {
		if c, found := r.classes.Get(uri); found {
			out = append(out, c)
		}
	}
	return out
}

// ConsumeIcon removes the pending entry for iconURI.
func (r *Registry) ConsumeIcon(iconURI string) {
	r.pendingIcons.Delete(iconURI)
}

// PendingIconURIs returns the icon URIs that still have waiting classes.
func (r *Registry) PendingIconURIs() []string {
	out := make([]string, 0, r.pendingIcons.Len())
	for pair := r.pendingIcons.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Stats returns entity counts.
func (r *Registry) Stats() Stats {
	s := Stats{
		Classes:            r.classes.Len(),
		ObjectProperties:   r.objectProperties.Len(),
		DataTypeProperties: r.dataTypeProperties.Len(),
		PendingIcons:       r.pendingIcons.Len(),
	}
	for pair := r.dataTypeProperties.Oldest(); pair != nil; pair = pair.Next() {
		s.DependentProperties += len(pair.Value.Dependents)
	}
	return s
}
