package models

import "strings"

// DocumentKind names the root element of an input document.
type DocumentKind string

const (
	KindObjectType       DocumentKind = "pt_object_type_config"
	KindLinkType         DocumentKind = "link_type_config"
	KindPropertyType     DocumentKind = "property_type_config"
	KindLinkRelations    DocumentKind = "link_relations"
	KindImageInfos       DocumentKind = "image_infos"
	KindOntologyResource DocumentKind = "ontology_resource_config"

	KindExportInfo      DocumentKind = "ontologyExportInfo"
	KindNodeDisplayType DocumentKind = "node_display_type_config"
	KindTypeGroup       DocumentKind = "type_group_config"
)

// IgnoredKinds are recognized document kinds that produce no entities.
var IgnoredKinds = []DocumentKind{
	KindExportInfo,
	KindNodeDisplayType,
	KindTypeGroup,
}

// IsIgnored returns true if documents of this kind are skipped on purpose.
func (k DocumentKind) IsIgnored() bool {
	for i := range IgnoredKinds {
		if k == IgnoredKinds[i] {
			return true
		}
	}
	return false
}

// Document is a decoded input document of a known kind.
type Document interface {
	Kind() DocumentKind
}

// Arg is one argument of a title or display formula. Exactly one of Property,
// Literal or Args is expected to be set; Args nests a component group.
type Arg struct {
	Property string `xml:"property"`
	Literal  string `xml:"literal"`
	Args     []Arg  `xml:"args>arg"`
}

// ObjectTypeConfig describes one class.
type ObjectTypeConfig struct {
	URI         string `xml:"uri"`
	DisplayName string `xml:"displayName"`
	ParentType  string `xml:"parentType"`
	Description string `xml:"description"`
	Display     struct {
		InfoIconURI string `xml:"infoIconUri"`
	} `xml:"display"`
	TitleArgs []Arg `xml:"title>args>arg"`
}

func (ObjectTypeConfig) Kind() DocumentKind { return KindObjectType }

// LinkDirection carries the label of one direction of an asymmetric link.
type LinkDirection struct {
	DisplayName string `xml:"displayName"`
}

// Asymmetric declares distinct labels for both directions of a link.
type Asymmetric struct {
	ParentToChild LinkDirection `xml:"parentToChild"`
	ChildToParent LinkDirection `xml:"childToParent"`
}

// LinkTypeConfig describes one object property and, when asymmetric, its inverse.
type LinkTypeConfig struct {
	URI         string       `xml:"uri"`
	DisplayName string       `xml:"displayName"`
	Asymmetric  []Asymmetric `xml:"asymmetric"`
}

func (LinkTypeConfig) Kind() DocumentKind { return KindLinkType }

// TypeSpec is the declared type of a property or component.
type TypeSpec struct {
	Text        string      `xml:",chardata"`
	Base        string      `xml:"base"`
	DisplayName string      `xml:"displayName"`
	Enumeration []EnumEntry `xml:"enumeration>entry"`
	Components  []Component `xml:"components>component"`
}

// BaseType returns the declared base type, falling back to the text of the
// type element itself when no base element is present.
func (t TypeSpec) BaseType() string {
	if t.Base != "" {
		return strings.TrimSpace(t.Base)
	}
	return strings.TrimSpace(t.Text)
}

// Component is one named part of a composite property.
type Component struct {
	URI         string   `xml:"uri"`
	DisplayName string   `xml:"displayName"`
	Type        TypeSpec `xml:"type"`
}

// PropertyTypeConfig describes one data-type property.
type PropertyTypeConfig struct {
	URI         string   `xml:"uri"`
	Description string   `xml:"description"`
	Type        TypeSpec `xml:"type"`
	DisplayArgs []Arg    `xml:"display>args>arg"`
}

func (PropertyTypeConfig) Kind() DocumentKind { return KindPropertyType }

// LinkRelation assigns a link's domain and range. It is consumed during link resolution.
type LinkRelation struct {
	URI1    string `xml:"uri1"`
	URI2    string `xml:"uri2"`
	LinkURI string `xml:"linkUri"`
}

// LinkRelations is the link-relations table.
type LinkRelations struct {
	Relations []LinkRelation `xml:"link_relation_config"`
}

func (LinkRelations) Kind() DocumentKind { return KindLinkRelations }

// ImageInfo associates an icon URI with a resource path.
type ImageInfo struct {
	URI  string `xml:"uri"`
	Path string `xml:"path"`
}

// ImageInfos is the image-info table.
type ImageInfos struct {
	Images []ImageInfo `xml:"image_info_config"`
}

func (ImageInfos) Kind() DocumentKind { return KindImageInfos }

// OntologyResourceConfig embeds a base64-encoded resource file.
type OntologyResourceConfig struct {
	Path     string `xml:"path"`
	Contents string `xml:"contents"`
}

func (OntologyResourceConfig) Kind() DocumentKind { return KindOntologyResource }

// IgnoredDocument stands in for a recognized kind that produces no output.
type IgnoredDocument struct {
	Root DocumentKind
}

func (d IgnoredDocument) Kind() DocumentKind { return d.Root }
