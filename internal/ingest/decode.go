package ingest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
	"github.com/ajitpratap0/ontology-owl/internal/models"
)

// errEmptyDocument is returned for input without a root element.
var errEmptyDocument = errors.New("document has no root element")

// Decode reads one XML document and returns it as a typed record chosen by
// its root element. Records are returned by value. Unknown roots return
// apperrors.ErrMalformedInput.
func Decode(r io.Reader) (models.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}

	kind := models.DocumentKind(root)
	if kind.IsIgnored() {
		return models.IgnoredDocument{Root: kind}, nil
	}

	switch kind {
	case models.KindObjectType:
		var doc models.ObjectTypeConfig
		err = unmarshal(data, &doc)
		return doc, err
	case models.KindLinkType:
		var doc models.LinkTypeConfig
		err = unmarshal(data, &doc)
		return doc, err
	case models.KindPropertyType:
		var doc models.PropertyTypeConfig
		err = unmarshal(data, &doc)
		return doc, err
	case models.KindLinkRelations:
		var doc models.LinkRelations
		err = unmarshal(data, &doc)
		return doc, err
	case models.KindImageInfos:
		var doc models.ImageInfos
		err = unmarshal(data, &doc)
		return doc, err
	case models.KindOntologyResource:
		var doc models.OntologyResourceConfig
		err = unmarshal(data, &doc)
		return doc, err
	default:
		return nil, fmt.Errorf("%w: invalid xml root node name %q", apperrors.ErrMalformedInput, root)
	}
}

func newDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

// rootElement returns the local name of the first start element.
func rootElement(data []byte) (string, error) {
	dec := newDecoder(data)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", errEmptyDocument
		}
		if err != nil {
			return "", fmt.Errorf("parsing xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func unmarshal(data []byte, v any) error {
	if err := newDecoder(data).Decode(v); err != nil {
		return fmt.Errorf("parsing xml: %w", err)
	}
	return nil
}
