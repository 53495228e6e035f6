package export

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
)

// XMLExporter exporta a XML con un elemento <provision> por registro.
// Los nombres de elemento son los encabezados en PascalCase sin espacios.
type XMLExporter struct{}

// NewXMLExporter construye el exportador.
func NewXMLExporter() *XMLExporter { return &XMLExporter{} }

func (e *XMLExporter) ContentType() string { return "application/xml" }
func (e *XMLExporter) Extension() string   { return "xml" }

// Export genera el documento completo, indentado con dos espacios.
func (e *XMLExporter) Export(provisions []*entity.Provision) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("provisions")
	root.CreateAttr("count", fmt.Sprintf("%d", len(provisions)))

	names := elementNames()
	for _, p := range provisions {
		node := root.CreateElement("provision")
		node.CreateAttr("id", p.ID)
		for i, v := range rowValues(p) {
			if v == "" {
				continue
			}
			node.CreateElement(names[i]).SetText(v)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar xml: %w", err)
	}
	return out, nil
}

func elementNames() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = strings.ReplaceAll(c.header, " ", "")
	}
	return names
}
