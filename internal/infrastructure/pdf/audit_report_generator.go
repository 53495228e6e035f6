// Package pdf implementa la generación del reporte de auditoría de un
// aprovisionamiento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Request Number + Estado  │  Fecha de despacho       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + dirección + contacto                     │
//	│  SERVICIO: segmento / zona / exchange / equipo              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AUDITORÍA: auditor asignado + score + notas                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el request number + fecha de generación     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// AuditReportGenerator implementa usecase.AuditReportGenerator usando Maroto v2.
type AuditReportGenerator struct{}

// NewAuditReportGenerator construye el generador.
func NewAuditReportGenerator() *AuditReportGenerator { return &AuditReportGenerator{} }

// GenerateAuditReport genera el PDF del reporte y devuelve sus bytes.
func (g *AuditReportGenerator) GenerateAuditReport(
	_ context.Context,
	p *entity.Provision,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Auditoría "+p.RequestNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(p))
	m.AddRows(servicioRows(p)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(auditoriaRows(p)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(p)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: request number + estado (izq) y fecha de despacho (der).
func headerRow(p *entity.Provision) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(p.RequestNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+p.Status, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE AUDITORÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+p.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del cliente.
func clienteRow(p *entity.Provision) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Cuenta: %s",
				p.FullAddress(),
				ptrOr(p.ContactPhone, "—"),
				accountOr(p.AccountNumber, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// servicioRows: pares etiqueta/valor con los datos técnicos del servicio.
func servicioRows(p *entity.Provision) []core.Row {
	pairs := [][2]string{
		{"Recurso", p.Resource},
		{"Tipo de actividad", ptrOr(p.ActivityType, "—")},
		{"Segmento", ptrOr(p.MarketSegment, "—")},
		{"Zona", ptrOr(p.Zone, "—")},
		{"Exchange", ptrOr(p.Exchange, "—")},
		{"Tipo NE", ptrOr(p.NEType, "—")},
		{"Equipo", ptrOr(p.HomeServiceDevice, "—")},
		{"Paquete", ptrOr(p.PackageType, "—")},
	}

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	// Dos pares por fila.
	for i := 0; i < len(pairs); i += 2 {
		cols := []core.Col{pairCol(pairs[i][0], pairs[i][1])}
		if i+1 < len(pairs) {
			cols = append(cols, pairCol(pairs[i+1][0], pairs[i+1][1]))
		}
		rows = append(rows, row.New(6).Add(cols...))
	}
	return rows
}

func pairCol(label, value string) core.Col {
	return col.New(6).Add(
		text.New(label+":", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		}),
		text.New(value, props.Text{Size: 8, Top: 1, Left: 34, Color: colorGray}),
	)
}

// auditoriaRows: auditor asignado, score y notas.
func auditoriaRows(p *entity.Provision) []core.Row {
	auditor := "Sin asignar"
	if p.AssignedAuditor != nil {
		auditor = p.AssignedAuditor.FirstName + " " + p.AssignedAuditor.LastName
	}
	score := "—"
	if p.QualityScore != nil {
		score = strconv.Itoa(*p.QualityScore) + " / 10"
	}

	rows := []core.Row{
		row.New(12).Add(
			col.New(6).Add(
				text.New("AUDITOR ASIGNADO", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(auditor, props.Text{Size: 9, Top: 7}),
			),
			col.New(6).Add(
				text.New("PUNTAJE DE CALIDAD", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(score, props.Text{Style: fontstyle.Bold, Size: 11, Top: 7}),
			),
		),
	}

	if notes := ptrOr(p.AuditNotes, ""); notes != "" {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("Notas de auditoría:", props.Text{
					Style: fontstyle.Bold, Size: 7, Top: 1,
				}),
			)),
		)
		for _, chunk := range splitEvery(notes, 110) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}
	}
	return rows
}

// footerRows: QR con el request number + fecha de generación.
func footerRows(p *entity.Provision) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(p.RequestNumber, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para ubicar\nesta solicitud en el sistema.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
					Size: 7, Top: 22, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func ptrOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

func accountOr(n *int64, fallback string) string {
	if n == nil {
		return fallback
	}
	return strconv.FormatInt(*n, 10)
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
