package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
	"github.com/jhoicas/provision-audit-api/internal/infrastructure/export"
)

func sampleProvisions() []*entity.Provision {
	score := 8
	landmark := "Frente a la plaza"
	auditor := &entity.User{FirstName: "Maria", LastName: "Santos"}
	return []*entity.Provision{
		{
			ID:              "p-1",
			RequestNumber:   "REQ-202403000001",
			Status:          entity.StatusPassed,
			FirstName:       "Juan",
			LastName:        "Dela Cruz",
			AddressLine1:    "123 Rizal St",
			Province:        "Metro Manila",
			City:            "Quezon City",
			Barangay:        "Diliman",
			Landmark:        &landmark,
			Resource:        "TECH-01",
			Date:            time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			QualityScore:    &score,
			AssignedAuditor: auditor,
			CreatedAt:       time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:            "p-2",
			RequestNumber: "PLDT-20240301",
			Status:        entity.StatusPendingAssignment,
			FirstName:     "Ana",
			LastName:      "Reyes",
			AddressLine1:  "45 Mabini Ave",
			Province:      "Cebu",
			City:          "Cebu City",
			Barangay:      "Lahug",
			Resource:      "TECH-02",
			Date:          time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
			CreatedAt:     time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestCSVExporter(t *testing.T) {
	out, err := export.NewCSVExporter().Export(sampleProvisions())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "encabezado + dos filas")

	header := records[0]
	assert.Equal(t, "Request Number", header[0])
	assert.Equal(t, "Status", header[1])
	assert.Len(t, records[1], len(header), "cada fila con el mismo número de columnas")

	assert.Equal(t, "REQ-202403000001", records[1][0])
	assert.Equal(t, "PASSED", records[1][1])
	assert.Equal(t, "Maria Santos", records[1][indexOf(t, header, "Assigned Auditor")])
	assert.Equal(t, "8", records[1][indexOf(t, header, "Quality Score")])
	assert.Equal(t, "", records[2][indexOf(t, header, "Landmark")], "opcional nil queda vacío")
}

func TestCSVExporter_SinRegistros(t *testing.T) {
	out, err := export.NewCSVExporter().Export(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "solo encabezado")
}

func TestExcelExporter(t *testing.T) {
	out, err := export.NewExcelExporter().Export(sampleProvisions())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Provisions")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)

	assert.Equal(t, "Request Number", rows[0][0])
	assert.Equal(t, "REQ-202403000001", rows[1][0])
	assert.Equal(t, "PLDT-20240301", rows[2][0])
}

func TestXMLExporter(t *testing.T) {
	out, err := export.NewXMLExporter().Export(sampleProvisions())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("provisions")
	require.NotNil(t, root)
	assert.Equal(t, "2", root.SelectAttrValue("count", ""))

	items := root.SelectElements("provision")
	require.Len(t, items, 2)
	assert.Equal(t, "p-1", items[0].SelectAttrValue("id", ""))
	assert.Equal(t, "REQ-202403000001", items[0].SelectElement("RequestNumber").Text())
	assert.Nil(t, items[1].SelectElement("Landmark"), "elementos vacíos se omiten")
}

func TestContentTypes(t *testing.T) {
	assert.Equal(t, "text/csv", export.NewCSVExporter().ContentType())
	assert.Equal(t, "csv", export.NewCSVExporter().Extension())
	assert.Equal(t, "xlsx", export.NewExcelExporter().Extension())
	assert.Equal(t, "application/xml", export.NewXMLExporter().ContentType())
}

func indexOf(t *testing.T, header []string, name string) int {
	t.Helper()
	for i, h := range header {
		if h == name {
			return i
		}
	}
	t.Fatalf("columna %q no encontrada", name)
	return -1
}
