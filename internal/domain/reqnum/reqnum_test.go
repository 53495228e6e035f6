package reqnum_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/provision-audit-api/internal/domain"
	"github.com/jhoicas/provision-audit-api/internal/domain/reqnum"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeSource implementa reqnum.SequenceSource con un valor fijo.
type fakeSource struct {
	latest string
	err    error
	prefix string // último prefijo consultado
}

func (f *fakeSource) LatestGeneratedRequestNumber(prefix string) (string, error) {
	f.prefix = prefix
	return f.latest, f.err
}

// marchOf2024 reloj fijo: 15 de marzo de 2024.
func marchOf2024() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

// Mes sin registros previos: la secuencia empieza en 000001.
func TestGenerate_MesVacioEmpiezaEnUno(t *testing.T) {
	src := &fakeSource{latest: ""}
	gen := reqnum.NewGeneratorAt(src, marchOf2024)

	got, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "REQ-202403000001", got,
		"sin registros previos el primer número del mes debe ser 000001")
	assert.Equal(t, "REQ-202403", src.prefix,
		"debe consultarse el prefijo del mes en curso")
}

// Con un número previo, el siguiente es secuencia+1 con padding de 6 dígitos.
func TestGenerate_IncrementaSecuencia(t *testing.T) {
	src := &fakeSource{latest: "REQ-202403000041"}
	gen := reqnum.NewGeneratorAt(src, marchOf2024)

	got, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "REQ-202403000042", got)
}

// Generaciones consecutivas dentro del mismo mes crecen estrictamente de uno
// en uno a partir de 000001.
func TestGenerate_MonotoniaDentroDelMes(t *testing.T) {
	src := &fakeSource{latest: ""}
	gen := reqnum.NewGeneratorAt(src, marchOf2024)

	expected := []string{
		"REQ-202403000001",
		"REQ-202403000002",
		"REQ-202403000003",
	}
	for _, want := range expected {
		got, err := gen.Generate()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		src.latest = got // simular que el Store persistió el número
	}
}

// El mes forma parte del prefijo: en otro mes la secuencia reinicia.
func TestGenerate_PrefijoCambiaConElMes(t *testing.T) {
	src := &fakeSource{latest: ""}
	abril := func() time.Time { return time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC) }
	gen := reqnum.NewGeneratorAt(src, abril)

	got, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "REQ-202404000001", got)
}

// Los errores del Store se propagan envueltos, sin enmascarar.
func TestGenerate_PropagaErrorDelStore(t *testing.T) {
	storeErr := errors.New("conexión perdida")
	src := &fakeSource{err: storeErr}
	gen := reqnum.NewGeneratorAt(src, marchOf2024)

	_, err := gen.Generate()
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

// Un "último número" que no termina en dígitos es un error, no un pánico.
func TestGenerate_UltimoNumeroMalformado(t *testing.T) {
	src := &fakeSource{latest: "REQ-202403ABCDEF"}
	gen := reqnum.NewGeneratorAt(src, marchOf2024)

	_, err := gen.Generate()
	assert.Error(t, err, "un sufijo no numérico debe reportarse como error")
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateManual
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateManual_FormatosAceptados(t *testing.T) {
	valid := []string{
		"REQ-123456",         // REQ- + 6 dígitos
		"REQ-123456789012",   // REQ- + 12 dígitos
		"AB-1",               // letras-guion-dígitos
		"WORKORDER-999999",   // 9 letras + 6 dígitos
		"ABC",                // alfanumérico 3-20
		"PLDT2024X",          //
		"A1B2-C3D4-E5",       // alfanumérico + guiones, 5-25
	}
	for _, rn := range valid {
		assert.NoError(t, reqnum.ValidateManual(rn), "debe aceptarse %q", rn)
	}
}

func TestValidateManual_FormatosRechazados(t *testing.T) {
	invalid := []string{
		"",
		"req-123456",          // minúsculas
		"REQ 123456",          // espacio en lugar de guion
		"AB",                  // demasiado corto para todos los formatos
		"REQ_123456",          // separador inválido
		"hello world",         // espacios y minúsculas
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ123", // más de 25 caracteres
	}
	for _, rn := range invalid {
		err := reqnum.ValidateManual(rn)
		require.Error(t, err, "debe rechazarse %q", rn)
		assert.ErrorIs(t, err, domain.ErrInvalidRequestNumber)
	}
}

// Validar dos veces el mismo string produce siempre el mismo resultado
// (función pura, sin estado oculto).
func TestValidateManual_Idempotente(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.NoError(t, reqnum.ValidateManual("REQ-202403000001"))
		assert.Error(t, reqnum.ValidateManual("no-valido"))
	}
}
