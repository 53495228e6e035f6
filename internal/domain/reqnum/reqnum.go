// Package reqnum implementa la generación y validación de números de
// solicitud (request numbers) de aprovisionamiento.
//
// Formato generado: REQ-{YYYY}{MM}{secuencia de 6 dígitos}, donde la
// secuencia es la más alta entre los números NO manuales del mes en curso
// más uno (empieza en 1 si no hay ninguno).
//
// La generación es leer-el-último-y-sumar-uno sin reserva atómica: dos
// llamadas concurrentes en el mismo mes pueden calcular la misma secuencia.
// El respaldo es la restricción de unicidad de request_number en el Store,
// que el caller debe tratar como conflicto reintentable (domain.ErrDuplicate).
package reqnum

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/provision-audit-api/internal/domain"
)

// sequenceWidth ancho del sufijo numérico en números generados.
const sequenceWidth = 6

// SequenceSource es lo único que el generador necesita del Store: el número
// generado (no manual) más alto con el prefijo dado, o "" si no existe.
type SequenceSource interface {
	LatestGeneratedRequestNumber(prefix string) (string, error)
}

// Generator produce request numbers únicos y ordenables por mes.
type Generator struct {
	source SequenceSource
	now    func() time.Time
}

// NewGenerator construye el generador sobre la fuente de secuencias.
func NewGenerator(source SequenceSource) *Generator {
	return &Generator{source: source, now: time.Now}
}

// NewGeneratorAt variante con reloj inyectable (tests).
func NewGeneratorAt(source SequenceSource, now func() time.Time) *Generator {
	return &Generator{source: source, now: now}
}

// MonthPrefix devuelve el prefijo REQ-{YYYY}{MM} para el instante dado.
func MonthPrefix(t time.Time) string {
	return fmt.Sprintf("REQ-%04d%02d", t.Year(), int(t.Month()))
}

// Generate calcula el siguiente request number del mes en curso.
func (g *Generator) Generate() (string, error) {
	prefix := MonthPrefix(g.now())
	latest, err := g.source.LatestGeneratedRequestNumber(prefix)
	if err != nil {
		return "", fmt.Errorf("reqnum: consultar último número: %w", err)
	}
	seq := 1
	if latest != "" {
		last, err := sequenceOf(latest, prefix)
		if err != nil {
			return "", err
		}
		seq = last + 1
	}
	return fmt.Sprintf("%s%0*d", prefix, sequenceWidth, seq), nil
}

// sequenceOf extrae la secuencia de un número generado con el prefijo dado.
func sequenceOf(requestNumber, prefix string) (int, error) {
	suffix := strings.TrimPrefix(requestNumber, prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("reqnum: número generado malformado %q: %w", requestNumber, err)
	}
	return n, nil
}

// Formatos aceptados para números manuales. Basta con que coincida uno:
//
//	REQ- seguido de 6 a 12 dígitos
//	2–10 letras mayúsculas, guion, 1–12 dígitos
//	3–20 caracteres alfanuméricos en mayúsculas
//	5–25 caracteres alfanuméricos en mayúsculas o guion
var manualFormats = []*regexp.Regexp{
	regexp.MustCompile(`^REQ-[0-9]{6,12}$`),
	regexp.MustCompile(`^[A-Z]{2,10}-[0-9]{1,12}$`),
	regexp.MustCompile(`^[A-Z0-9]{3,20}$`),
	regexp.MustCompile(`^[A-Z0-9-]{5,25}$`),
}

// ValidateManual valida el formato de un request number suministrado por el
// operador. Función pura: el mismo string siempre produce el mismo resultado.
// Devuelve domain.ErrInvalidRequestNumber si no coincide con ningún formato.
func ValidateManual(requestNumber string) error {
	for _, re := range manualFormats {
		if re.MatchString(requestNumber) {
			return nil
		}
	}
	return domain.ErrInvalidRequestNumber
}
