package codes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aromalab/aromalab-api/internal/domain/codes"
)

// ──────────────────────────────────────────────────────────────────────────────
// Next: códigos de materias primas y fórmulas
// ──────────────────────────────────────────────────────────────────────────────

// Con lista vacía, el primer código es "1".
func TestNext_ListaVacia(t *testing.T) {
	assert.Equal(t, "1", codes.Next(nil))
	assert.Equal(t, "1", codes.Next([]string{}))
}

// La secuencia es max+1, no conteo+1: borrar un código intermedio no
// reutiliza números.
func TestNext_MaxMasUnoTrasBorrado(t *testing.T) {
	// existían 1..5, se borraron 2 y 3
	assert.Equal(t, "6", codes.Next([]string{"1", "4", "5"}))
	// incluso borrando todo menos el máximo
	assert.Equal(t, "10", codes.Next([]string{"9"}))
}

// Los códigos no numéricos o negativos cuentan como 0 y no rompen la secuencia.
func TestNext_CodigosNoNumericos(t *testing.T) {
	assert.Equal(t, "1", codes.Next([]string{"abc", ""}))
	assert.Equal(t, "4", codes.Next([]string{"3", "xyz", "-7"}))
	assert.Equal(t, "3", codes.Next([]string{" 2 ", "legacy"}))
}

// ──────────────────────────────────────────────────────────────────────────────
// NextOrderNumber: números de orden de fabricación
// ──────────────────────────────────────────────────────────────────────────────

// El primero es OF0001, con padding de 4 dígitos.
func TestNextOrderNumber_Primero(t *testing.T) {
	assert.Equal(t, "OF0001", codes.NextOrderNumber(nil))
}

func TestNextOrderNumber_Padding(t *testing.T) {
	assert.Equal(t, "OF0010", codes.NextOrderNumber([]string{"OF0009"}))
	assert.Equal(t, "OF0100", codes.NextOrderNumber([]string{"OF0099"}))
	// más allá de 4 dígitos, %04d deja de rellenar pero sigue siendo max+1
	assert.Equal(t, "OF10000", codes.NextOrderNumber([]string{"OF9999"}))
}

// Basado en el máximo: huecos por órdenes borradas no reutilizan números.
func TestNextOrderNumber_MaxTrasBorrado(t *testing.T) {
	assert.Equal(t, "OF0008", codes.NextOrderNumber([]string{"OF0002", "OF0007", "OF0001"}))
}

// Números con sufijo no numérico se ignoran.
func TestNextOrderNumber_SufijosInvalidos(t *testing.T) {
	assert.Equal(t, "OF0003", codes.NextOrderNumber([]string{"OF0002", "OFabc", "XX12"}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Prefijos de presentación
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatCodes(t *testing.T) {
	assert.Equal(t, "MP3", codes.FormatMaterialCode("3"))
	assert.Equal(t, "F12", codes.FormatFormulaCode("12"))
}
