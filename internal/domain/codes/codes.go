// Package codes implementa la generación de identificadores secuenciales
// (servicio de dominio puro). Los códigos de materias primas y fórmulas se
// almacenan como enteros en texto ("1", "2", ...); los prefijos MP/F y el
// formato OF#### son transformaciones de presentación deterministas.
package codes

import (
	"fmt"
	"strconv"
	"strings"
)

// OrderNumberPrefix prefijo de los números de orden de fabricación.
const OrderNumberPrefix = "OF"

// Next devuelve el siguiente código secuencial: max(códigos)+1 como string.
// Un código no numérico o vacío cuenta como 0. Con lista vacía devuelve "1".
func Next(existing []string) string {
	max := 0
	for _, code := range existing {
		n, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil || n < 0 {
			n = 0
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// NextOrderNumber devuelve el siguiente número de orden, "OF" + secuencia de
// 4 dígitos con ceros a la izquierda. Se basa en el máximo visto y no en el
// conteo, de modo que borrar órdenes nunca produce números ambiguos.
func NextOrderNumber(existing []string) string {
	max := 0
	for _, number := range existing {
		suffix := strings.TrimPrefix(strings.TrimSpace(number), OrderNumberPrefix)
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", OrderNumberPrefix, max+1)
}

// FormatMaterialCode renderiza el código de materia prima con su prefijo: "MP3".
func FormatMaterialCode(code string) string {
	return "MP" + code
}

// FormatFormulaCode renderiza el código de fórmula con su prefijo: "F3".
func FormatFormulaCode(code string) string {
	return "F" + code
}
