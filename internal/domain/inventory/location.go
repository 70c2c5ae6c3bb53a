package inventory

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dvintimilla/andina-api/internal/domain"
)

// Ubicaciones canónicas. El matching por texto libre ("contiene 'ecuador'")
// fue fuente histórica de errores de reconciliación: aquí el conjunto es
// cerrado y se valida al escribir, nunca al leer.
const (
	LocationOrigin      = "bodega-miami"   // bodega en país de origen
	LocationDestination = "bodega-ecuador" // bodega en país destino

	consignmentPrefix = "consignacion:"
)

// alias conocidos (ya normalizados: minúsculas, sin tildes) -> canónico.
var locationAliases = map[string]string{
	"bodega-miami":   LocationOrigin,
	"bodega miami":   LocationOrigin,
	"miami":          LocationOrigin,
	"bodega origen":  LocationOrigin,
	"origen":         LocationOrigin,
	"bodega-ecuador": LocationDestination,
	"bodega ecuador": LocationDestination,
	"ecuador":        LocationDestination,
	"bodega destino": LocationDestination,
	"destino":        LocationDestination,
}

// foldTransformer elimina marcas diacríticas: NFD, quita combining marks, NFC.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize baja a minúsculas, quita tildes y colapsa espacios.
func normalize(raw string) string {
	folded, _, err := transform.String(foldTransformer, raw)
	if err != nil {
		folded = raw
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), " ")
}

// Canonical resuelve un nombre de ubicación de texto libre a su forma
// canónica. Devuelve ErrUnknownLocation si el nombre no pertenece al conjunto
// cerrado de bodegas ni es una ubicación de consignación.
func Canonical(raw string) (string, error) {
	n := normalize(raw)
	if n == "" {
		return "", fmt.Errorf("%w: ubicación vacía", domain.ErrUnknownLocation)
	}
	if canonical, ok := locationAliases[n]; ok {
		return canonical, nil
	}
	if sellerID, ok := strings.CutPrefix(n, consignmentPrefix); ok {
		sellerID = strings.TrimSpace(sellerID)
		if sellerID == "" {
			return "", fmt.Errorf("%w: consignación sin revendedor", domain.ErrUnknownLocation)
		}
		return consignmentPrefix + sellerID, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownLocation, raw)
}

// ConsignmentLocation devuelve la ubicación canónica de consignación de un
// revendedor.
func ConsignmentLocation(sellerID string) string {
	return consignmentPrefix + strings.ToLower(strings.TrimSpace(sellerID))
}

// ConsignmentSeller extrae el revendedor de una ubicación de consignación.
func ConsignmentSeller(location string) (string, bool) {
	return strings.CutPrefix(location, consignmentPrefix)
}

// IsWarehouse indica si la ubicación canónica es una bodega física (no
// consignación).
func IsWarehouse(location string) bool {
	return location == LocationOrigin || location == LocationDestination
}
