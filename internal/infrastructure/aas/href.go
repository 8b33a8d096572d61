package aas

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"bpa-inspection/internal/domain/entity"
)

// HostFromHref выделяет host:port из href конечной точки оболочки.
// Ожидается вид scheme://host:port/...
func HostFromHref(href string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("href %q: %v: %w", href, err, entity.ErrMalformedHref)
	}
	if u.Scheme == "" || u.Hostname() == "" || u.Port() == "" {
		return "", fmt.Errorf("href %q: %w", href, entity.ErrMalformedHref)
	}
	return u.Host, nil
}

// EncodeID кодирует идентификатор подмодели для пути запроса.
func EncodeID(id string) string {
	return base64.StdEncoding.EncodeToString([]byte(id))
}

func submodelsURL(host string) string {
	return fmt.Sprintf("http://%s/submodels?encodedCursor=string&decodedCursor=string&level=deep&extent=withoutBlobValue", host)
}

func attachmentURL(host, submodelID, element string) string {
	return fmt.Sprintf("http://%s/submodels/%s/submodel-elements/%s/attachment", host, submodelID, element)
}
