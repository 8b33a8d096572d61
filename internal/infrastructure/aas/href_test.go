package aas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"bpa-inspection/internal/domain/entity"
)

func TestHostFromHref(t *testing.T) {
	tests := []struct {
		name    string
		href    string
		want    string
		wantErr bool
	}{
		{name: "shell endpoint", href: "http://192.168.0.10:8081/shells/abc", want: "192.168.0.10:8081"},
		{name: "no path", href: "https://aas.local:443", want: "aas.local:443"},
		{name: "no port", href: "http://aas.local/shells/abc", wantErr: true},
		{name: "no scheme", href: "aas.local:8081/shells", wantErr: true},
		{name: "empty", href: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HostFromHref(tt.href)
			if tt.wantErr {
				require.True(t, errors.Is(err, entity.ErrMalformedHref))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeID(t *testing.T) {
	require.Equal(t, "dXJuOmNhcjQyOnNtOnBsYW4=", EncodeID("urn:car42:sm:plan"))
}
