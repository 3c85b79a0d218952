package assets

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribe_Precedence(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"explicit message wins", &LoadError{Message: "boom", StatusCode: 500, StatusText: "Internal"}, "boom"},
		{"http status", &LoadError{StatusCode: 404, StatusText: "Not Found"}, "HTTP 404: Not Found"},
		{"http status without reason", &LoadError{StatusCode: 404}, "HTTP 404: file not found"},
		{"nothing usable", &LoadError{}, GenericMessage},
		{"wrapped", fmt.Errorf("resolve: %w", &LoadError{StatusCode: 403, StatusText: "Forbidden"}), "HTTP 403: Forbidden"},
		{"plain error", errors.New("disk full"), "disk full"},
		{"empty plain error", errors.New(""), GenericMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Describe(tt.err))
		})
	}
	require.Empty(t, Describe(nil))
}

func TestBannerText(t *testing.T) {
	require.Equal(t, "Could not load the model. HTTP 404: Not Found",
		BannerText(&LoadError{StatusCode: 404, StatusText: "Not Found"}))
	require.Equal(t, "Could not load the model. unknown error while loading the file", BannerText(&LoadError{}))
}

func TestLoadError_IsHTTP(t *testing.T) {
	require.True(t, (&LoadError{StatusCode: 500}).IsHTTP())
	require.False(t, (&LoadError{StatusCode: 500, Message: "x"}).IsHTTP())
	require.False(t, (&LoadError{}).IsHTTP())
}
