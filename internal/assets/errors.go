package assets

import (
	"errors"
	"fmt"
)

const (
	// GenericMessage is shown when a failure carries no usable description.
	GenericMessage = "unknown error while loading the file"
	// bannerPrefix starts every load failure shown to the user.
	bannerPrefix = "Could not load the model."
	// missingStatusText replaces an empty HTTP reason phrase.
	missingStatusText = "file not found"
)

// LoadError is a failure at the load boundary. Message, when set, is shown as is; otherwise an
// HTTP status (StatusCode != 0) is described; otherwise GenericMessage is used.
type LoadError struct {
	Message    string
	StatusCode int
	StatusText string
	Err        error
}

func (e *LoadError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode != 0:
		text := e.StatusText
		if text == "" {
			text = missingStatusText
		}
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, text)
	}
	return GenericMessage
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsHTTP reports whether the failure came from an HTTP status.
func (e *LoadError) IsHTTP() bool { return e.Message == "" && e.StatusCode != 0 }

// Describe turns any load failure into the text shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericMessage
}

// BannerText is the full error banner line for a load failure.
func BannerText(err error) string {
	return bannerPrefix + " " + Describe(err)
}
