package orchestration

import (
	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/provisioning"
)

// Preflight validates cfg and resolves the image reference. It makes no
// remote calls; every failure is a configuration error.
func Preflight(cfg *config.Config) (string, error) {
	if cfg == nil {
		return "", &provisioning.ConfigurationError{Reason: "no configuration loaded"}
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	img := cfg.ImageRef()
	if img == "" {
		return "", &provisioning.ConfigurationError{
			Field:  "image",
			Reason: "image reference is unresolved: set image.url or image.repository and image.name",
		}
	}
	return img, nil
}
