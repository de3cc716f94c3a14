package element

import (
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/elements/pkg/schema"
)

var (
	// ErrConfig is wrapped by definition and registration errors.
	ErrConfig = schema.ErrConfig

	// ErrRender is wrapped by errors a Renderer returns.
	ErrRender = stderrors.New("renderer failed")
)

func renderError(err error) error {
	return fmt.Errorf("%w: %w", ErrRender, err)
}
