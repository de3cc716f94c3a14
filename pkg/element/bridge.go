package element

import (
	"log/slog"

	"github.com/vango-dev/elements/internal/errors"
)

// Handle is the opaque value a Renderer returns from Mount.
type Handle any

// Props is the complete prop bag handed to a Renderer.
type Props map[string]any

// Renderer is the UI library an element renders through.
type Renderer interface {
	// Mount renders into container and returns a handle for the live tree.
	Mount(container Container, props Props) (Handle, error)

	// Update re-renders the tree behind handle with props.
	Update(handle Handle, props Props) error

	// Unmount tears down the tree behind handle.
	Unmount(handle Handle) error
}

// RendererFuncs adapts three functions to the Renderer interface. A nil
// UpdateFunc or UnmountFunc is a no-op.
type RendererFuncs struct {
	MountFunc   func(container Container, props Props) (Handle, error)
	UpdateFunc  func(handle Handle, props Props) error
	UnmountFunc func(handle Handle) error
}

// Mount implements Renderer.
func (f RendererFuncs) Mount(container Container, props Props) (Handle, error) {
	if f.MountFunc == nil {
		return nil, nil
	}
	return f.MountFunc(container, props)
}

// Update implements Renderer.
func (f RendererFuncs) Update(handle Handle, props Props) error {
	if f.UpdateFunc == nil {
		return nil
	}
	return f.UpdateFunc(handle, props)
}

// Unmount implements Renderer.
func (f RendererFuncs) Unmount(handle Handle) error {
	if f.UnmountFunc == nil {
		return nil
	}
	return f.UnmountFunc(handle)
}

// renderBridge owns the single render handle of one element. Update is
// only forwarded between a successful Mount and the following Unmount.
type renderBridge struct {
	renderer Renderer
	logger   *slog.Logger
	tag      string

	handle  Handle
	mounted bool
}

func (b *renderBridge) mount(container Container, props Props) error {
	if b.mounted {
		return nil
	}
	h, err := b.renderer.Mount(container, props)
	if err != nil {
		b.logger.Error("mount failed", "tag", b.tag, "error", err)
		return errors.New("E220").WithDetailf("<%s>", b.tag).Wrap(renderError(err))
	}
	b.handle = h
	b.mounted = true
	b.logger.Debug("mount", "tag", b.tag, "props", len(props))
	return nil
}

func (b *renderBridge) update(props Props) error {
	if !b.mounted {
		return nil
	}
	if err := b.renderer.Update(b.handle, props); err != nil {
		b.logger.Error("update failed", "tag", b.tag, "error", err)
		return errors.New("E221").WithDetailf("<%s>", b.tag).Wrap(renderError(err))
	}
	b.logger.Debug("update", "tag", b.tag, "props", len(props))
	return nil
}

// unmount releases the handle before calling the renderer, so a failing
// Unmount never leaves a stale handle behind.
func (b *renderBridge) unmount() error {
	if !b.mounted {
		return nil
	}
	h := b.handle
	b.handle = nil
	b.mounted = false
	if err := b.renderer.Unmount(h); err != nil {
		b.logger.Error("unmount failed", "tag", b.tag, "error", err)
		return errors.New("E222").WithDetailf("<%s>", b.tag).Wrap(renderError(err))
	}
	b.logger.Debug("unmount", "tag", b.tag)
	return nil
}
