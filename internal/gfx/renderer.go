// Package gfx contains the renderer interface and its Vulkan implementation:
// device selection, swapchain management, the fixed triangle pipeline and
// the per-frame submit/present loop.
package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
)

// Renderer draws into a window owned by the caller.
type Renderer interface {
	// Initialize acquires every GPU resource needed to draw into window.
	Initialize(window *sdl.Window) error

	// Draw renders and presents one frame.
	Draw() error

	// Resize tells the renderer the drawable size changed. A zero size
	// suspends drawing until the next non-zero resize.
	Resize(width, height int)

	// Destroy releases everything Initialize acquired. It is safe to call
	// after a failed Initialize.
	Destroy()
}

// Options configures a VulkanRenderer.
type Options struct {
	ApplicationName string
	Validation      bool
	VSync           bool
	ClearColor      mgl32.Vec4

	// PipelineCachePath is where pipeline cache data is loaded from and
	// saved to. Empty disables persistence.
	PipelineCachePath string
}
