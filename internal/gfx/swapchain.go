package gfx

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkplayground/vkplayground/internal/rating"
)

type swapchainSupport struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

func querySwapchainSupport(surfaceExtension khr_surface.ExtensionDriver, surface khr_surface.Surface, device core1_0.PhysicalDevice) (swapchainSupport, error) {
	var details swapchainSupport
	var err error

	details.Capabilities, _, err = surfaceExtension.GetPhysicalDeviceSurfaceCapabilities(surface, device)
	if err != nil {
		return details, err
	}

	details.Formats, _, err = surfaceExtension.GetPhysicalDeviceSurfaceFormats(surface, device)
	if err != nil {
		return details, err
	}

	details.PresentModes, _, err = surfaceExtension.GetPhysicalDeviceSurfacePresentModes(surface, device)
	return details, err
}

func rateSurfaceFormat(format khr_surface.SurfaceFormat) float32 {
	if format.ColorSpace != khr_surface.ColorSpaceSRGBNonlinear {
		return 0
	}
	switch format.Format {
	case core1_0.FormatB8G8R8A8SRGB:
		return 100
	case core1_0.FormatB8G8R8A8UnsignedNormalized:
		return 50
	}
	return 0
}

// chooseSurfaceFormat falls back to the first format when none is preferred.
func chooseSurfaceFormat(formats []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	best, _ := rating.Best(formats, rateSurfaceFormat)
	return best.Element
}

func presentModeRater(vsync bool) func(khr_surface.PresentMode) float32 {
	return func(mode khr_surface.PresentMode) float32 {
		if vsync {
			if mode == khr_surface.PresentModeFIFO {
				return 100
			}
			return 0
		}

		switch mode {
		case khr_surface.PresentModeMailbox:
			return 100
		case khr_surface.PresentModeImmediate:
			return 50
		case khr_surface.PresentModeFIFO:
			return 10
		}
		return 0
	}
}

// choosePresentMode returns FIFO, which every driver must support, when
// nothing better is on offer.
func choosePresentMode(modes []khr_surface.PresentMode, vsync bool) khr_surface.PresentMode {
	best, ok := rating.Best(modes, presentModeRater(vsync))
	if !ok || best.Score <= 0 {
		return khr_surface.PresentModeFIFO
	}
	return best.Element
}

// chooseExtent uses the surface's current extent unless the surface lets the
// swapchain decide, in which case the drawable size is clamped to the
// supported range.
func chooseExtent(capabilities *khr_surface.SurfaceCapabilities, width, height int) core1_0.Extent2D {
	if capabilities.CurrentExtent.Width != -1 {
		return capabilities.CurrentExtent
	}

	if width < capabilities.MinImageExtent.Width {
		width = capabilities.MinImageExtent.Width
	}
	if width > capabilities.MaxImageExtent.Width {
		width = capabilities.MaxImageExtent.Width
	}
	if height < capabilities.MinImageExtent.Height {
		height = capabilities.MinImageExtent.Height
	}
	if height > capabilities.MaxImageExtent.Height {
		height = capabilities.MaxImageExtent.Height
	}

	return core1_0.Extent2D{Width: width, Height: height}
}

// chooseImageCount asks for one image more than the minimum. A maximum of
// zero means unbounded.
func chooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

func (r *VulkanRenderer) createSwapchain() error {
	if r.swapchainExtension == nil {
		r.swapchainExtension = khr_swapchain.CreateExtensionDriverFromCoreDriver(r.deviceDriver)
	}

	support, err := querySwapchainSupport(r.surfaceExtension, r.surface, r.physicalDevice)
	if err != nil {
		return err
	}

	surfaceFormat := chooseSurfaceFormat(support.Formats)
	presentMode := choosePresentMode(support.PresentModes, r.opts.VSync)
	width, height := r.drawableSize()
	extent := chooseExtent(support.Capabilities, width, height)
	imageCount := chooseImageCount(support.Capabilities)

	sharingMode := core1_0.SharingModeExclusive
	var queueFamilyIndices []int
	if !r.queueFamilies.Shared() {
		sharingMode = core1_0.SharingModeConcurrent
		queueFamilyIndices = r.queueFamilies.Unique()
	}

	swapchain, _, err := r.swapchainExtension.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: r.surface,

		MinImageCount:    imageCount,
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: queueFamilyIndices,

		PreTransform:   support.Capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    presentMode,
		Clipped:        true,
	})
	if err != nil {
		return err
	}

	r.swapchain = swapchain
	r.swapchainExtent = extent
	r.swapchainImageFormat = surfaceFormat.Format
	r.log.Debugf("swapchain %dx%d, %d images requested, format %v, present mode %v",
		extent.Width, extent.Height, imageCount, surfaceFormat.Format, presentMode)
	return nil
}

func (r *VulkanRenderer) createImageViews() error {
	images, _, err := r.swapchainExtension.GetSwapchainImages(r.swapchain)
	if err != nil {
		return err
	}
	r.swapchainImages = images

	for _, image := range images {
		view, _, err := r.deviceDriver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   r.swapchainImageFormat,
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			return err
		}

		r.swapchainImageViews = append(r.swapchainImageViews, view)
	}

	return nil
}

// cleanupSwapchain destroys everything that depends on the swapchain, the
// swapchain included.
func (r *VulkanRenderer) cleanupSwapchain() {
	for _, framebuffer := range r.swapchainFramebuffers {
		r.deviceDriver.DestroyFramebuffer(framebuffer, nil)
	}
	r.swapchainFramebuffers = nil

	if len(r.commandBuffers) > 0 {
		r.deviceDriver.FreeCommandBuffers(r.commandBuffers...)
		r.commandBuffers = nil
	}

	if r.graphicsPipeline.Initialized() {
		r.deviceDriver.DestroyPipeline(r.graphicsPipeline, nil)
		r.graphicsPipeline = core1_0.Pipeline{}
	}

	if r.pipelineLayout.Initialized() {
		r.deviceDriver.DestroyPipelineLayout(r.pipelineLayout, nil)
		r.pipelineLayout = core1_0.PipelineLayout{}
	}

	if r.renderPass.Initialized() {
		r.deviceDriver.DestroyRenderPass(r.renderPass, nil)
		r.renderPass = core1_0.RenderPass{}
	}

	for _, imageView := range r.swapchainImageViews {
		r.deviceDriver.DestroyImageView(imageView, nil)
	}
	r.swapchainImageViews = nil
	r.swapchainImages = nil

	if r.swapchain.Initialized() {
		r.swapchainExtension.DestroySwapchain(r.swapchain, nil)
		r.swapchain = khr_swapchain.Swapchain{}
	}
}

// recreateSwapchain rebuilds the swapchain and everything hanging off it.
// It does nothing while the window has no drawable area.
func (r *VulkanRenderer) recreateSwapchain() error {
	w, h := r.drawableSize()
	if w <= 0 || h <= 0 {
		r.suspended = true
		return nil
	}

	if _, err := r.deviceDriver.DeviceWaitIdle(); err != nil {
		return err
	}

	r.cleanupSwapchain()

	steps := []setupStep{
		{"create swapchain", r.createSwapchain},
		{"create image views", r.createImageViews},
		{"create render pass", r.createRenderPass},
		{"create graphics pipeline", r.createGraphicsPipeline},
		{"create framebuffers", r.createFramebuffers},
		{"create command buffers", r.createCommandBuffers},
	}
	if err := r.runSteps(steps); err != nil {
		return err
	}

	r.resized = false
	r.log.Debugf("swapchain recreated at %dx%d", r.swapchainExtent.Width, r.swapchainExtent.Height)
	return nil
}
