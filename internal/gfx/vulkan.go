package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"golang.org/x/sync/errgroup"
)

// VulkanRenderer renders one hardcoded triangle every frame.
type VulkanRenderer struct {
	opts   Options
	log    logrus.FieldLogger
	window *sdl.Window

	globalDriver   core1_0.GlobalDriver
	instanceDriver core1_0.CoreInstanceDriver
	deviceDriver   core1_0.CoreDeviceDriver

	debugDriver      ext_debug_utils.ExtensionDriver
	debugMessenger   ext_debug_utils.DebugUtilsMessenger
	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface

	physicalDevice core1_0.PhysicalDevice
	device         *deviceCandidate
	queueFamilies  queueFamilyIndices
	graphicsQueue  core1_0.Queue
	presentQueue   core1_0.Queue

	swapchainExtension    khr_swapchain.ExtensionDriver
	swapchain             khr_swapchain.Swapchain
	swapchainImages       []core1_0.Image
	swapchainImageFormat  core1_0.Format
	swapchainExtent       core1_0.Extent2D
	swapchainImageViews   []core1_0.ImageView
	swapchainFramebuffers []core1_0.Framebuffer

	renderPass       core1_0.RenderPass
	pipelineLayout   core1_0.PipelineLayout
	graphicsPipeline core1_0.Pipeline
	pipelineCache    core1_0.PipelineCache
	shaderCode       []uint32

	commandPool    core1_0.CommandPool
	commandBuffers []core1_0.CommandBuffer

	imageAvailableSemaphore core1_0.Semaphore
	renderFinishedSemaphore core1_0.Semaphore
	inFlightFence           core1_0.Fence

	resized   bool
	suspended bool

	// drawable reports the drawable area in pixels. Nil means ask the window.
	drawable func() (width, height int)
}

var _ Renderer = (*VulkanRenderer)(nil)

// NewVulkanRenderer returns an uninitialized renderer.
func NewVulkanRenderer(opts Options, log logrus.FieldLogger) *VulkanRenderer {
	if opts.ApplicationName == "" {
		opts.ApplicationName = "VkPlayground"
	}
	return &VulkanRenderer{
		opts: opts,
		log:  log,
	}
}

type setupStep struct {
	name string
	run  func() error
}

// Initialize runs the setup chain. Each step depends on the ones before it;
// the first failure stops the chain and is returned wrapped with the step
// name. Shader compilation runs alongside the device steps and is joined
// before the pipeline is built.
func (r *VulkanRenderer) Initialize(window *sdl.Window) error {
	r.window = window

	var shaders errgroup.Group
	shaders.Go(func() error {
		code, err := compileShader(triangleShaderSource)
		if err != nil {
			return err
		}
		r.shaderCode = code
		return nil
	})

	steps := []setupStep{
		{"create driver", r.createDriver},
		{"create instance", r.createInstance},
		{"setup debug messenger", r.setupDebugMessenger},
		{"create surface", r.createSurface},
		{"pick physical device", r.pickPhysicalDevice},
		{"create logical device", r.createLogicalDevice},
		{"create swapchain", r.createSwapchain},
		{"create image views", r.createImageViews},
		{"create render pass", r.createRenderPass},
		{"compile shaders", shaders.Wait},
		{"create pipeline cache", r.createPipelineCache},
		{"create graphics pipeline", r.createGraphicsPipeline},
		{"create framebuffers", r.createFramebuffers},
		{"create command pool", r.createCommandPool},
		{"create command buffers", r.createCommandBuffers},
		{"create sync objects", r.createSyncObjects},
	}

	if err := r.runSteps(steps); err != nil {
		_ = shaders.Wait()
		return err
	}

	r.log.Info("Vulkan renderer initialized")
	return nil
}

func (r *VulkanRenderer) runSteps(steps []setupStep) error {
	for _, step := range steps {
		if err := step.run(); err != nil {
			return errors.Wrap(err, step.name)
		}
		r.log.Debugf("%s: done", step.name)
	}
	return nil
}

func (r *VulkanRenderer) drawableSize() (width, height int) {
	if r.drawable != nil {
		return r.drawable()
	}
	if r.window == nil {
		return 0, 0
	}
	w, h := r.window.VulkanGetDrawableSize()
	return int(w), int(h)
}

func (r *VulkanRenderer) createDriver() error {
	var err error
	r.globalDriver, err = core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	return err
}

// Destroy tears down in reverse creation order. Handles that were never
// created are skipped.
func (r *VulkanRenderer) Destroy() {
	if r.deviceDriver != nil {
		if _, err := r.deviceDriver.DeviceWaitIdle(); err != nil {
			r.log.WithError(err).Warn("wait for device idle")
		}
	}

	// Destroying the pool frees its command buffers.
	if r.commandPool.Initialized() {
		r.deviceDriver.DestroyCommandPool(r.commandPool, nil)
		r.commandPool = core1_0.CommandPool{}
		r.commandBuffers = nil
	}

	if r.inFlightFence.Initialized() {
		r.deviceDriver.DestroyFence(r.inFlightFence, nil)
		r.inFlightFence = core1_0.Fence{}
	}

	if r.renderFinishedSemaphore.Initialized() {
		r.deviceDriver.DestroySemaphore(r.renderFinishedSemaphore, nil)
		r.renderFinishedSemaphore = core1_0.Semaphore{}
	}

	if r.imageAvailableSemaphore.Initialized() {
		r.deviceDriver.DestroySemaphore(r.imageAvailableSemaphore, nil)
		r.imageAvailableSemaphore = core1_0.Semaphore{}
	}

	r.cleanupSwapchain()

	r.destroyPipelineCache()

	if r.deviceDriver != nil {
		r.deviceDriver.DestroyDevice(nil)
		r.deviceDriver = nil
	}

	if r.debugMessenger.Initialized() {
		r.debugDriver.DestroyDebugUtilsMessenger(r.debugMessenger, nil)
		r.debugMessenger = ext_debug_utils.DebugUtilsMessenger{}
	}

	if r.surface.Initialized() {
		r.surfaceExtension.DestroySurface(r.surface, nil)
		r.surface = khr_surface.Surface{}
	}

	if r.instanceDriver != nil {
		r.instanceDriver.DestroyInstance(nil)
		r.instanceDriver = nil
	}
}
