package gfx

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

var validationLayers = []string{"VK_LAYER_KHRONOS_validation"}

// instanceExtensions returns the instance extensions to enable: the ones the
// window needs, debug utils when validating, and portability enumeration
// when the loader offers it.
func instanceExtensions(windowExtensions []string, available map[string]bool, validation bool) (enabled []string, portability bool, err error) {
	for _, ext := range windowExtensions {
		if !available[ext] {
			return nil, false, errors.Newf("missing window extension %s", ext)
		}
		enabled = append(enabled, ext)
	}

	if validation {
		enabled = append(enabled, ext_debug_utils.ExtensionName)
	}

	if available[khr_portability_enumeration.ExtensionName] {
		enabled = append(enabled, khr_portability_enumeration.ExtensionName)
		portability = true
	}

	return enabled, portability, nil
}

// missingNames returns the names in want that are absent from available,
// sorted.
func missingNames(want []string, available map[string]bool) []string {
	var missing []string
	for _, name := range want {
		if !available[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func newInstanceCreateInfo(applicationName string) core1_0.InstanceCreateInfo {
	return core1_0.InstanceCreateInfo{
		ApplicationName:    applicationName,
		ApplicationVersion: common.CreateVersion(0, 1, 0),
		EngineName:         "unnamed",
		EngineVersion:      common.CreateVersion(0, 1, 0),
		APIVersion:         common.Vulkan1_1,
	}
}

func (r *VulkanRenderer) availableInstanceNames() (extensions map[string]bool, layers map[string]bool, err error) {
	availableExtensions, _, err := r.globalDriver.AvailableExtensions()
	if err != nil {
		return nil, nil, err
	}
	extensions = make(map[string]bool, len(availableExtensions))
	for name := range availableExtensions {
		extensions[name] = true
	}

	availableLayers, _, err := r.globalDriver.AvailableLayers()
	if err != nil {
		return nil, nil, err
	}
	layers = make(map[string]bool, len(availableLayers))
	for name := range availableLayers {
		layers[name] = true
	}

	return extensions, layers, nil
}

func (r *VulkanRenderer) createInstance() error {
	instanceOptions := newInstanceCreateInfo(r.opts.ApplicationName)

	extensions, layers, err := r.availableInstanceNames()
	if err != nil {
		return err
	}

	if r.opts.Validation {
		if missing := missingNames(validationLayers, layers); len(missing) > 0 {
			r.log.Warnf("validation disabled: layers %v not available, install the LunarG Vulkan SDK", missing)
			r.opts.Validation = false
		} else if !extensions[ext_debug_utils.ExtensionName] {
			r.log.Warnf("validation disabled: %s not available", ext_debug_utils.ExtensionName)
			r.opts.Validation = false
		}
	}

	var windowExtensions []string
	if r.window != nil {
		windowExtensions = r.window.VulkanGetInstanceExtensions()
	}

	enabled, portability, err := instanceExtensions(windowExtensions, extensions, r.opts.Validation)
	if err != nil {
		return err
	}
	for _, ext := range enabled {
		r.log.Infof("Requesting extension %s", ext)
	}
	instanceOptions.EnabledExtensionNames = enabled

	if portability {
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if r.opts.Validation {
		instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, validationLayers...)
		instanceOptions.Next = r.debugMessengerOptions()
	}

	r.instanceDriver, _, err = r.globalDriver.CreateInstance(nil, instanceOptions)
	return err
}

func (r *VulkanRenderer) setupDebugMessenger() error {
	if !r.opts.Validation {
		return nil
	}

	var err error
	r.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(r.instanceDriver)
	r.debugMessenger, _, err = r.debugDriver.CreateDebugUtilsMessenger(nil, r.debugMessengerOptions())
	return err
}

func (r *VulkanRenderer) createSurface() error {
	r.surfaceExtension = khr_surface.CreateExtensionDriverFromCoreDriver(r.instanceDriver)
	surface, err := vkng_sdl2.CreateSurface(r.instanceDriver.Instance(), r.surfaceExtension, r.window)
	if err != nil {
		return err
	}

	r.surface = surface
	return nil
}
