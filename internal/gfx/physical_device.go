package gfx

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkplayground/vkplayground/internal/rating"
)

// DeviceKind is the physical device type reported by the driver.
type DeviceKind int

const (
	KindOther DeviceKind = iota
	KindIntegrated
	KindDiscrete
	KindVirtual
	KindCPU
)

func (k DeviceKind) String() string {
	switch k {
	case KindIntegrated:
		return "integrated"
	case KindDiscrete:
		return "discrete"
	case KindVirtual:
		return "virtual"
	case KindCPU:
		return "cpu"
	default:
		return "other"
	}
}

func deviceKind(t core1_0.PhysicalDeviceType) DeviceKind {
	switch t {
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return KindDiscrete
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return KindIntegrated
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return KindVirtual
	case core1_0.PhysicalDeviceTypeCPU:
		return KindCPU
	default:
		return KindOther
	}
}

// kindScore prefers discrete over integrated over software over virtual
// devices.
func kindScore(k DeviceKind) float32 {
	switch k {
	case KindDiscrete:
		return 100
	case KindIntegrated:
		return 50
	case KindCPU:
		return 10
	case KindVirtual:
		return 1
	default:
		return -1
	}
}

type queueFamily struct {
	Index   int
	Flags   core1_0.QueueFlags
	Present bool
}

// deviceCandidate is everything device selection needs to know about one
// physical device.
type deviceCandidate struct {
	Device     core1_0.PhysicalDevice
	Properties *core1_0.PhysicalDeviceProperties

	Name          string
	Kind          DeviceKind
	APIVersion    string
	DriverVersion string

	Extensions    map[string]bool
	QueueFamilies []queueFamily

	// SurfaceChecked is false when no surface was available to query, in
	// which case present support, formats and present modes are unknown.
	SurfaceChecked bool
	Formats        []khr_surface.SurfaceFormat
	PresentModes   []khr_surface.PresentMode
}

// rateDevice returns -1 for devices that cannot drive the triangle and the
// device kind score otherwise.
func rateDevice(c *deviceCandidate) float32 {
	if !c.Extensions[khr_swapchain.ExtensionName] {
		return -1
	}

	if c.SurfaceChecked {
		if _, err := selectQueueFamilies(c.QueueFamilies); err != nil {
			return -1
		}
		if len(c.Formats) == 0 || len(c.PresentModes) == 0 {
			return -1
		}
	}

	return kindScore(c.Kind)
}

func collectDeviceCandidate(instanceDriver core1_0.CoreInstanceDriver, device core1_0.PhysicalDevice, surfaceExtension khr_surface.ExtensionDriver, surface khr_surface.Surface) (*deviceCandidate, error) {
	props, err := instanceDriver.GetPhysicalDeviceProperties(device)
	if err != nil {
		return nil, err
	}

	c := &deviceCandidate{
		Device:        device,
		Properties:    props,
		Name:          props.DriverName,
		Kind:          deviceKind(props.DriverType),
		APIVersion:    fmt.Sprint(props.APIVersion),
		DriverVersion: fmt.Sprint(props.DriverVersion),
		Extensions:    map[string]bool{},
	}

	extensions, _, err := instanceDriver.EnumerateDeviceExtensionProperties(device)
	if err != nil {
		return nil, err
	}
	for name := range extensions {
		c.Extensions[name] = true
	}

	checkSurface := surfaceExtension != nil && surface.Initialized()
	for idx, family := range instanceDriver.GetPhysicalDeviceQueueFamilyProperties(device) {
		qf := queueFamily{Index: idx, Flags: family.QueueFlags}
		if checkSurface {
			qf.Present, _, err = surfaceExtension.GetPhysicalDeviceSurfaceSupport(surface, device, idx)
			if err != nil {
				return nil, err
			}
		}
		c.QueueFamilies = append(c.QueueFamilies, qf)
	}

	if checkSurface && c.Extensions[khr_swapchain.ExtensionName] {
		support, err := querySwapchainSupport(surfaceExtension, surface, device)
		if err != nil {
			return nil, err
		}
		c.SurfaceChecked = true
		c.Formats = support.Formats
		c.PresentModes = support.PresentModes
	}

	return c, nil
}

func (r *VulkanRenderer) pickPhysicalDevice() error {
	physicalDevices, _, err := r.instanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		return err
	}

	var candidates []*deviceCandidate
	for i, device := range physicalDevices {
		c, err := collectDeviceCandidate(r.instanceDriver, device, r.surfaceExtension, r.surface)
		if err != nil {
			r.log.WithError(err).Warnf("[%d] could not query physical device", i)
			continue
		}
		r.log.Infof("[%d] Name: %s, Driver: %s, Api: %s", i, c.Name, c.DriverVersion, c.APIVersion)
		candidates = append(candidates, c)
	}

	best, ok := rating.Best(candidates, rateDevice)
	if !ok || best.Score <= 0 {
		return errors.New("no suitable physical device found")
	}

	r.device = best.Element
	r.physicalDevice = best.Element.Device
	r.log.Infof("Using physical device %s (%s, score %g)", best.Element.Name, best.Element.Kind, best.Score)
	return nil
}
