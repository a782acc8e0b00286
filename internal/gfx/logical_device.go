package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkplayground/vkplayground/internal/rating"
)

var deviceExtensions = []string{khr_swapchain.ExtensionName}

type queueFamilyIndices struct {
	Graphics int
	Present  int
}

// Unique returns the distinct family indices, graphics first.
func (i queueFamilyIndices) Unique() []int {
	if i.Graphics == i.Present {
		return []int{i.Graphics}
	}
	return []int{i.Graphics, i.Present}
}

// Shared reports whether graphics and present use the same family.
func (i queueFamilyIndices) Shared() bool {
	return i.Graphics == i.Present
}

func rateGraphicsFamily(f queueFamily) float32 {
	score := float32(-100)
	if f.Flags&core1_0.QueueGraphics != 0 {
		score += 200
	}
	if f.Flags&core1_0.QueueTransfer != 0 {
		score += 10
	}
	return score
}

// presentFamilyRater rates present support and breaks ties in favour of the
// graphics family so the swapchain can use exclusive sharing.
func presentFamilyRater(graphics int) func(queueFamily) float32 {
	return func(f queueFamily) float32 {
		score := float32(-100)
		if f.Present {
			score += 200
			if f.Index == graphics {
				score++
			}
		}
		return score
	}
}

func selectQueueFamilies(families []queueFamily) (queueFamilyIndices, error) {
	graphics, ok := rating.Best(families, rateGraphicsFamily)
	if !ok || graphics.Score <= 0 {
		return queueFamilyIndices{}, errors.New("unable to find device queue with graphics support")
	}

	present, ok := rating.Best(families, presentFamilyRater(graphics.Element.Index))
	if !ok || present.Score <= 0 {
		return queueFamilyIndices{}, errors.New("unable to find device queue with present support")
	}

	return queueFamilyIndices{
		Graphics: graphics.Element.Index,
		Present:  present.Element.Index,
	}, nil
}

func enabledDeviceExtensions(available map[string]bool) []string {
	var names []string
	names = append(names, deviceExtensions...)

	// Must be enabled whenever a portability driver such as MoltenVK offers it
	if available[khr_portability_subset.ExtensionName] {
		names = append(names, khr_portability_subset.ExtensionName)
	}
	return names
}

func (r *VulkanRenderer) createLogicalDevice() error {
	indices, err := selectQueueFamilies(r.device.QueueFamilies)
	if err != nil {
		return err
	}
	r.queueFamilies = indices

	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	queuePriority := float32(1.0)
	for _, queueFamily := range indices.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	r.deviceDriver, _, err = r.instanceDriver.CreateDevice(r.physicalDevice, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledExtensionNames: enabledDeviceExtensions(r.device.Extensions),
	})
	if err != nil {
		return err
	}

	r.graphicsQueue = r.deviceDriver.GetQueue(indices.Graphics, 0)
	r.presentQueue = r.deviceDriver.GetQueue(indices.Present, 0)
	r.log.Debugf("graphics family %d, present family %d", indices.Graphics, indices.Present)
	return nil
}
