package gfx

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

func TestInstanceExtensions(t *testing.T) {
	c := qt.New(t)

	window := []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}
	available := map[string]bool{
		"VK_KHR_surface":      true,
		"VK_KHR_xlib_surface": true,
	}

	enabled, portability, err := instanceExtensions(window, available, false)
	c.Assert(err, qt.IsNil)
	c.Assert(portability, qt.IsFalse)
	c.Assert(enabled, qt.DeepEquals, window)

	available[khr_portability_enumeration.ExtensionName] = true
	enabled, portability, err = instanceExtensions(window, available, true)
	c.Assert(err, qt.IsNil)
	c.Assert(portability, qt.IsTrue)
	c.Assert(enabled, qt.DeepEquals, []string{
		"VK_KHR_surface",
		"VK_KHR_xlib_surface",
		ext_debug_utils.ExtensionName,
		khr_portability_enumeration.ExtensionName,
	})
}

func TestInstanceExtensionsMissing(t *testing.T) {
	c := qt.New(t)

	_, _, err := instanceExtensions([]string{"VK_KHR_surface", "VK_KHR_wayland_surface"},
		map[string]bool{"VK_KHR_surface": true}, false)
	c.Assert(err, qt.ErrorMatches, "missing window extension VK_KHR_wayland_surface")
}

func TestMissingNames(t *testing.T) {
	c := qt.New(t)

	available := map[string]bool{"b": true}
	c.Assert(missingNames([]string{"c", "b", "a"}, available), qt.DeepEquals, []string{"a", "c"})
	c.Assert(missingNames([]string{"b"}, available), qt.HasLen, 0)
}

func TestNewInstanceCreateInfo(t *testing.T) {
	c := qt.New(t)

	info := newInstanceCreateInfo("VkPlayground")
	c.Assert(info.ApplicationName, qt.Equals, "VkPlayground")
	c.Assert(info.ApplicationVersion, qt.Equals, common.CreateVersion(0, 1, 0))
	c.Assert(info.EngineName, qt.Equals, "unnamed")
	c.Assert(info.EngineVersion, qt.Equals, common.CreateVersion(0, 1, 0))
	c.Assert(info.APIVersion, qt.Equals, common.Vulkan1_1)
}
