package gfx

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkplayground/vkplayground/internal/rating"
)

func suitableCandidate(name string, kind DeviceKind) *deviceCandidate {
	return &deviceCandidate{
		Name:       name,
		Kind:       kind,
		Extensions: map[string]bool{khr_swapchain.ExtensionName: true},
		QueueFamilies: []queueFamily{
			{Index: 0, Flags: core1_0.QueueGraphics | core1_0.QueueTransfer, Present: true},
		},
		SurfaceChecked: true,
		Formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
	}
}

func TestRateDeviceKinds(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		kind DeviceKind
		want float32
	}{
		{KindDiscrete, 100},
		{KindIntegrated, 50},
		{KindCPU, 10},
		{KindVirtual, 1},
		{KindOther, -1},
	}

	for _, test := range tests {
		c.Run(test.kind.String(), func(c *qt.C) {
			c.Assert(rateDevice(suitableCandidate("gpu", test.kind)), qt.Equals, test.want)
		})
	}
}

func TestRateDeviceUnsuitable(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name   string
		mutate func(*deviceCandidate)
	}{
		{"no swapchain extension", func(d *deviceCandidate) { d.Extensions = map[string]bool{} }},
		{"no graphics family", func(d *deviceCandidate) { d.QueueFamilies[0].Flags = core1_0.QueueTransfer }},
		{"no present family", func(d *deviceCandidate) { d.QueueFamilies[0].Present = false }},
		{"no queue families", func(d *deviceCandidate) { d.QueueFamilies = nil }},
		{"no formats", func(d *deviceCandidate) { d.Formats = nil }},
		{"no present modes", func(d *deviceCandidate) { d.PresentModes = nil }},
	}

	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			d := suitableCandidate("gpu", KindDiscrete)
			test.mutate(d)
			c.Assert(rateDevice(d), qt.Equals, float32(-1))
		})
	}
}

func TestRateDeviceWithoutSurface(t *testing.T) {
	c := qt.New(t)

	d := &deviceCandidate{
		Kind:       KindIntegrated,
		Extensions: map[string]bool{khr_swapchain.ExtensionName: true},
	}
	c.Assert(rateDevice(d), qt.Equals, float32(50))
}

func TestBestDevicePrefersDiscrete(t *testing.T) {
	c := qt.New(t)

	candidates := []*deviceCandidate{
		suitableCandidate("llvmpipe", KindCPU),
		suitableCandidate("igpu", KindIntegrated),
		suitableCandidate("dgpu", KindDiscrete),
		suitableCandidate("dgpu2", KindDiscrete),
	}

	best, ok := rating.Best(candidates, rateDevice)
	c.Assert(ok, qt.IsTrue)
	c.Assert(best.Element.Name, qt.Equals, "dgpu")
	c.Assert(best.Index, qt.Equals, 2)
}

func TestDeviceKind(t *testing.T) {
	c := qt.New(t)

	c.Assert(deviceKind(core1_0.PhysicalDeviceTypeDiscreteGPU), qt.Equals, KindDiscrete)
	c.Assert(deviceKind(core1_0.PhysicalDeviceTypeIntegratedGPU), qt.Equals, KindIntegrated)
	c.Assert(deviceKind(core1_0.PhysicalDeviceTypeVirtualGPU), qt.Equals, KindVirtual)
	c.Assert(deviceKind(core1_0.PhysicalDeviceTypeCPU), qt.Equals, KindCPU)
	c.Assert(deviceKind(core1_0.PhysicalDeviceTypeOther), qt.Equals, KindOther)
	c.Assert(DeviceKind(42).String(), qt.Equals, "other")
}
