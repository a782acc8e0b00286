package gfx

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vkngwrapper/core/v3/core1_0"
)

func TestNewDeviceReports(t *testing.T) {
	c := qt.New(t)

	noSwapchain := suitableCandidate("old gpu", KindDiscrete)
	noSwapchain.Extensions = map[string]bool{}

	reports := newDeviceReports([]*deviceCandidate{
		suitableCandidate("llvmpipe", KindCPU),
		noSwapchain,
		suitableCandidate("igpu", KindIntegrated),
	})

	c.Assert(reports, qt.HasLen, 3)
	c.Assert(reports[0].Score, qt.Equals, float32(10))
	c.Assert(reports[0].Best, qt.IsFalse)
	c.Assert(reports[1].Score, qt.Equals, float32(-1))
	c.Assert(reports[1].Swapchain, qt.IsFalse)
	c.Assert(reports[2].Name, qt.Equals, "igpu")
	c.Assert(reports[2].Index, qt.Equals, 2)
	c.Assert(reports[2].Graphics, qt.IsTrue)
	c.Assert(reports[2].QueueFamilies, qt.Equals, 1)
	c.Assert(reports[2].Best, qt.IsTrue)
}

func TestNewDeviceReportsNoneSuitable(t *testing.T) {
	c := qt.New(t)

	d := suitableCandidate("compute only", KindDiscrete)
	d.QueueFamilies = []queueFamily{{Index: 0, Flags: core1_0.QueueTransfer}}

	reports := newDeviceReports([]*deviceCandidate{d})
	c.Assert(reports, qt.HasLen, 1)
	c.Assert(reports[0].Graphics, qt.IsFalse)
	c.Assert(reports[0].Best, qt.IsFalse)
}

func TestRenderDeviceTable(t *testing.T) {
	c := qt.New(t)

	out := RenderDeviceTable([]DeviceReport{{
		Index:         0,
		Name:          "NVIDIA GeForce RTX 3070",
		Kind:          KindDiscrete,
		APIVersion:    "1.3.242",
		DriverVersion: "535.104.5",
		QueueFamilies: 3,
		Graphics:      true,
		Swapchain:     true,
		Score:         100,
		Best:          true,
	}})

	c.Assert(out, qt.Contains, "PHYSICAL DEVICES")
	c.Assert(out, qt.Contains, "NVIDIA GeForce RTX 3070")
	c.Assert(out, qt.Contains, "0*")
	c.Assert(out, qt.Contains, "discrete")

	c.Assert(RenderDeviceTable(nil), qt.Contains, "no devices")
}
