package gfx

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/xlab/tablewriter"

	"github.com/vkplayground/vkplayground/internal/rating"
)

// DeviceReport summarizes one physical device as seen without a window.
// Present support is unknown without a surface, so Score only reflects the
// device kind and swapchain support.
type DeviceReport struct {
	Index         int
	Name          string
	Kind          DeviceKind
	APIVersion    string
	DriverVersion string
	QueueFamilies int
	Graphics      bool
	Swapchain     bool
	Score         float32
	Best          bool
}

func newDeviceReports(candidates []*deviceCandidate) []DeviceReport {
	best, ok := rating.Best(candidates, rateDevice)

	var reports []DeviceReport
	for _, rated := range rating.All(candidates, func(c *deviceCandidate, _ int) float32 { return rateDevice(c) }) {
		c := rated.Element
		graphics, _ := rating.Best(c.QueueFamilies, rateGraphicsFamily)
		reports = append(reports, DeviceReport{
			Index:         rated.Index,
			Name:          c.Name,
			Kind:          c.Kind,
			APIVersion:    c.APIVersion,
			DriverVersion: c.DriverVersion,
			QueueFamilies: len(c.QueueFamilies),
			Graphics:      graphics.Score > 0,
			Swapchain:     c.Extensions[khr_swapchain.ExtensionName],
			Score:         rated.Score,
			Best:          ok && best.Score > 0 && best.Index == rated.Index,
		})
	}
	return reports
}

// ListDevices creates a window-less instance and reports every physical
// device it can see.
func ListDevices(log logrus.FieldLogger) ([]DeviceReport, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "init SDL video")
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return nil, errors.Wrap(err, "load Vulkan library")
	}
	defer sdl.VulkanUnloadLibrary()

	r := NewVulkanRenderer(Options{}, log)
	defer r.Destroy()

	err := r.runSteps([]setupStep{
		{"create driver", r.createDriver},
		{"create instance", r.createInstance},
	})
	if err != nil {
		return nil, err
	}

	physicalDevices, _, err := r.instanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}

	var candidates []*deviceCandidate
	for i, device := range physicalDevices {
		c, err := collectDeviceCandidate(r.instanceDriver, device, nil, khr_surface.Surface{})
		if err != nil {
			return nil, errors.Wrapf(err, "query physical device %d", i)
		}
		candidates = append(candidates, c)
	}

	return newDeviceReports(candidates), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// RenderDeviceTable formats reports as a text table.
func RenderDeviceTable(reports []DeviceReport) string {
	table := tablewriter.CreateTable()
	table.UTF8Box()
	table.AddTitle("PHYSICAL DEVICES")
	table.AddRow("#", "Name", "Type", "API", "Driver", "Queues", "Graphics", "Swapchain", "Score")
	table.AddSeparator()

	for _, report := range reports {
		index := fmt.Sprint(report.Index)
		if report.Best {
			index += "*"
		}
		table.AddRow(index, report.Name, report.Kind.String(), report.APIVersion, report.DriverVersion,
			report.QueueFamilies, yesNo(report.Graphics), yesNo(report.Swapchain), fmt.Sprintf("%g", report.Score))
	}

	if len(reports) == 0 {
		table.AddRow("-", "no devices", "", "", "", "", "", "", "")
	}

	return table.Render()
}

