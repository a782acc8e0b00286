package gfx

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

func (r *VulkanRenderer) createCommandPool() error {
	commandPool, _, err := r.deviceDriver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: r.queueFamilies.Graphics,
	})
	if err != nil {
		return err
	}

	r.commandPool = commandPool
	return nil
}

// createCommandBuffers records one buffer per swapchain image. The buffers
// never change until the swapchain is rebuilt.
func (r *VulkanRenderer) createCommandBuffers() error {
	buffers, _, err := r.deviceDriver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        r.commandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: len(r.swapchainImages),
	})
	if err != nil {
		return err
	}
	r.commandBuffers = buffers

	color := r.opts.ClearColor
	for bufferIdx, buffer := range buffers {
		_, err = r.deviceDriver.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{})
		if err != nil {
			return err
		}

		err = r.deviceDriver.CmdBeginRenderPass(buffer, core1_0.SubpassContentsInline,
			core1_0.RenderPassBeginInfo{
				RenderPass:  r.renderPass,
				Framebuffer: r.swapchainFramebuffers[bufferIdx],
				RenderArea: core1_0.Rect2D{
					Offset: core1_0.Offset2D{X: 0, Y: 0},
					Extent: r.swapchainExtent,
				},
				ClearValues: []core1_0.ClearValue{
					core1_0.ClearValueFloat{color[0], color[1], color[2], color[3]},
				},
			})
		if err != nil {
			return err
		}

		r.deviceDriver.CmdBindPipeline(buffer, core1_0.PipelineBindPointGraphics, r.graphicsPipeline)
		r.deviceDriver.CmdDraw(buffer, 3, 1, 0, 0)
		r.deviceDriver.CmdEndRenderPass(buffer)

		_, err = r.deviceDriver.EndCommandBuffer(buffer)
		if err != nil {
			return err
		}
	}

	return nil
}
