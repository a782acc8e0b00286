package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func (r *VulkanRenderer) createSyncObjects() error {
	var err error

	r.imageAvailableSemaphore, _, err = r.deviceDriver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return err
	}

	r.renderFinishedSemaphore, _, err = r.deviceDriver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return err
	}

	// Signalled so the first frame does not wait forever.
	r.inFlightFence, _, err = r.deviceDriver.CreateFence(nil, core1_0.FenceCreateInfo{
		Flags: core1_0.FenceCreateSignaled,
	})
	return err
}

// Draw renders and presents one frame. Only one frame is in flight at a
// time.
func (r *VulkanRenderer) Draw() error {
	if r.suspended {
		r.resume()
		return nil
	}

	_, err := r.deviceDriver.WaitForFences(true, common.NoTimeout, r.inFlightFence)
	if err != nil {
		return errors.Wrap(err, "wait for in-flight fence")
	}

	imageIndex, res, err := r.swapchainExtension.AcquireNextImage(r.swapchain, common.NoTimeout, &r.imageAvailableSemaphore, nil)
	if res == khr_swapchain.VKErrorOutOfDate {
		return errors.Wrap(r.recreateSwapchain(), "recreate swapchain")
	} else if err != nil {
		return errors.Wrap(err, "acquire swapchain image")
	}

	_, err = r.deviceDriver.ResetFences(r.inFlightFence)
	if err != nil {
		return errors.Wrap(err, "reset in-flight fence")
	}

	_, err = r.deviceDriver.QueueSubmit(r.graphicsQueue, &r.inFlightFence,
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{r.imageAvailableSemaphore},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{r.commandBuffers[imageIndex]},
			SignalSemaphores: []core1_0.Semaphore{r.renderFinishedSemaphore},
		},
	)
	if err != nil {
		return errors.Wrap(err, "submit draw command buffer")
	}

	res, err = r.swapchainExtension.QueuePresent(r.presentQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{r.renderFinishedSemaphore},
		Swapchains:     []khr_swapchain.Swapchain{r.swapchain},
		ImageIndices:   []int{imageIndex},
	})
	recreate, err := presentOutcome(res, err, r.resized)
	if err != nil {
		return errors.Wrap(err, "present")
	}
	if recreate {
		return errors.Wrap(r.recreateSwapchain(), "recreate swapchain")
	}

	return nil
}

// presentOutcome decides what follows a present. Out-of-date and suboptimal
// results rebuild the swapchain; any other error is returned even while a
// resize is pending.
func presentOutcome(res common.VkResult, err error, resized bool) (recreate bool, _ error) {
	switch {
	case res == khr_swapchain.VKErrorOutOfDate || res == khr_swapchain.VKSuboptimal:
		return true, nil
	case err != nil:
		return false, err
	}
	return resized, nil
}

// resume ends a suspension once the window has a drawable area again. A
// window restored at its old size gets no resize event, so the size is
// polled here. The swapchain is rebuilt on the next frame.
func (r *VulkanRenderer) resume() {
	w, h := r.drawableSize()
	if w <= 0 || h <= 0 {
		return
	}
	r.suspended = false
	r.resized = true
	r.log.Debugf("drawable area back at %dx%d, resuming", w, h)
}

// Resize marks the swapchain stale. A zero-sized window suspends drawing
// until the next non-zero resize.
func (r *VulkanRenderer) Resize(width, height int) {
	r.resized = true
	r.suspended = width <= 0 || height <= 0
	r.log.Debugf("resize to %dx%d", width, height)
}
