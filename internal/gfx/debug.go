package gfx

import (
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"

	"github.com/vkplayground/vkplayground/internal/logging"
)

// Loggers validation messages are routed to.
const (
	LoggerPerformance = "vk-perf"
	LoggerValidation  = "vk-val"
	LoggerGeneral     = "vk-general"
)

func (r *VulkanRenderer) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityVerbose | ext_debug_utils.SeverityInfo | ext_debug_utils.SeverityWarning | ext_debug_utils.SeverityError,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    r.logDebug,
	}
}

func (r *VulkanRenderer) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	r.log.WithField(logging.FieldName, debugLoggerName(msgType)).Log(debugLevel(severity), data.Message)
	return false
}

func debugLoggerName(msgType ext_debug_utils.DebugUtilsMessageTypeFlags) string {
	switch {
	case msgType&ext_debug_utils.TypePerformance != 0:
		return LoggerPerformance
	case msgType&ext_debug_utils.TypeValidation != 0:
		return LoggerValidation
	default:
		return LoggerGeneral
	}
}

func debugLevel(severity ext_debug_utils.DebugUtilsMessageSeverityFlags) logrus.Level {
	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		return logrus.ErrorLevel
	case severity&ext_debug_utils.SeverityWarning != 0:
		return logrus.WarnLevel
	case severity&ext_debug_utils.SeverityInfo != 0:
		return logrus.InfoLevel
	default:
		return logrus.TraceLevel
	}
}
