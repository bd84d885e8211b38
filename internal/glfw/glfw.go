// Package glfw implements the viewer window on top of GLFW. Every GLFW callback
// is turned into a message on the viewer's bus.
package glfw

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
)

var errorStrings = map[glfw.ErrorCode]string{
	glfw.NotInitialized:     "GLFW has not been initialized",
	glfw.NoCurrentContext:   "No context is current for this thread",
	glfw.InvalidEnum:        "One of the arguments to the function was an invalid enum value",
	glfw.InvalidValue:       "One of the arguments to the function was an invalid value",
	glfw.OutOfMemory:        "A memory allocation failed",
	glfw.APIUnavailable:     "GLFW could not find support for the requested client API on the system",
	glfw.VersionUnavailable: "The requested OpenGL or OpenGL ES version is not available",
	glfw.PlatformError:      "A platform-specific error occurred that does not match any of the more specific categories",
	glfw.FormatUnavailable:  "The requested format is not supported or available",
}

// describe turns a GLFW error into a readable one.
func describe(err error) error {
	var glfwErr *glfw.Error
	if errors.As(err, &glfwErr) {
		if s, ok := errorStrings[glfwErr.Code]; ok {
			return errors.Errorf("GLFW error (%d): %s: %s", glfwErr.Code, s, glfwErr.Desc)
		}
	}
	return err
}

// Init initializes GLFW. It must be called from the main thread.
func Init() error {
	if err := glfw.Init(); err != nil {
		err = describe(err)
		logger.Log.Error("failed to initialize GLFW", zap.Error(err))
		return err
	}
	return nil
}

func Terminate() { glfw.Terminate() }

func PollEvents() { glfw.PollEvents() }

// ScaleToMonitor controls whether windows created afterwards are resized by the
// monitor content scale.
func ScaleToMonitor(enable bool) { glfw.WindowHint(glfw.ScaleToMonitor, boolHint(enable)) }
