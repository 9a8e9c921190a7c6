package handler

import (
	"github.com/gofiber/fiber/v3"
)

// ToastKey is the fiber flash message key carrying the toast shown after a redirect.
const ToastKey = "toast"

// Toast levels stored with the flash message.
const (
	ToastInfo uint8 = iota
	ToastSuccess
	ToastError
)

// Toast is a notification rendered by the toast partial.
type Toast struct {
	Kind string
	Text string
}

var toastKinds = map[uint8]string{
	ToastInfo:    "info",
	ToastSuccess: "success",
	ToastError:   "error",
}

// RedirectWithToast redirects to location and shows text on the page rendered there.
func RedirectWithToast(c fiber.Ctx, level uint8, text, location string) error {
	return c.Redirect().With(ToastKey, text, level).To(location)
}

// PopToast returns the toast carried by the request, nil when there is none.
// Fiber clears the flash cookie once it has been read.
func PopToast(c fiber.Ctx) *Toast {
	m := c.Redirect().Message(ToastKey)
	if m.Value == "" {
		return nil
	}

	kind, ok := toastKinds[m.Level]
	if !ok {
		kind = toastKinds[ToastInfo]
	}

	return &Toast{Kind: kind, Text: m.Value}
}
