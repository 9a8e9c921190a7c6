package handler

const (
	// BaseLayout is the layout of admin pages.
	BaseLayout = "layouts/base"

	// PublicLayout is the layout of the public site.
	PublicLayout = "layouts/public"

	// RootPath is the root path the route group.
	RootPath = "/"

	// AdminPath is the root of the admin area.
	AdminPath = RootPath + "admin"

	// APIPath is the root of the JSON API.
	APIPath = RootPath + "api"

	// LoginPath is the login page.
	LoginPath = RootPath + "login"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
