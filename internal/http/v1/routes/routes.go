package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/netwify/api/internal/http/v1/connections"
	"github.com/netwify/api/internal/http/v1/contacts"
	"github.com/netwify/api/internal/http/v1/profile"
	"github.com/netwify/api/internal/http/v1/qrcode"
	"github.com/netwify/api/internal/platform/auth"
	"github.com/netwify/api/internal/service/assistant"
	connectionsvc "github.com/netwify/api/internal/service/connection"
	contactsvc "github.com/netwify/api/internal/service/contact"
	"github.com/netwify/api/internal/service/photo"
	profilesvc "github.com/netwify/api/internal/service/profile"
)

// Register wires all HTTP routes into the provided API router.
func Register(
	api huma.API,
	verifier auth.Verifier,
	profileService profilesvc.Service,
	photoService photo.Service,
	connectionService connectionsvc.Service,
	contactService contactsvc.Service,
	assistantService assistant.Service,
) {
	prefix := apiPrefix(api)

	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewMiddleware(api, verifier))

	profile.Register(api, profileService, photoService)
	qrcode.Register(api)
	connections.Register(api, connectionService)
	contacts.Register(api, prefix, contactService, profileService, assistantService)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
