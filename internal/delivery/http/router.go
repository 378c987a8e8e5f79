package http

import (
	"log/slog"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// RouterDeps bundles the controllers and collaborators the router wires together.
type RouterDeps struct {
	Logger       *slog.Logger
	Verifier     domain.TokenVerifier
	Auth         *controllers.AuthController
	Events       *controllers.EventController
	Certificates *controllers.CertificateController
	Users        *controllers.UserController
	Uploads      *controllers.UploadController
	UploadDir    string
	CORSOrigins  []string
}

// NewRouter initializes the HTTP router with all application routes, wrapped in CORS and request logging.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(d.Verifier, d.Logger)
	optional := middleware.OptionalAuth(d.Verifier, d.Logger)
	organiser := func(next http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.RoleOrganiser)(next))
	}
	participant := func(next http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.RoleParticipant)(next))
	}

	// Auth
	mux.HandleFunc("POST /auth/login", d.Auth.Login)
	mux.HandleFunc("POST /auth/register/participant", d.Auth.RegisterParticipant)
	mux.HandleFunc("POST /auth/register/organiser", d.Auth.RegisterOrganiser)
	mux.HandleFunc("POST /auth/logout", d.Auth.Logout)

	// Catalog
	mux.HandleFunc("GET /topics", controllers.ListTopics)
	mux.HandleFunc("GET /events", authed(d.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", authed(d.Events.GetEvent))
	mux.HandleFunc("POST /events", organiser(d.Events.CreateEvent))
	mux.HandleFunc("GET /organiser/dashboard", organiser(d.Events.OrganiserDashboard))

	// Certificates
	mux.HandleFunc("POST /events/{eventID}/certificates", organiser(d.Certificates.IssueCertificate))
	mux.HandleFunc("GET /events/{eventID}/certificates", organiser(d.Certificates.ListEventCertificates))
	mux.HandleFunc("GET /certificates/me", participant(d.Certificates.ListMyCertificates))

	// Users
	mux.HandleFunc("GET /users/me", authed(d.Users.GetMe))
	mux.HandleFunc("GET /organisers/{username}", d.Users.GetOrganiser)

	// Uploads
	mux.HandleFunc("POST /uploads/{kind}", optional(d.Uploads.Upload))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(d.UploadDir)))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(d.CORSOrigins, middleware.LoggingMiddleware(d.Logger, mux))
}

// noDirListing hides directory indexes of the upload tree.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
