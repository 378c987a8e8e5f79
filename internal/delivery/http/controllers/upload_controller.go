package controllers

import (
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// MaxUploadBytes caps the size of a single uploaded file.
const MaxUploadBytes = 10 << 20

// UploadResponse is the response body for POST /uploads/{kind}.
type UploadResponse struct {
	Ref string `json:"ref" example:"uploads/posters/2f1c6a7e-3b0b-4c8e-9a57-0d7e1b9f4c11.png"`
}

type UploadController struct {
	Logger *slog.Logger
	Store  domain.FileStore
}

func NewUploadController(logger *slog.Logger, store domain.FileStore) *UploadController {
	return &UploadController{
		Logger: logger,
		Store:  store,
	}
}

// Upload godoc
// @Summary Upload a file
// @Description Store a poster, certificate or profile picture and return its reference. Profile pictures may be uploaded anonymously during organiser registration; posters and certificates require an organiser token.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "posters, certificates or profile_pics"
// @Param file formData file true "File to upload"
// @Success 201 {object} helpers.APIResponse "data contains ref"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /uploads/{kind} [post]
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	kind, ok := domain.ParseFileKind(r.PathValue("kind"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown upload kind")
		return
	}
	if kind != domain.FileProfilePicture {
		id, ok := identity(w, r)
		if !ok {
			return
		}
		if id.Role != domain.RoleOrganiser {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "requires organiser role")
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing or oversized file")
		return
	}
	defer file.Close()

	ref, err := c.Store.Save(r.Context(), kind, header.Filename, file)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if id, ok := middleware.IdentityFromContext(r.Context()); ok {
		c.Logger.InfoContext(r.Context(), "file uploaded", "kind", kind, "ref", ref, "username", id.Username)
	} else {
		c.Logger.InfoContext(r.Context(), "file uploaded", "kind", kind, "ref", ref)
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, UploadResponse{Ref: ref})
}
