package controllers

import (
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// IssueCertificateRequest is the request body for POST /events/{eventID}/certificates.
// file is a reference returned by POST /uploads/certificates.
type IssueCertificateRequest struct {
	Participant string `json:"participant"`
	File        string `json:"file"`
}

type CertificateController struct {
	Logger  *slog.Logger
	Service domain.CertificateService
}

func NewCertificateController(logger *slog.Logger, svc domain.CertificateService) *CertificateController {
	return &CertificateController{
		Logger:  logger,
		Service: svc,
	}
}

// IssueCertificate godoc
// @Summary Issue a certificate
// @Description Attach a certificate file to a participant of one of the caller's events.
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body IssueCertificateRequest true "Participant and certificate file"
// @Success 201 {object} helpers.APIResponse "data contains the certificate"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the event's organiser)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/certificates [post]
func (c *CertificateController) IssueCertificate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	var req IssueCertificateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cert, err := c.Service.Issue(r.Context(), id.Username, eventID, req.Participant, req.File)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, cert)
}

// ListEventCertificates godoc
// @Summary List an event's certificates
// @Description Certificates issued for one of the caller's events, ordered by participant.
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the certificates"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the event's organiser)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/certificates [get]
func (c *CertificateController) ListEventCertificates(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	certs, err := c.Service.ListForEvent(r.Context(), id.Username, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, certs)
}

// ListMyCertificates godoc
// @Summary List my certificates
// @Description Certificates issued to the calling participant, newest first.
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the certificates"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not a participant)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /certificates/me [get]
func (c *CertificateController) ListMyCertificates(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	certs, err := c.Service.ListMine(r.Context(), id.Username)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, certs)
}
