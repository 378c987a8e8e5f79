package controllers

import (
	"log/slog"
	"net/http"

	"eventhub/internal/catalog"
	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
	"eventhub/internal/navigation"
)

// CreateEventRequest is the request body for POST /events. poster is a reference returned by POST /uploads/posters.
type CreateEventRequest struct {
	Name             string   `json:"name"`
	Date             string   `json:"date" example:"2026-03-14"`
	Time             string   `json:"time" example:"10:00"`
	Venue            string   `json:"venue"`
	Poster           string   `json:"poster"`
	Description      string   `json:"description"`
	Fees             string   `json:"fees" enums:"Free,Paid"`
	RegistrationLink string   `json:"registration_link"`
	Level            string   `json:"level" enums:"Beginner,Intermediate,Advanced"`
	Topics           []string `json:"topics"`
	ActivityPoints   int      `json:"activity_points" enums:"0,5,10,20"`
}

func (c CreateEventRequest) toEvent() *domain.Event {
	return &domain.Event{
		Name:             c.Name,
		Date:             c.Date,
		Time:             c.Time,
		Venue:            c.Venue,
		Poster:           c.Poster,
		Description:      c.Description,
		Fees:             domain.FeeCategory(c.Fees),
		RegistrationLink: c.RegistrationLink,
		Level:            domain.Level(c.Level),
		Topics:           c.Topics,
		ActivityPoints:   domain.PointsTier(c.ActivityPoints),
	}
}

// CreateEventResponse is the response body for POST /events.
type CreateEventResponse struct {
	Event      *domain.Event      `json:"event"`
	Navigation navigation.Context `json:"navigation"`
}

// ListEventsResponse is the response body for GET /events: one page of the filtered catalog.
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
	Navigation navigation.Context     `json:"navigation"`
}

// EventDetailResponse is the response body for GET /events/{eventID}. organiser is null when the club has no profile.
type EventDetailResponse struct {
	Event           *domain.Event            `json:"event"`
	Organiser       *domain.OrganiserProfile `json:"organiser"`
	DescriptionHTML string                   `json:"description_html"`
	Navigation      navigation.Context       `json:"navigation"`
}

// OrganiserDashboardResponse is the response body for GET /organiser/dashboard.
type OrganiserDashboardResponse struct {
	Profile    *domain.OrganiserProfile `json:"profile"`
	Events     []*domain.Event          `json:"events"`
	Navigation navigation.Context       `json:"navigation"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Publish a new event owned by the calling organiser. Name, date, time, venue and registration_link are required; fees, level, topics and activity_points must use the values from GET /topics.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event and navigation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not an organiser)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent()
	if err := c.Service.CreateEvent(r.Context(), id.Username, event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	nav := navigation.For(id.Username, id.Role).OpenCreateEvent().EventCreated()
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{Event: event, Navigation: nav})
}

// ListEvents godoc
// @Summary Browse the event catalog
// @Description Participant dashboard. All criteria are optional and combined with AND; "All" or an empty value disables a criterion. topic may be repeated or comma-separated and matches events sharing at least one topic.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive substring of the event name"
// @Param topic query []string false "Topics" collectionFormat(multi)
// @Param level query string false "Beginner, Intermediate, Advanced or All"
// @Param fees query string false "Free, Paid or All"
// @Param activity_points query string false "0, 5, 10, 20 or All"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items, pagination and navigation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	filter, err := catalog.ParseFilter(r.URL.Query())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, err := c.Service.Browse(r.Context(), filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	params := helpers.ParsePagination(r)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Items:      helpers.Paginate(events, params),
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, len(events)),
		Navigation: navigation.For(id.Username, id.Role),
	})
}

// GetEvent godoc
// @Summary Get an event
// @Description Event page: the event, its organiser's profile (null if missing) and the description rendered from markdown. An empty poster means the client shows a placeholder.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains event, organiser, description_html and navigation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	detail, err := c.Service.GetEventDetail(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDetailResponse{
		Event:           detail.Event,
		Organiser:       detail.Organiser,
		DescriptionHTML: detail.DescriptionHTML,
		Navigation:      navigation.For(id.Username, id.Role).ViewEvent(eventID),
	})
}

// OrganiserDashboard godoc
// @Summary Organiser dashboard
// @Description The calling organiser's profile and own events in creation order.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains profile, events and navigation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not an organiser)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organiser/dashboard [get]
func (c *EventController) OrganiserDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	dash, err := c.Service.OrganiserDashboard(r.Context(), id.Username)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, OrganiserDashboardResponse{
		Profile:    dash.Profile,
		Events:     dash.Events,
		Navigation: navigation.For(id.Username, id.Role),
	})
}
