// Package navigation models the page a client should show and how user actions move between pages.
// Values are immutable: every transition returns a new Context.
package navigation

import (
	"encoding/json"
	"fmt"

	"eventhub/internal/domain"
)

// PageKind names one of the fixed set of pages.
type PageKind string

const (
	PageLogin                PageKind = "login"
	PageRegister             PageKind = "register"
	PageOrganiserDashboard   PageKind = "organiser_dashboard"
	PageParticipantDashboard PageKind = "participant_dashboard"
	PageCreateEvent          PageKind = "create_event"
	PageEventDetail          PageKind = "event_detail"
)

// Page is a tagged variant: EventID is only meaningful for PageEventDetail.
type Page struct {
	kind    PageKind
	eventID int64
}

func Login() Page                { return Page{kind: PageLogin} }
func Register() Page             { return Page{kind: PageRegister} }
func OrganiserDashboard() Page   { return Page{kind: PageOrganiserDashboard} }
func ParticipantDashboard() Page { return Page{kind: PageParticipantDashboard} }
func CreateEvent() Page          { return Page{kind: PageCreateEvent} }

// EventDetail is the page for a single event.
func EventDetail(eventID int64) Page {
	return Page{kind: PageEventDetail, eventID: eventID}
}

// Kind returns the page's tag. The zero Page is the login page.
func (p Page) Kind() PageKind {
	if p.kind == "" {
		return PageLogin
	}
	return p.kind
}

// EventID returns the event shown on an event detail page.
func (p Page) EventID() (int64, bool) {
	if p.kind != PageEventDetail {
		return 0, false
	}
	return p.eventID, true
}

func (p Page) String() string {
	if id, ok := p.EventID(); ok {
		return fmt.Sprintf("%s{%d}", p.Kind(), id)
	}
	return string(p.Kind())
}

type pageJSON struct {
	Name    PageKind `json:"name"`
	EventID *int64   `json:"event_id,omitempty"`
}

// MarshalJSON encodes a page as {"name":"event_detail","event_id":7}.
func (p Page) MarshalJSON() ([]byte, error) {
	out := pageJSON{Name: p.Kind()}
	if id, ok := p.EventID(); ok {
		out.EventID = &id
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (p *Page) UnmarshalJSON(b []byte) error {
	var in pageJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Name {
	case PageLogin, PageRegister, PageOrganiserDashboard, PageParticipantDashboard, PageCreateEvent:
		*p = Page{kind: in.Name}
	case PageEventDetail:
		if in.EventID == nil {
			return fmt.Errorf("page %q requires event_id", in.Name)
		}
		*p = EventDetail(*in.EventID)
	default:
		return fmt.Errorf("unknown page %q", in.Name)
	}
	return nil
}

// Context is the per-response view of who the user is and where they are.
// swagger:model NavigationContext
type Context struct {
	Username      string      `json:"username,omitempty"`
	Role          domain.Role `json:"role,omitempty"`
	Page          Page        `json:"page" swaggertype:"object"`
	SelectedEvent int64       `json:"selected_event,omitempty"`
}

// Start is the context of a fresh, unauthenticated visitor.
func Start() Context {
	return Context{Page: Login()}
}

// For rebuilds the context of an authenticated user sitting on their dashboard.
func For(username string, role domain.Role) Context {
	return Start().LoggedIn(username, role)
}

// Authenticated reports whether the context carries an identity.
func (c Context) Authenticated() bool {
	return c.Username != ""
}

// Dashboard returns the role-appropriate dashboard, or the login page without identity.
func (c Context) Dashboard() Page {
	switch {
	case !c.Authenticated():
		return Login()
	case c.Role == domain.RoleOrganiser:
		return OrganiserDashboard()
	default:
		return ParticipantDashboard()
	}
}

// OpenRegister moves to the registration page.
func (c Context) OpenRegister() Context {
	c.Page = Register()
	return c
}

// BackToLogin leaves the registration page.
func (c Context) BackToLogin() Context {
	c.Page = Login()
	return c
}

// LoggedIn records a successful login and lands on the role's dashboard.
func (c Context) LoggedIn(username string, role domain.Role) Context {
	c.Username = username
	c.Role = role
	c.SelectedEvent = 0
	c.Page = c.Dashboard()
	return c
}

// Logout clears all state.
func (c Context) Logout() Context {
	return Start()
}

// OpenCreateEvent moves an organiser to the create-event page. Other users stay put.
func (c Context) OpenCreateEvent() Context {
	if c.Role != domain.RoleOrganiser || !c.Authenticated() {
		return c
	}
	c.Page = CreateEvent()
	return c
}

// EventCreated returns the organiser to the dashboard after a successful creation.
func (c Context) EventCreated() Context {
	c.Page = c.Dashboard()
	return c
}

// ViewEvent selects an event and opens its page.
func (c Context) ViewEvent(eventID int64) Context {
	c.SelectedEvent = eventID
	c.Page = EventDetail(eventID)
	return c
}

// Back returns to the role-appropriate dashboard and clears the selection.
func (c Context) Back() Context {
	c.SelectedEvent = 0
	c.Page = c.Dashboard()
	return c
}
