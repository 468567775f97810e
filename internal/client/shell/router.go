// Package shell is the client's navigation state machine. It knows which
// screen is showing and which document is selected; everything else lives
// in the services.
package shell

import (
	"fmt"

	"github.com/dmitrijs2005/atscv/internal/client/models"
)

type Screen string

const (
	Home      Screen = "home"
	Settings  Screen = "settings"
	JobInput  Screen = "job_input"
	CVPreview Screen = "cv_preview"
	CVList    Screen = "cv_list"
	Payment   Screen = "payment"

	// SignedOut is never navigated to; it is what Current reports while no
	// one is signed in.
	SignedOut Screen = "signed_out"
)

// Screens lists the navigable screens in menu order.
var Screens = []Screen{Home, Settings, JobInput, CVPreview, CVList, Payment}

func ParseScreen(s string) (Screen, error) {
	for _, sc := range Screens {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown screen %q", s)
}

// Router is not safe for concurrent use.
type Router struct {
	screen   Screen
	selected *models.Document
}

func NewRouter() *Router {
	return &Router{screen: Home}
}

// Navigate switches to screen. A non-nil doc becomes the selected document.
func (r *Router) Navigate(screen Screen, doc *models.Document) {
	if doc != nil {
		d := *doc
		r.selected = &d
	}
	r.screen = screen
}

// Current resolves the screen to show. The signed-out gate wins over
// everything; a preview with nothing selected falls back to Home, as does
// any unknown screen.
func (r *Router) Current(signedIn bool) Screen {
	if !signedIn {
		return SignedOut
	}
	switch r.screen {
	case CVPreview:
		if r.selected == nil {
			return Home
		}
		return CVPreview
	case Settings, JobInput, CVList, Payment:
		return r.screen
	default:
		return Home
	}
}

func (r *Router) Selected() (models.Document, bool) {
	if r.selected == nil {
		return models.Document{}, false
	}
	return *r.selected, true
}

// Refresh replaces the selected document with doc when their ids match.
func (r *Router) Refresh(doc models.Document) {
	if r.selected != nil && r.selected.ID == doc.ID {
		r.selected = &doc
	}
}

// Reset returns to Home with nothing selected, as after sign-out.
func (r *Router) Reset() {
	r.screen = Home
	r.selected = nil
}
