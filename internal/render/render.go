// Package render converts author-authored markup into HTML that is safe to
// transmit. Post text is stored raw and sanitized on every read; the raw
// form is never returned to clients.
package render

import "github.com/microcosm-cc/bluemonday"

// Renderer sanitizes author markup for output.
type Renderer struct {
	policy *bluemonday.Policy
}

// New creates a Renderer with a user-generated-content policy: common
// formatting elements survive, scripts and event handlers do not.
func New() *Renderer {
	return &Renderer{policy: bluemonday.UGCPolicy()}
}

// Render returns the sanitized HTML form of the given author text.
func (r *Renderer) Render(text string) string {
	return r.policy.Sanitize(text)
}
