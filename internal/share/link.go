package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// OnlineMarker is the fragment prefix that puts the app in online-worksheet
// mode. It is matched literally.
const OnlineMarker = "#/online/"

// SoftLinkLimit is the length above which some browsers, chat apps and QR
// scanners start to truncate links. Longer links are still produced.
const SoftLinkLimit = 2000

// ErrNoMarker means a link does not contain OnlineMarker.
var ErrNoMarker = errors.New("share: link is not an online worksheet link")

// Link is a shareable worksheet URL.
type Link struct {
	URL   string
	Token string
}

// TooLong reports whether the link exceeds SoftLinkLimit.
func (l Link) TooLong() bool {
	return len(l.URL) > SoftLinkLimit
}

// Warning returns a human-readable note for over-long links, or "".
func (l Link) Warning() string {
	if !l.TooLong() {
		return ""
	}
	return fmt.Sprintf("link is %d characters; some apps truncate links longer than %d", len(l.URL), SoftLinkLimit)
}

// BuildLink encodes ws and appends the token to base, which supplies the
// origin and path. Any query or fragment on base is dropped.
func BuildLink(base string, ws *worksheet.Worksheet) (Link, error) {
	tok, err := Encode(ws)
	if err != nil {
		return Link{}, err
	}
	u, err := url.Parse(base)
	if err != nil {
		return Link{}, fmt.Errorf("parse base URL: %w", err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	return Link{URL: u.String() + OnlineMarker + tok, Token: tok}, nil
}

// ExtractToken returns the token following OnlineMarker in link.
func ExtractToken(link string) (string, error) {
	i := strings.Index(link, OnlineMarker)
	if i < 0 {
		return "", ErrNoMarker
	}
	return strings.TrimSpace(link[i+len(OnlineMarker):]), nil
}

// ResolveToken accepts either a full link or a bare token.
func ResolveToken(input string) string {
	input = strings.TrimSpace(input)
	if tok, err := ExtractToken(input); err == nil {
		return tok
	}
	return input
}

// DecodeLink extracts the token from link and decodes it.
func DecodeLink(link string) (*Projection, error) {
	tok, err := ExtractToken(link)
	if err != nil {
		return nil, err
	}
	return Decode(tok)
}

// RouteKind distinguishes the views a fragment can select.
type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteOnline
)

// Route is the view selected by a URL fragment.
type Route struct {
	Kind  RouteKind
	Token string
}

// ParseRoute maps a URL or bare fragment to a route. Anything without the
// online marker is the home route.
func ParseRoute(s string) Route {
	tok, err := ExtractToken(s)
	if err != nil {
		return Route{Kind: RouteHome}
	}
	return Route{Kind: RouteOnline, Token: tok}
}

// Fragment renders the route back into a URL fragment.
func (r Route) Fragment() string {
	if r.Kind == RouteOnline {
		return OnlineMarker + r.Token
	}
	return "#/"
}
