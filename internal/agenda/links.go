package agenda

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[A-Za-z0-9$\-_.+!*'(),;/?:@&=%#~]+`)

// Hosts considered remote conferencing providers. A URL counts only if
// its host equals one of these or is a subdomain of one.
var conferenceDomains = []string{
	"webex.com",
	"zoom.us",
	"jitsi.org",
	"meetecho.com",
	"gather.town",
}

// ExpandTemplate substitutes the literal placeholders {meeting.number},
// {group.acronym}, {short} and {order_number} with the corresponding
// event and meeting fields. A placeholder whose source field is empty is
// left in place untouched. Never fails; an empty template passes through.
func ExpandTemplate(template string, ev Event, meetingNumber string) string {
	if template == "" {
		return template
	}
	out := template
	out = replacePlaceholder(out, "{meeting.number}", meetingNumber)
	out = replacePlaceholder(out, "{group.acronym}", ev.GroupAcronym)
	out = replacePlaceholder(out, "{short}", ev.Short)
	if ev.OrderInMeeting > 0 {
		out = replacePlaceholder(out, "{order_number}", strconv.Itoa(ev.OrderInMeeting))
	}
	return out
}

func replacePlaceholder(s, placeholder, value string) string {
	if value == "" {
		return s
	}
	return strings.Replace(s, placeholder, value, 1)
}

// FindConferenceURL scans text for the first URL-shaped substring whose
// host belongs to a known conferencing provider. Malformed URLs are not
// an error, just "not found"; the empty string means no match.
func FindConferenceURL(text string) string {
	match := urlPattern.FindString(text)
	if match == "" {
		return ""
	}
	u, err := url.Parse(match)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range conferenceDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return match
		}
	}
	return ""
}

// resolveCallIn picks the remote call-in URL for an event. Organizer
// free text wins over the structured webex field because free text is
// more likely to be current: note, then remote instructions, then the
// literal links.webex value.
func resolveCallIn(ev Event) string {
	if u := FindConferenceURL(ev.Note); u != "" {
		return u
	}
	if u := FindConferenceURL(ev.RemoteInstructions); u != "" {
		return u
	}
	return ev.Links.Webex
}
