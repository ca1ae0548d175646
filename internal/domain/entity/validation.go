package entity

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// EmptyEditorMarkup is what the rich-text editor submits when the user typed nothing.
const EmptyEditorMarkup = "<p><br></p>"

// mediaSelector matches elements that carry content even without text.
const mediaSelector = "img, video, iframe, audio, picture, svg"

// ValidateURL validates an optional absolute URL for the given field.
// An empty value is accepted; a non-empty value must be an absolute http or https URL with a host.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return nil
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil || !parsedURL.IsAbs() {
		return &ValidationError{Field: field, Message: "must be a valid absolute URL"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: field, Message: "must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: field, Message: "must have a valid host"}
	}

	return nil
}

// ValidateTitle requires a non-blank title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	return nil
}

// ValidateContent requires rich-text content with visible text or media.
// The editor's empty sentinel and markup-only values such as "<p> </p>" count as empty.
func ValidateContent(content string) error {
	if ContentIsEmpty(content) {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}

// ContentIsEmpty reports whether content has no visible text and no media elements.
func ContentIsEmpty(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || trimmed == EmptyEditorMarkup {
		return true
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		// unparseable markup is still user input
		return false
	}
	if strings.TrimSpace(doc.Text()) != "" {
		return false
	}
	return doc.Find(mediaSelector).Length() == 0
}

// ValidateTimezone requires an IANA zone name that the runtime can load.
func ValidateTimezone(tz string) error {
	if strings.TrimSpace(tz) == "" {
		return &ValidationError{Field: "timezone", Message: "timezone is required"}
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return &ValidationError{Field: "timezone", Message: fmt.Sprintf("invalid timezone %q", tz)}
	}
	return nil
}

// Validate checks every content field of the announcement and returns all problems at once.
// Status and timestamps are governed by the transition table, not by this method.
func (a *Announcement) Validate() error {
	errs := ValidationErrors{}
	errs.Merge(ValidateTitle(a.Title))
	errs.Merge(ValidateContent(a.Content))
	if !a.Type.Valid() {
		errs.Add("type", "must be one of feature, update, news, bugfix")
	}
	if !a.Priority.Valid() {
		errs.Add("priority", "must be one of low, medium, high")
	}
	errs.Merge(ValidateTimezone(a.Timezone))
	errs.Merge(ValidateURL("imageUrl", a.ImageURL))
	errs.Merge(ValidateURL("linkUrl", a.LinkURL))
	return errs.Err()
}
