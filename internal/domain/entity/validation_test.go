package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "empty URL is optional", url: "", wantErr: false},
		{name: "valid https URL", url: "https://example.com/image.png", wantErr: false},
		{name: "valid http URL with port", url: "http://example.com:8080/changelog", wantErr: false},
		{name: "valid URL with query", url: "https://example.com/docs?section=billing", wantErr: false},
		{name: "relative path", url: "/docs/new", wantErr: true},
		{name: "no scheme", url: "example.com/docs", wantErr: true},
		{name: "invalid scheme - ftp", url: "ftp://example.com/file", wantErr: true},
		{name: "invalid scheme - javascript", url: "javascript:alert(1)", wantErr: true},
		{name: "no host", url: "https://", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", maxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL("linkUrl", tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("want *ValidationError, got %T", err)
			}
			if ve.Field != "linkUrl" {
				t.Errorf("Field = %q, want %q", ve.Field, "linkUrl")
			}
		})
	}
}

func TestContentIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "empty", content: "", want: true},
		{name: "whitespace", content: "  \n\t", want: true},
		{name: "editor sentinel", content: "<p><br></p>", want: true},
		{name: "markup without text", content: "<p> </p><div></div>", want: true},
		{name: "plain text", content: "Dark mode is here", want: false},
		{name: "paragraph", content: "<p>Dark mode is <strong>here</strong></p>", want: false},
		{name: "image only", content: `<p><img src="https://example.com/a.png"></p>`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentIsEmpty(tt.content); got != tt.want {
				t.Errorf("ContentIsEmpty(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if err := ValidateTimezone("Europe/Berlin"); err != nil {
		t.Fatalf("Europe/Berlin: %v", err)
	}
	if err := ValidateTimezone("UTC"); err != nil {
		t.Fatalf("UTC: %v", err)
	}
	if err := ValidateTimezone("Mars/Olympus_Mons"); err == nil {
		t.Fatal("want error for unknown zone")
	}
	if err := ValidateTimezone(" "); err == nil {
		t.Fatal("want error for blank zone")
	}
}

func validAnnouncement() *Announcement {
	return &Announcement{
		Title:    "Dark mode",
		Content:  "<p>Now available</p>",
		Type:     TypeFeature,
		Priority: PriorityMedium,
		Status:   StatusDraft,
		Timezone: "UTC",
	}
}

func TestAnnouncement_Validate_OK(t *testing.T) {
	if err := validAnnouncement().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestAnnouncement_Validate_EmptyTitleOnly(t *testing.T) {
	a := validAnnouncement()
	a.Title = "   "

	err := a.Validate()
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationErrors, got %T (%v)", err, err)
	}
	if len(ve) != 1 {
		t.Fatalf("want exactly one field error, got %v", ve)
	}
	if _, ok := ve["title"]; !ok {
		t.Fatalf("want title error, got %v", ve)
	}
}

func TestAnnouncement_Validate_CollectsAll(t *testing.T) {
	a := validAnnouncement()
	a.Title = ""
	a.Content = EmptyEditorMarkup
	a.ImageURL = "not a url"
	a.LinkURL = "mailto:team@example.com"
	a.Type = "rumor"
	a.Priority = "urgent"
	a.Timezone = "Nowhere/City"

	err := a.Validate()
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationErrors, got %T", err)
	}
	for _, field := range []string{"title", "content", "imageUrl", "linkUrl", "type", "priority", "timezone"} {
		if _, ok := ve[field]; !ok {
			t.Errorf("missing error for %s in %v", field, ve)
		}
	}
	if !errors.Is(err, ErrValidationFailed) {
		t.Error("errors.Is(err, ErrValidationFailed) = false")
	}
}

func TestValidationErrors_ErrorIsStable(t *testing.T) {
	ve := ValidationErrors{}
	ve.Add("title", "title is required")
	ve.Add("content", "content is required")
	ve.Add("title", "ignored")

	want := "validation failed: content: content is required; title: title is required"
	if got := ve.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if (ValidationErrors{}).Err() != nil {
		t.Error("empty collection must yield nil error")
	}
}

func TestValidationErrors_MergeCollection(t *testing.T) {
	ve := ValidationErrors{}
	ve.Merge(ValidationErrors{"title": "title is required"})
	ve.Merge(&ValidationError{Field: "scheduledAt", Message: "too soon"})
	ve.Merge(errors.New("unrelated"))
	ve.Merge(nil)

	if len(ve) != 2 {
		t.Fatalf("want 2 fields, got %v", ve)
	}
}
