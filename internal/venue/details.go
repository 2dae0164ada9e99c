package venue

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SizeClass buckets venues by capacity for descriptive copy.
type SizeClass string

const (
	SizeIntimate   SizeClass = "intimate"
	SizeMid        SizeClass = "mid-size"
	SizeLargeScale SizeClass = "large-scale"
)

// Size returns the venue's size class. Unknown capacity counts as intimate.
func (v Venue) Size() SizeClass {
	switch c := v.CapacityOrZero(); {
	case c > 5000:
		return SizeLargeScale
	case c > 1000:
		return SizeMid
	default:
		return SizeIntimate
	}
}

// Details is the derived presentation of a single venue.
type Details struct {
	Size           SizeClass `json:"size"`
	Description    string    `json:"description"`
	PhoneLink      string    `json:"phone_link"`
	WebsiteLink    string    `json:"website_link"`
	MapLink        string    `json:"map_link"`
	InquirySubject string    `json:"inquiry_subject"`
	InquiryBody    string    `json:"inquiry_body"`
	InquiryMailto  string    `json:"inquiry_mailto"`
}

// Describe derives the detail view of v. Missing contact fields fall back to
// web search links.
func Describe(v Venue) Details {
	subject, body := inquiry(v)
	return Details{
		Size:           v.Size(),
		Description:    description(v),
		PhoneLink:      phoneLink(v),
		WebsiteLink:    websiteLink(v),
		MapLink:        mapLink(v),
		InquirySubject: subject,
		InquiryBody:    body,
		InquiryMailto:  "mailto:?subject=" + escapeComponent(subject) + "&body=" + escapeComponent(body),
	}
}

// FormatCapacity renders the capacity with thousands separators, or
// fallback when unknown.
func FormatCapacity(v Venue, fallback string) string {
	if v.Capacity == nil || *v.Capacity == 0 {
		return fallback
	}
	return message.NewPrinter(language.English).Sprintf("%d", *v.Capacity)
}

func description(v Venue) string {
	var setting, purpose string
	switch v.Size() {
	case SizeLargeScale:
		setting, purpose = "large-scale", "major concerts and festivals"
	case SizeMid:
		setting, purpose = "mid-size", "concerts and live performances"
	default:
		setting, purpose = "intimate", "club shows and intimate performances"
	}

	stage := v.StageSize
	if stage == "" {
		stage = "professional"
	}
	loadIn := v.LoadIn
	if loadIn == "" {
		loadIn = "convenient"
	}

	return fmt.Sprintf(
		"%s is a %s located in %s with a capacity of %s. "+
			"This venue offers a %s setting perfect for %s. "+
			"The %s stage provides ample space for your artists, and the %s load-in access makes setup convenient for your crew.",
		v.Name, strings.ToLower(string(v.VenueType)), v.City, FormatCapacity(v, "various sizes"),
		setting, purpose,
		stage, loadIn,
	)
}

func phoneLink(v Venue) string {
	if v.Phone != "" {
		return "tel:" + v.Phone
	}
	return googleSearch(v.Name + " " + v.City + " phone number")
}

func websiteLink(v Venue) string {
	if v.Website != "" {
		return v.Website
	}
	return googleSearch(v.Name + " " + v.City + " official website")
}

func mapLink(v Venue) string {
	if v.Lat != 0 && v.Lon != 0 {
		return "https://www.google.com/maps?q=" +
			strconv.FormatFloat(v.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(v.Lon, 'f', -1, 64)
	}
	return "https://www.google.com/maps/search/" + escapeComponent(v.Name+" "+v.City+" location")
}

func inquiry(v Venue) (subject, body string) {
	subject = "Booking Inquiry - " + v.Name
	body = "Hello,\n\n" +
		"I am interested in booking " + v.Name + " for a music performance.\n\n" +
		"Venue Details:\n" +
		"- Name: " + v.Name + "\n" +
		"- City: " + v.City + "\n" +
		"- Capacity: " + FormatCapacity(v, "Various") + "\n" +
		"- Venue Type: " + string(v.VenueType) + "\n\n" +
		"Please contact me to discuss availability and pricing.\n\n" +
		"Thank you!"
	return subject, body
}

func googleSearch(q string) string {
	return "https://www.google.com/search?q=" + escapeComponent(q)
}

// escapeComponent percent-encodes s with spaces as %20, which mail clients
// and map links expect.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
