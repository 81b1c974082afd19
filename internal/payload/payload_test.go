package payload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		dt   DataType
		f    Fields
		want string
	}{
		{"wifi", WiFi, Fields{WiFiSSID: "Home", WiFiPassword: "pw", WiFiEncryption: "WPA"}, "WIFI:T:WPA;S:Home;P:pw;;"},
		{"wifi default encryption", WiFi, Fields{WiFiSSID: "Cafe"}, "WIFI:T:WPA;S:Cafe;P:;;"},
		{"wifi open", WiFi, Fields{WiFiSSID: "Open", WiFiEncryption: "nopass"}, "WIFI:T:nopass;S:Open;P:;;"},
		{"geo", Geolocation, Fields{Latitude: "40.7128", Longitude: "-74.0060"}, "geo:40.7128,-74.0060"},
		{"sms", SMS, Fields{SMSPhone: "+15550100", SMSMessage: "hi there"}, "SMSTO:+15550100:hi there"},
		{"phone", Phone, Fields{Phone: "+15550100"}, "tel:+15550100"},
		{"email", Email, Fields{EmailTo: "a@b.co", EmailSubject: "Hello World", EmailBody: "x&y=z"},
			"mailto:a@b.co?subject=Hello%20World&body=x%26y%3Dz"},
		{"email blank", Email, Fields{}, "mailto:?subject=&body="},
		{"whatsapp", WhatsApp, Fields{WhatsAppPhone: "15550100"}, "https://wa.me/15550100"},
		{"facebook", Facebook, Fields{SocialUsername: "gopher"}, "https://www.facebook.com/gopher"},
		{"twitter", Twitter, Fields{SocialUsername: "gopher"}, "https://twitter.com/gopher"},
		{"instagram", Instagram, Fields{SocialUsername: "gopher"}, "https://www.instagram.com/gopher"},
		{"linkedin", LinkedIn, Fields{SocialUsername: "gopher"}, "https://www.linkedin.com/in/gopher"},
		{"tiktok", TikTok, Fields{SocialUsername: "gopher"}, "https://www.tiktok.com/@gopher"},
		{"youtube", YouTube, Fields{YouTubeURL: "https://youtu.be/x"}, "https://youtu.be/x"},
		{"text", Text, Fields{Text: "camly.in"}, "camly.in"},
		{"unknown falls back to text", DataType("other"), Fields{Text: "raw"}, "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.dt, tt.f))
			assert.Equal(t, Encode(tt.dt, tt.f), Encode(tt.dt, tt.f))
		})
	}
}

func TestEncodeVCardOmitsEmptyLines(t *testing.T) {
	got := Encode(VCard, Fields{FirstName: "Jane", LastName: "Doe", ContactEmail: "jane@example.com"})

	assert.Equal(t, "BEGIN:VCARD\nVERSION:3.0\nN:Doe;Jane\nFN:Jane Doe\nEMAIL:jane@example.com\nEND:VCARD", got)
	assert.NotContains(t, got, "ORG")
	assert.NotContains(t, got, "TEL")
	assert.NotContains(t, got, "ADR")
}

func TestEncodeVCardFull(t *testing.T) {
	got := Encode(VCard, Fields{
		FirstName: "Jane", LastName: "Doe", Organization: "Acme", Title: "CTO",
		WorkPhone: "+1 555", ContactEmail: "j@acme.io", Website: "acme.io", Address: "1 Main St",
	})
	lines := strings.Split(got, "\n")
	assert.Equal(t, []string{
		"BEGIN:VCARD", "VERSION:3.0", "N:Doe;Jane", "FN:Jane Doe", "ORG:Acme", "TITLE:CTO",
		"TEL;TYPE=WORK,VOICE:+1 555", "EMAIL:j@acme.io", "URL:acme.io", "ADR;TYPE=WORK:;;1 Main St", "END:VCARD",
	}, lines)
}

func TestEncodeEvent(t *testing.T) {
	got := Encode(Event, Fields{EventTitle: "Launch", EventStart: "2024-12-31T18:30"})
	assert.Equal(t, "BEGIN:VCALENDAR\nVERSION:2.0\nBEGIN:VEVENT\nSUMMARY:Launch\nDTSTART:20241231T183000Z\nEND:VEVENT\nEND:VCALENDAR", got)
	assert.NotContains(t, got, "LOCATION")
	assert.NotContains(t, got, "DTEND")
	assert.NotContains(t, got, "DESCRIPTION")
}

func TestEncodeEventWithZone(t *testing.T) {
	got := Encode(Event, Fields{EventStart: "2024-07-01T12:00", EventEnd: "2024-07-01T13:15", EventZone: "Europe/Berlin"})
	assert.Contains(t, got, "DTSTART:20240701T100000Z")
	assert.Contains(t, got, "DTEND:20240701T111500Z")
}

func TestEncodeEventBadZoneKeepsWallClock(t *testing.T) {
	got := Encode(Event, Fields{EventStart: "2024-07-01T12:00", EventZone: "Mars/Olympus"})
	assert.Contains(t, got, "DTSTART:20240701T120000Z")
}

func TestSeed(t *testing.T) {
	assert.Equal(t, DefaultText, Seed(Text, Fields{Text: "ignored"}))
	assert.Equal(t, "WIFI:T:WPA;S:;P:;;", Seed(WiFi, Fields{}))
	assert.Equal(t, "tel:", Seed(Phone, Fields{}))
	assert.Equal(t, "", Seed(VCard, Fields{FirstName: "x"}))
	assert.Equal(t, "", Seed(TikTok, Fields{}))
}

func TestParseDataType(t *testing.T) {
	dt, err := ParseDataType("WiFi")
	require.NoError(t, err)
	assert.Equal(t, WiFi, dt)

	_, err = ParseDataType("fax")
	assert.Error(t, err)
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a-b_c.d!e~f*g'h(i)j", encodeURIComponent("a-b_c.d!e~f*g'h(i)j"))
	assert.Equal(t, "%20%2F%3F%23%C3%A9", encodeURIComponent(" /?#é"))
}
