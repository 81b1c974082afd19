// Package payload turns typed form data into the wire string a symbol encodes.
package payload

import (
	"fmt"
	"strings"
	"time"
)

type DataType string

const (
	Text        DataType = "text"
	WiFi        DataType = "wifi"
	SMS         DataType = "sms"
	Phone       DataType = "phone"
	Email       DataType = "email"
	VCard       DataType = "vcard"
	Geolocation DataType = "geolocation"
	Event       DataType = "event"
	WhatsApp    DataType = "whatsapp"
	Facebook    DataType = "facebook"
	Twitter     DataType = "twitter"
	Instagram   DataType = "instagram"
	LinkedIn    DataType = "linkedin"
	YouTube     DataType = "youtube"
	TikTok      DataType = "tiktok"
)

// DataTypes lists every supported type in menu order.
var DataTypes = []DataType{
	Text, WiFi, SMS, Phone, Email, VCard, Geolocation, Event,
	WhatsApp, Facebook, Twitter, Instagram, LinkedIn, YouTube, TikTok,
}

// DefaultText is the content a fresh text payload starts with.
const DefaultText = "camly.in"

func ParseDataType(s string) (DataType, error) {
	for _, dt := range DataTypes {
		if strings.EqualFold(string(dt), s) {
			return dt, nil
		}
	}
	return "", fmt.Errorf("unknown data type %q", s)
}

// Fields is the union of all form fields. Each data type reads only its own.
type Fields struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty" form:"text"`

	WiFiSSID       string `json:"wifiSsid,omitempty" yaml:"wifiSsid,omitempty" form:"wifiSsid"`
	WiFiPassword   string `json:"wifiPassword,omitempty" yaml:"wifiPassword,omitempty" form:"wifiPassword"`
	WiFiEncryption string `json:"wifiEncryption,omitempty" yaml:"wifiEncryption,omitempty" form:"wifiEncryption"`

	SMSPhone   string `json:"smsPhone,omitempty" yaml:"smsPhone,omitempty" form:"smsPhone"`
	SMSMessage string `json:"smsMessage,omitempty" yaml:"smsMessage,omitempty" form:"smsMessage"`

	Phone string `json:"phone,omitempty" yaml:"phone,omitempty" form:"phone"`

	EmailTo      string `json:"emailTo,omitempty" yaml:"emailTo,omitempty" form:"emailTo"`
	EmailSubject string `json:"emailSubject,omitempty" yaml:"emailSubject,omitempty" form:"emailSubject"`
	EmailBody    string `json:"emailBody,omitempty" yaml:"emailBody,omitempty" form:"emailBody"`

	FirstName    string `json:"firstName,omitempty" yaml:"firstName,omitempty" form:"firstName"`
	LastName     string `json:"lastName,omitempty" yaml:"lastName,omitempty" form:"lastName"`
	Organization string `json:"org,omitempty" yaml:"org,omitempty" form:"org"`
	Title        string `json:"title,omitempty" yaml:"title,omitempty" form:"title"`
	WorkPhone    string `json:"workPhone,omitempty" yaml:"workPhone,omitempty" form:"workPhone"`
	ContactEmail string `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty" form:"contactEmail"`
	Website      string `json:"website,omitempty" yaml:"website,omitempty" form:"website"`
	Address      string `json:"address,omitempty" yaml:"address,omitempty" form:"address"`

	Latitude  string `json:"latitude,omitempty" yaml:"latitude,omitempty" form:"latitude"`
	Longitude string `json:"longitude,omitempty" yaml:"longitude,omitempty" form:"longitude"`

	EventTitle       string `json:"eventTitle,omitempty" yaml:"eventTitle,omitempty" form:"eventTitle"`
	EventLocation    string `json:"eventLocation,omitempty" yaml:"eventLocation,omitempty" form:"eventLocation"`
	EventStart       string `json:"eventStart,omitempty" yaml:"eventStart,omitempty" form:"eventStart"`
	EventEnd         string `json:"eventEnd,omitempty" yaml:"eventEnd,omitempty" form:"eventEnd"`
	EventDescription string `json:"eventDescription,omitempty" yaml:"eventDescription,omitempty" form:"eventDescription"`
	// EventZone, when set to an IANA zone, converts EventStart/EventEnd from
	// that zone to UTC instead of suffixing the local time with "00Z".
	EventZone string `json:"eventZone,omitempty" yaml:"eventZone,omitempty" form:"eventZone"`

	WhatsAppPhone  string `json:"whatsappPhone,omitempty" yaml:"whatsappPhone,omitempty" form:"whatsappPhone"`
	SocialUsername string `json:"username,omitempty" yaml:"username,omitempty" form:"username"`
	YouTubeURL     string `json:"youtubeUrl,omitempty" yaml:"youtubeUrl,omitempty" form:"youtubeUrl"`
}

// Encode builds the symbol content for dt. It never fails: blank fields
// produce partial strings.
func Encode(dt DataType, f Fields) string {
	switch dt {
	case WiFi:
		enc := f.WiFiEncryption
		if enc == "" {
			enc = "WPA"
		}
		return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;;", enc, f.WiFiSSID, f.WiFiPassword)
	case SMS:
		return fmt.Sprintf("SMSTO:%s:%s", f.SMSPhone, f.SMSMessage)
	case Phone:
		return "tel:" + f.Phone
	case Email:
		return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
			f.EmailTo, encodeURIComponent(f.EmailSubject), encodeURIComponent(f.EmailBody))
	case VCard:
		return encodeVCard(f)
	case Geolocation:
		return fmt.Sprintf("geo:%s,%s", f.Latitude, f.Longitude)
	case Event:
		return encodeEvent(f)
	case WhatsApp:
		return "https://wa.me/" + f.WhatsAppPhone
	case Facebook:
		return "https://www.facebook.com/" + f.SocialUsername
	case Twitter:
		return "https://twitter.com/" + f.SocialUsername
	case Instagram:
		return "https://www.instagram.com/" + f.SocialUsername
	case LinkedIn:
		return "https://www.linkedin.com/in/" + f.SocialUsername
	case YouTube:
		return f.YouTubeURL
	case TikTok:
		return "https://www.tiktok.com/@" + f.SocialUsername
	default:
		return f.Text
	}
}

// Seed is the content shown right after switching to dt. Social and
// structured types start empty; the simple ones encode their current fields.
func Seed(dt DataType, f Fields) string {
	switch dt {
	case Text, "":
		return DefaultText
	case WiFi, SMS, Phone, Email:
		return Encode(dt, f)
	default:
		return ""
	}
}

type lineBuilder struct {
	lines []string
}

func (b *lineBuilder) add(line string) {
	b.lines = append(b.lines, line)
}

func (b *lineBuilder) addIf(key, value string) {
	if value != "" {
		b.lines = append(b.lines, key+":"+value)
	}
}

func (b *lineBuilder) String() string {
	return strings.Join(b.lines, "\n")
}

func encodeVCard(f Fields) string {
	var b lineBuilder
	b.add("BEGIN:VCARD")
	b.add("VERSION:3.0")
	b.add(fmt.Sprintf("N:%s;%s", f.LastName, f.FirstName))
	b.add(fmt.Sprintf("FN:%s %s", f.FirstName, f.LastName))
	b.addIf("ORG", f.Organization)
	b.addIf("TITLE", f.Title)
	b.addIf("TEL;TYPE=WORK,VOICE", f.WorkPhone)
	b.addIf("EMAIL", f.ContactEmail)
	b.addIf("URL", f.Website)
	if f.Address != "" {
		b.add("ADR;TYPE=WORK:;;" + f.Address)
	}
	b.add("END:VCARD")
	return b.String()
}

func encodeEvent(f Fields) string {
	var b lineBuilder
	b.add("BEGIN:VCALENDAR")
	b.add("VERSION:2.0")
	b.add("BEGIN:VEVENT")
	b.addIf("SUMMARY", f.EventTitle)
	b.addIf("LOCATION", f.EventLocation)
	if f.EventStart != "" {
		b.add("DTSTART:" + eventTimestamp(f.EventStart, f.EventZone))
	}
	if f.EventEnd != "" {
		b.add("DTEND:" + eventTimestamp(f.EventEnd, f.EventZone))
	}
	b.addIf("DESCRIPTION", f.EventDescription)
	b.add("END:VEVENT")
	b.add("END:VCALENDAR")
	return b.String()
}

// eventLayouts are the datetime-local shapes accepted for zone conversion.
var eventLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// eventTimestamp renders a datetime-local value as an iCalendar UTC stamp.
// Without a zone the wall-clock time is kept and labelled UTC.
func eventTimestamp(v, zone string) string {
	if zone != "" {
		if loc, err := time.LoadLocation(zone); err == nil {
			for _, layout := range eventLayouts {
				if t, err := time.ParseInLocation(layout, v, loc); err == nil {
					return t.UTC().Format("20060102T150405Z")
				}
			}
		}
	}
	r := strings.NewReplacer("-", "", ":", "")
	return r.Replace(v) + "00Z"
}
