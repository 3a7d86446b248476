package notices

import "encoding/xml"

// Nation is the root element returned by the q=notices shard.
type Nation struct {
	XMLName xml.Name `xml:"NATION"`
	ID      string   `xml:"id,attr"`
	Groups  []Group  `xml:"NOTICES"`
}

// Group is a single NOTICES element.
type Group struct {
	Notices []Notice `xml:"NOTICE"`
}

// Notice is one alert shown on the nation's notices page.
type Notice struct {
	// New is set while the notice is unread. Only its presence matters.
	New       *string `xml:"NEW,omitempty"`
	OK        string  `xml:"OK,omitempty"`
	Text      string  `xml:"TEXT,omitempty"`
	Timestamp string  `xml:"TIMESTAMP,omitempty"`
	Title     string  `xml:"TITLE,omitempty"`
	Type      string  `xml:"TYPE"`
	TypeIcon  string  `xml:"TYPE_ICON,omitempty"`
	URL       string  `xml:"URL,omitempty"`
	Who       string  `xml:"WHO,omitempty"`
	WhoURL    string  `xml:"WHO_URL,omitempty"`
}

// Notice types the API is known to send.
const (
	TypeInformational = "I"
	TypeUpdate        = "U"
)

// IsNew reports whether the notice is unread.
func (n Notice) IsNew() bool {
	return n.New != nil
}

// Count returns the number of notices across all groups.
func (n Nation) Count() int {
	var total int
	for _, g := range n.Groups {
		total += len(g.Notices)
	}
	return total
}

// Parse decodes a notices shard response body.
func Parse(data []byte) (Nation, error) {
	var n Nation
	if err := xml.Unmarshal(data, &n); err != nil {
		return Nation{}, err
	}
	return n, nil
}
