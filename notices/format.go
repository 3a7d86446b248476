package notices

import "encoding/xml"

// Format renders the nation as indented XML for the console.
func Format(nation Nation) (string, error) {
	out, err := xml.MarshalIndent(nation, "", "    ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
