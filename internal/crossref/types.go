package crossref

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleString can unmarshal from either string or number JSON values.
// Crossref is loose about field types: volumes and article numbers come back
// as strings for most records and as bare numbers for a few.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Work is one entry returned by the works endpoint, limited to the fields
// the resolver selects.
type Work struct {
	DOI            string         `json:"DOI"`
	Title          []string       `json:"title"`
	ContainerTitle []string       `json:"container-title"`
	Issued         IssuedDate     `json:"issued"`
	Volume         FlexibleString `json:"volume"`
	Page           FlexibleString `json:"page"`
	ArticleNumber  FlexibleString `json:"article-number"`
	Authors        []Author       `json:"author"`
}

// Author is one contributor on a work.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// IssuedDate holds a CSL-style date: an array of [year, month, day] arrays,
// usually with a single element and often truncated to just the year.
type IssuedDate struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the issued year as a string, or "" when absent.
func (d IssuedDate) Year() string {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	y := d.DateParts[0][0]
	if y <= 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// IssuedYear returns the work's publication year as a string, or "".
func (w Work) IssuedYear() string {
	return w.Issued.Year()
}

// FirstTitle returns the first title, trimmed, or "".
func (w Work) FirstTitle() string {
	if len(w.Title) == 0 {
		return ""
	}
	return strings.TrimSpace(w.Title[0])
}

// FirstContainer returns the first container title, trimmed, or "".
func (w Work) FirstContainer() string {
	if len(w.ContainerTitle) == 0 {
		return ""
	}
	return strings.TrimSpace(w.ContainerTitle[0])
}

// worksResponse is the envelope the works endpoint wraps results in.
type worksResponse struct {
	Status  string `json:"status"`
	Message struct {
		Items []Work `json:"items"`
	} `json:"message"`
}
