// Package twiml builds the markup documents the telephony provider fetches for
// call instructions and message auto-replies. Documents are marshalled with
// encoding/xml so user-supplied text is always escaped.
package twiml

import (
	"encoding/xml"
	"fmt"
)

// Say speaks a line of text during a connected call.
type Say struct {
	XMLName  xml.Name `xml:"Say"`
	Voice    string   `xml:"voice,attr,omitempty"`
	Language string   `xml:"language,attr,omitempty"`
	Text     string   `xml:",chardata"`
}

// Pause inserts a silent gap, in seconds.
type Pause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr"`
}

// Message is the reply body of a messaging response.
type Message struct {
	XMLName xml.Name `xml:"Message"`
	Body    string   `xml:",chardata"`
}

// Response is the root document returned to the provider.
type Response struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any
}

// NewResponse returns an empty response document.
func NewResponse() *Response {
	return &Response{}
}

// Say appends a spoken line.
func (r *Response) Say(text, voice, language string) *Response {
	r.Verbs = append(r.Verbs, Say{Text: text, Voice: voice, Language: language})
	return r
}

// Pause appends a pause of the given length in seconds.
func (r *Response) Pause(seconds int) *Response {
	r.Verbs = append(r.Verbs, Pause{Length: seconds})
	return r
}

// Message appends an auto-reply message body.
func (r *Response) Message(body string) *Response {
	r.Verbs = append(r.Verbs, Message{Body: body})
	return r
}

// Render marshals the document, prefixed with the XML declaration.
func (r *Response) Render() (string, error) {
	out, err := xml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("twiml: marshal response: %w", err)
	}
	return xml.Header + string(out), nil
}
