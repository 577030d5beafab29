package wsconsole

import (
	"encoding/json"
	"fmt"
)

// Request is a message sent by a console client.
type Request struct {
	// Action is line to submit a line or complete to ask for completions of a partial command line.
	Action string `json:"action"`
	Params struct {
		Line string `json:"line"`
	} `json:"params"`
	Echo string `json:"echo"`
}

// Post is a message sent to console clients.
type Post struct {
	// PostType is message for strings forwarded to the console, response for answers to a request and
	// meta_event for connection events.
	PostType string   `json:"post_type"`
	Source   string   `json:"source,omitempty"`
	Message  string   `json:"message,omitempty"`
	Caught   bool     `json:"caught,omitempty"`
	Suggest  []string `json:"suggest,omitempty"`
	Echo     string   `json:"echo,omitempty"`
	// MetaEventType is lifecycle for the first post of a connection.
	MetaEventType string `json:"meta_event_type,omitempty"`
}

func ParseRequest(data []byte) (Request, error) {
	req := Request{}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	switch req.Action {
	case "line", "complete":
		return req, nil
	}
	return req, fmt.Errorf("unknown action %q", req.Action)
}
