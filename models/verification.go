package models

import (
	"strings"
	"time"
)

// InputType is the kind of material submitted for checking.
type InputType string

const (
	InputURL   InputType = "url"
	InputText  InputType = "text"
	InputImage InputType = "image"
)

// ParseInputType maps a user-supplied label onto an InputType.
func ParseInputType(s string) (InputType, bool) {
	switch t := InputType(strings.ToLower(strings.TrimSpace(s))); t {
	case InputURL, InputText, InputImage:
		return t, true
	default:
		return "", false
	}
}

// Classification is the three-way label returned by the remote workflow.
type Classification string

const (
	ClassVerified                Classification = "Verified"
	ClassPotentialMisinformation Classification = "Potential Misinformation"
	ClassUnverified              Classification = "Unverified"
)

// Origin records which path produced a result.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

// VerificationRequest is a single submission.
// For images Content carries a placeholder and FileName the file reference.
type VerificationRequest struct {
	InputType InputType `json:"inputType" validate:"required,oneof=url text image"`
	Content   string    `json:"content"`
	FileName  string    `json:"fileName,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewVerificationRequest fills in the derived image content and the timestamp.
func NewVerificationRequest(t InputType, content, fileName string, now time.Time) VerificationRequest {
	req := VerificationRequest{InputType: t, Content: content, FileName: fileName, Timestamp: now.UTC()}
	if t == InputImage {
		name := fileName
		if name == "" {
			name = "uploaded image"
		}
		req.Content = "Image file: " + name
	}
	return req
}

// Subject is the raw material the user supplied: the file name for images, the content otherwise.
func (r VerificationRequest) Subject() string {
	if r.InputType == InputImage {
		return r.FileName
	}
	return r.Content
}

// Source is a reference shown alongside a verdict.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// VerificationResult is the canonical shape every path produces.
type VerificationResult struct {
	IsTrue         bool           `json:"isTrue"`
	Confidence     int            `json:"confidence"`
	Classification Classification `json:"classification,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	Sources        []Source       `json:"sources"`
	Origin         Origin         `json:"origin"`
}

// FallbackSource is injected when a result would otherwise carry no sources.
var FallbackSource = Source{Name: "AI Analysis Complete", URL: "#"}

// Normalize enforces the result invariants: confidence within [0,100] and at least one source.
func (r VerificationResult) Normalize() VerificationResult {
	switch {
	case r.Confidence < 0:
		r.Confidence = 0
	case r.Confidence > 100:
		r.Confidence = 100
	}
	if len(r.Sources) == 0 {
		r.Sources = []Source{FallbackSource}
	}
	return r
}
