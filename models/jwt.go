package models

import "pixurl/images"

// URLClaims is the payload of a signed URL request token
type URLClaims struct {
	Issuer    string     `json:"iss"` // optional
	Subject   string     `json:"sub"`
	IssuedAt  int64      `json:"iat"`
	ExpiresAt int64      `json:"exp"`
	Request   URLRequest `json:"request"`
}

// URLRequest describes the image URLs a caller wants built
type URLRequest struct {
	Source string `json:"source"`

	// Preset names stored transform options; Options are applied on top
	Preset  string                  `json:"preset,omitempty"`
	Options images.TransformOptions `json:"options"`
}
