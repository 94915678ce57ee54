package api

import (
	_ "embed"
	"encoding/base64"
	"net/url"
	"strings"
	"time"
)

//go:embed thumbnail.png
var thumbnailPNG []byte

/*
	ThumbData is the "thumb_data" field sent with every save: a blank
	placeholder PNG as a data URL.  It says nothing about the graph; the
	service renders its own thumbnail later.
*/
var ThumbData = "data:image/png;base64," + base64.StdEncoding.EncodeToString(thumbnailPNG)

// Fixed form fields of a save request.
const (
	SaveLang    = "en"
	SaveProduct = "graphing"
)

/*
	SavePayload assembles the form-encoded body of a save request from an
	already-encoded state and its graph hash.

	Fields appear in the order the service's own client sends them:
	thumb_data, my_graphs, is_update, calc_state, lang, product, graph_hash.
	Values are escaped with standard form url-encoding.
*/
func SavePayload(state, graphHash string) string {
	fields := [...][2]string{
		{"thumb_data", ThumbData},
		{"my_graphs", "false"},
		{"is_update", "false"},
		{"calc_state", state},
		{"lang", SaveLang},
		{"product", SaveProduct},
		{"graph_hash", graphHash},
	}
	var buf strings.Builder
	for i, kv := range fields {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(kv[0]))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(kv[1]))
	}
	return buf.String()
}

/*
	BuildSavePayload encodes `items`, fingerprints the state at time `at`,
	and returns the complete save body.
*/
func BuildSavePayload(items []Item, at time.Time) (string, error) {
	state, err := EncodeState(items)
	if err != nil {
		return "", err
	}
	return SavePayload(state, GraphHash(state, at)), nil
}
