// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package proxy is a pass-through reverse proxy that rewrites the service
// URLs in a decoded <response><services> tree before relaying it, ported
// from original_source/proxy.py's modify function.
package proxy

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"

	"github.com/hiiragi-go/hiiragi/charset"
	"github.com/hiiragi-go/hiiragi/envelope"
	"github.com/hiiragi-go/hiiragi/node"
)

// skippedItemNames are left untouched by Rewrite: the NTP endpoint is a
// literal URI scheme the client dials directly, and keepalive's URL embeds
// its own query parameters the target expects verbatim.
var skippedItemNames = map[string]bool{
	"ntp":       true,
	"keepalive": true,
}

// Rewrite walks a decoded response tree and replaces the url attribute of
// every <item> child of <services> (except ntp/keepalive) by calling
// rewrite on its current value. It reports false, leaving tree untouched,
// if tree isn't shaped like a services response — the same "bail" behavior
// as the source's modify().
func Rewrite(tree *node.Node, rewrite func(url string) string) bool {
	if tree == nil || tree.Name() != "response" {
		return false
	}
	children := tree.Children()
	if len(children) == 0 {
		return false
	}
	body := children[0]
	if body.Name() != "services" {
		return false
	}
	for _, child := range body.Children() {
		if child.Name() != "item" {
			continue
		}
		if skippedItemNames[child.Attribute("name")] {
			continue
		}
		child.SetAttribute("url", rewrite(child.Attribute("url")))
	}
	return true
}

// ReverseProxy builds an httputil.ReverseProxy targeting target whose
// ModifyResponse hook decodes the response's node tree, applies Rewrite
// (passed through rewriteURL), and re-encodes it uncompressed as Shift-JIS
// XML — mirroring the source proxy's unconditional re-encode choice.
func ReverseProxy(target *url.URL, rewriteURL func(string) string) *httputil.ReverseProxy {
	rp := httputil.NewSingleHostReverseProxy(target)
	rp.ModifyResponse = func(resp *http.Response) error {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		resp.Body.Close()

		compressed := resp.Header.Get("X-Compress") == "lz77"
		tree, _, err := envelope.Decode(compressed, body)
		if err != nil {
			// Not a decodable e-amuse packet; pass the original bytes through
			// unmodified rather than failing the whole response.
			resp.Body = io.NopCloser(bytes.NewReader(body))
			resp.ContentLength = int64(len(body))
			resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
			return nil
		}

		Rewrite(tree, rewriteURL)

		out, err := envelope.Encode(tree, charset.ShiftJIS, envelope.XML, false)
		if err != nil {
			return err
		}
		resp.Body = io.NopCloser(bytes.NewReader(out))
		resp.ContentLength = int64(len(out))
		resp.Header.Set("Content-Length", strconv.Itoa(len(out)))
		resp.Header.Set("X-Compress", "none")
		return nil
	}
	return rp
}
