// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package proxy

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hiiragi-go/hiiragi/charset"
	"github.com/hiiragi-go/hiiragi/envelope"
	"github.com/hiiragi-go/hiiragi/node"
)

func servicesTree() *node.Node {
	response := node.Void("response")
	services := node.Void("services")
	for _, item := range []struct{ name, url string }{
		{"ntp", "ntp://pool.ntp.org/"},
		{"keepalive", "http://127.0.0.1/core/keepalive"},
		{"cardmng", "http://localhost:8082"},
		{"facility", "http://localhost:8082"},
	} {
		n := node.Void("item")
		n.SetAttribute("name", item.name)
		n.SetAttribute("url", item.url)
		services.AddChild(n)
	}
	response.AddChild(services)
	return response
}

func rewriteLocalPort(url string) string {
	return strings.ReplaceAll(url, "localhost:8082", "localhost:8083")
}

func TestRewriteSkipsNtpAndKeepalive(t *testing.T) {
	tree := servicesTree()
	if ok := Rewrite(tree, rewriteLocalPort); !ok {
		t.Fatal("Rewrite reported not-a-services-response")
	}
	services := tree.Child("services")
	for _, item := range services.Children() {
		switch item.Attribute("name") {
		case "ntp":
			if item.Attribute("url") != "ntp://pool.ntp.org/" {
				t.Errorf("ntp url rewritten: %q", item.Attribute("url"))
			}
		case "keepalive":
			if item.Attribute("url") != "http://127.0.0.1/core/keepalive" {
				t.Errorf("keepalive url rewritten: %q", item.Attribute("url"))
			}
		default:
			if !strings.Contains(item.Attribute("url"), "8083") {
				t.Errorf("%s url not rewritten: %q", item.Attribute("name"), item.Attribute("url"))
			}
		}
	}
}

func TestRewriteBailsOnUnexpectedShape(t *testing.T) {
	if Rewrite(node.Void("notresponse"), rewriteLocalPort) {
		t.Fatal("Rewrite should bail on a non-response root")
	}
	if Rewrite(nil, rewriteLocalPort) {
		t.Fatal("Rewrite should bail on nil")
	}
	empty := node.Void("response")
	if Rewrite(empty, rewriteLocalPort) {
		t.Fatal("Rewrite should bail on a childless response")
	}
}

func TestReverseProxyModifiesUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := envelope.Encode(servicesTree(), charset.UTF8, envelope.XML, false)
		if err != nil {
			t.Fatalf("encode upstream body: %v", err)
		}
		w.Header().Set("X-Compress", "none")
		w.Write(body)
	}))
	defer upstream.Close()

	target, err := url.Parse(upstream.URL)
	if err != nil {
		t.Fatalf("parse upstream url: %v", err)
	}

	rp := ReverseProxy(target, rewriteLocalPort)
	front := httptest.NewServer(rp)
	defer front.Close()

	resp, err := http.Get(front.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var buf [4096]byte
	n, _ := resp.Body.Read(buf[:])
	out := buf[:n]

	tree, _, err := envelope.Decode(false, out)
	if err != nil {
		t.Fatalf("decode proxied response: %v\n%s", err, out)
	}
	services := tree.Child("services")
	if services == nil {
		t.Fatal("missing services child")
	}
	var sawRewritten bool
	for _, item := range services.Children() {
		if item.Attribute("name") == "cardmng" && strings.Contains(item.Attribute("url"), "8083") {
			sawRewritten = true
		}
	}
	if !sawRewritten {
		t.Fatal("cardmng url was not rewritten by the proxy")
	}
}
