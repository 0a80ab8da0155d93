// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package eamusehttp is the HTTP front end described as an external
// collaborator in spec.md section 1: it owns the single POST endpoint, the
// X-Eamuse-Info/X-Compress header contract, and dispatch into a
// plugin.Registry, wiring envelope, session, and plugin together.
package eamusehttp

import (
	"io"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/julienschmidt/httprouter"

	"github.com/hiiragi-go/hiiragi/charset"
	"github.com/hiiragi-go/hiiragi/envelope"
	"github.com/hiiragi-go/hiiragi/plugin"
	"github.com/hiiragi-go/hiiragi/session"
)

// responseCharset and responseEncoding are fixed regardless of the inbound
// document's charset or encoding, matching the source route handler's
// unconditional SHIFT_JIS/XML outbound choice.
const responseCharset = charset.ShiftJIS

const responseEncoding = envelope.XML

// NewRouter builds the HTTP router: the path-form route
// "/:anything/:model/:module/:method" and the query-parameter form "/" with
// f=<action>, both dispatching into reg.
func NewRouter(reg *plugin.Registry) *httprouter.Router {
	r := httprouter.New()
	s := &server{reg: reg}
	r.POST("/", s.handleIndex)
	r.POST("/:anything/:model/:module/:method", s.handleCall)
	return r
}

type server struct {
	reg *plugin.Registry
}

func (s *server) handleCall(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	model := ps.ByName("model")
	action := r.URL.Query().Get("f")
	s.handle(w, r, model, action)
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	s.handle(w, r, q.Get("model"), q.Get("f"))
}

// compressHeader reports whether X-Compress names lz77 compression: any
// value other than an empty (absent) header or the literal none means
// compressed.
func compressHeader(v string) bool {
	return v != "" && v != "none"
}

func (s *server) handle(w http.ResponseWriter, r *http.Request, model, action string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read request body", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	compressedIn := compressHeader(r.Header.Get("X-Compress"))
	tree, _, err := envelope.Decode(compressedIn, body)
	if err != nil {
		log.Error("malformed request envelope", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	game := strings.SplitN(model, ":", 2)[0]

	resp, err := s.reg.Invoke(r.Context(), game, action, tree)
	switch {
	case err == plugin.ErrHandlerAbsent:
		// Preserved verbatim per spec.md section 9's second open question:
		// the source logs and returns an empty 200 rather than a 404/400.
		log.Warn("no handler for request", "game", game, "action", action)
		w.WriteHeader(http.StatusOK)
		return
	case err != nil:
		log.Error("handler failed", "game", game, "action", action, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	xeamuse, date := session.GenerateKey()
	out, err := envelope.Encode(resp, responseCharset, responseEncoding, false)
	if err != nil {
		log.Error("failed to encode response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("X-Powered-By", "Hiiragi")
	header.Set("X-Compress", "none")
	header.Set("X-Eamuse-Info", xeamuse)
	header.Set("Date", date)
	header.Set("Connection", "keep-alive")
	header.Set("Keep-Alive", "timeout=5")
	header.Set("Content-Type", "application/octet-stream")
	w.Write(out)
}
